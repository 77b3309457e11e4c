package request

import (
	"time"

	"github.com/fadhilmp/usahaku-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// TransactionItemRequest is one submitted line item. ProductID is optional:
// free-form lines describe things that are not in the catalog.
type TransactionItemRequest struct {
	ProductID *string         `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"qty"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// TransactionFeeRequest is one extra fee line
type TransactionFeeRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// CreateTransactionRequest represents the create transaction request
type CreateTransactionRequest struct {
	Type               enum.TransactionType     `json:"type"`
	Category           string                   `json:"category"`
	TransactionDate    *time.Time               `json:"transaction_date"`
	Items              []TransactionItemRequest `json:"items"`
	DiscountMode       enum.DiscountMode        `json:"discount_mode"`
	DiscountValue      decimal.Decimal          `json:"discount_value"`
	TaxEnabled         bool                     `json:"tax_enabled"`
	WithholdingPreset  enum.WithholdingPreset   `json:"withholding_preset"`
	WithholdingPercent decimal.Decimal          `json:"withholding_percent"`
	Fees               []TransactionFeeRequest  `json:"fees"`
	PaymentMethod      string                   `json:"payment_method"`
	PaymentStatus      enum.PaymentStatus       `json:"payment_status"`
	DownPayment        decimal.Decimal          `json:"down_payment"`
	DueDate            *time.Time               `json:"due_date"`
	Notes              *string                  `json:"notes"`
}

// PayRemainingRequest records an extra payment against a deferred transaction
type PayRemainingRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// TransactionFilterRequest holds the listing query parameters
type TransactionFilterRequest struct {
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
	Search        string `form:"search"`
	Type          string `form:"type"`
	PaymentStatus string `form:"payment_status"`
	Category      string `form:"category"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
}
