package entity

import (
	"time"

	"github.com/fadhilmp/usahaku-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a recorded income or expense. The totals columns are written
// once by the calculator at submission time; the persistence layer trusts
// GrandTotal rather than recomputing it, so the calculator is the single
// source of truth for this value.
type Transaction struct {
	ID        uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	InvoiceNo string               `gorm:"size:100;unique;not null" json:"invoice_no"`
	Type      enum.TransactionType `gorm:"default:0" json:"type"`

	// Category holds the bookkeeping category name. AutoCategorized marks
	// entries whose category came from the classifier instead of the user.
	Category        string `gorm:"size:255" json:"category"`
	AutoCategorized bool   `gorm:"default:false" json:"auto_categorized"`

	TransactionDate time.Time `gorm:"type:date;not null" json:"transaction_date"`

	SubTotal          decimal.Decimal        `gorm:"type:numeric(18,2);default:0" json:"sub_total"`
	DiscountMode      enum.DiscountMode      `gorm:"default:0" json:"discount_mode"`
	DiscountValue     decimal.Decimal        `gorm:"type:numeric(18,2);default:0" json:"discount_value"`
	DiscountAmount    decimal.Decimal        `gorm:"type:numeric(18,2);default:0" json:"discount_amount"`
	TaxEnabled        bool                   `gorm:"default:false" json:"tax_enabled"`
	TaxAmount         decimal.Decimal        `gorm:"type:numeric(18,2);default:0" json:"tax_amount"`
	WithholdingPreset enum.WithholdingPreset `gorm:"default:0" json:"withholding_preset"`
	WithholdingAmount decimal.Decimal        `gorm:"type:numeric(18,2);default:0" json:"withholding_amount"`
	OtherFeesTotal    decimal.Decimal        `gorm:"type:numeric(18,2);default:0" json:"other_fees_total"`
	GrandTotal        decimal.Decimal        `gorm:"type:numeric(18,2);default:0" json:"grand_total"`

	PaymentMethod string             `gorm:"size:50" json:"payment_method"`
	PaymentStatus enum.PaymentStatus `gorm:"default:0" json:"payment_status"`
	DownPayment   decimal.Decimal    `gorm:"type:numeric(18,2);default:0" json:"down_payment"`
	Remaining     decimal.Decimal    `gorm:"type:numeric(18,2);default:0" json:"remaining"`
	DueDate       *time.Time         `gorm:"type:date" json:"due_date,omitempty"`

	Notes     *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
	Fees  []TransactionFee  `gorm:"foreignKey:TransactionID" json:"fees,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionItem is a persisted line item. Immutable once its transaction is
// stored; owned exclusively by that transaction.
type TransactionItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Quantity      decimal.Decimal `gorm:"type:numeric(18,3);not null" json:"quantity"`
	Unit          string          `gorm:"size:50" json:"unit"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"unit_price"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"subtotal"`
	CreatedAt     time.Time       `json:"created_at"`

	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	Product     *Product    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transaction item
func (i *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "transaction_items"
}

// TransactionFee is an extra charge attached to a transaction.
type TransactionFee struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`

	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new transaction fee
func (f *TransactionFee) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionFee model
func (TransactionFee) TableName() string {
	return "transaction_fees"
}
