package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents the create product request
type CreateProductRequest struct {
	Name            string           `json:"name" binding:"required"`
	Code            string           `json:"code"`
	CategoryID      *string          `json:"category_id"`
	UnitID          *string          `json:"unit_id"`
	SellingPrice    decimal.Decimal  `json:"selling_price"`
	BuyingPrice     decimal.Decimal  `json:"buying_price"`
	TrackingEnabled bool             `json:"tracking_enabled"`
	InitialQuantity *decimal.Decimal `json:"initial_quantity"`
	QuantityAlert   *decimal.Decimal `json:"quantity_alert"`
}

// UpdateProductRequest represents the update product request
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Code          *string          `json:"code"`
	CategoryID    *string          `json:"category_id"`
	UnitID        *string          `json:"unit_id"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	BuyingPrice   *decimal.Decimal `json:"buying_price"`
	QuantityAlert *decimal.Decimal `json:"quantity_alert"`
}

// RestockProductRequest adds stock to a tracked product
type RestockProductRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ProductFilterRequest holds the listing query parameters
type ProductFilterRequest struct {
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
	Search      string `form:"search"`
	CategoryID  string `form:"category_id"`
	UnitID      string `form:"unit_id"`
	LowStock    bool   `form:"low_stock"`
	TrackedOnly bool   `form:"tracked_only"`
	SortBy      string `form:"sort_by"`
	SortOrder   string `form:"sort_order"`
}
