package request

import "github.com/shopspring/decimal"

// ProductionComponentRequest is one component line of a production order.
// Qty is the amount consumed per unit of output.
type ProductionComponentRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	Qty       decimal.Decimal `json:"qty"`
}

// CreateProductionRequest represents a production/assembly order
type CreateProductionRequest struct {
	FinishedProductID string                       `json:"finished_product_id" binding:"required"`
	OutputQty         decimal.Decimal              `json:"output_qty"`
	Components        []ProductionComponentRequest `json:"components"`
	Notes             *string                      `json:"notes"`
}
