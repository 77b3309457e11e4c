package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductionRecord is the audit row written after a production order has been
// applied to stock. Production orders themselves are transient; only the
// successful outcome is persisted.
type ProductionRecord struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	OutputQuantity decimal.Decimal `gorm:"type:numeric(18,3);not null" json:"output_quantity"`
	Notes          *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`

	// Relationships
	Product    Product               `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Components []ProductionComponent `gorm:"foreignKey:ProductionRecordID" json:"components,omitempty"`
}

// BeforeCreate generates a UUID before creating a new production record
func (p *ProductionRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductionRecord model
func (ProductionRecord) TableName() string {
	return "production_records"
}

// ProductionComponent records the total quantity of one component consumed by
// a production run (per-unit usage already multiplied by the output quantity,
// duplicate component lines already summed).
type ProductionComponent struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ProductionRecordID uuid.UUID       `gorm:"type:uuid;not null;index" json:"production_record_id"`
	ProductID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity           decimal.Decimal `gorm:"type:numeric(18,3);not null" json:"quantity"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new production component
func (c *ProductionComponent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductionComponent model
func (ProductionComponent) TableName() string {
	return "production_components"
}
