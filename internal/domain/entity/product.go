package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog item. Stock is only maintained for products
// with TrackingEnabled; TrackedQuantity is null for products that opted out,
// and such products are exempt from every stock check and mutation.
type Product struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID      *uuid.UUID       `gorm:"type:uuid;index" json:"category_id,omitempty"`
	UnitID          *uuid.UUID       `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	Name            string           `gorm:"size:255;not null" json:"name"`
	Code            string           `gorm:"size:100;unique;not null" json:"code"`
	BuyingPrice     decimal.Decimal  `gorm:"type:numeric(18,2);default:0" json:"buying_price"`
	SellingPrice    decimal.Decimal  `gorm:"type:numeric(18,2);default:0" json:"selling_price"`
	TrackingEnabled bool             `gorm:"not null;default:false" json:"tracking_enabled"`
	TrackedQuantity *decimal.Decimal `gorm:"type:numeric(18,3)" json:"tracked_quantity,omitempty"`
	QuantityAlert   decimal.Decimal  `gorm:"type:numeric(18,3);default:0" json:"quantity_alert"`
	Notes           *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Unit     *Unit     `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// AvailableQuantity returns the tracked stock, treating a null quantity as 0.
func (p *Product) AvailableQuantity() decimal.Decimal {
	if p.TrackedQuantity == nil {
		return decimal.Zero
	}
	return *p.TrackedQuantity
}

// IsLowStock reports whether the tracked quantity fell to the alert threshold.
func (p *Product) IsLowStock() bool {
	return p.TrackingEnabled && p.AvailableQuantity().LessThanOrEqual(p.QuantityAlert)
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Unit represents a unit of measurement
type Unit struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	ShortCode string         `gorm:"size:50" json:"short_code"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"foreignKey:UnitID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new unit
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Unit model
func (Unit) TableName() string {
	return "units"
}
