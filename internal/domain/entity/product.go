package entity

import (
	"time"

	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalogue item offered by the studio
// (furniture, lighting, textiles, finishes...)
type Product struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CategoryID   *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Slug         string         `gorm:"size:255;unique;not null" json:"slug"`
	SKU          string         `gorm:"size:100;unique;not null;column:sku" json:"sku"`
	Description  *string        `gorm:"type:text" json:"description,omitempty"`
	Supplier     *string        `gorm:"size:255" json:"supplier,omitempty"`
	Dimensions   *string        `gorm:"size:100" json:"dimensions,omitempty"`
	Material     *string        `gorm:"size:100" json:"material,omitempty"`
	Stock        int            `gorm:"default:0" json:"stock"`
	StockAlert   int            `gorm:"default:0" json:"stock_alert"`
	CostPrice    int64          `gorm:"default:0" json:"cost_price"`    // Stored in cents
	SellingPrice int64          `gorm:"default:0" json:"selling_price"` // Stored in cents
	Tax          int            `gorm:"default:0" json:"tax"`
	TaxType      enum.TaxType   `gorm:"default:0" json:"tax_type"`
	ImageURL     *string        `gorm:"size:255" json:"image_url,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant   Tenant    `gorm:"foreignKey:TenantID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
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

// SellingPriceDecimal returns the selling price in currency units (for display)
func (p *Product) SellingPriceDecimal() float64 {
	return float64(p.SellingPrice) / 100
}

// SetSellingPriceFromDecimal stores a decimal price as cents
func (p *Product) SetSellingPriceFromDecimal(price float64) {
	p.SellingPrice = int64(price * 100)
}

// SetCostPriceFromDecimal stores a decimal cost as cents
func (p *Product) SetCostPriceFromDecimal(price float64) {
	p.CostPrice = int64(price * 100)
}

// IsLowStock reports whether stock has fallen to the alert threshold
func (p *Product) IsLowStock() bool {
	return p.StockAlert > 0 && p.Stock <= p.StockAlert
}

// Category groups catalogue products (e.g. furniture, lighting, textiles)
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant   Tenant    `gorm:"foreignKey:TenantID" json:"-"`
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
