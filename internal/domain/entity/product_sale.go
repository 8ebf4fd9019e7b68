package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductSale is a per-line sales fact row, written when an invoice is
// issued and voided when the invoice is cancelled. Reporting reads these
// instead of joining through invoices.
type ProductSale struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ContactID uuid.UUID `gorm:"type:uuid;not null;index" json:"contact_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"` // Stored in cents
	Total     int64     `gorm:"not null" json:"total"`
	SoldAt    time.Time `gorm:"not null;index" json:"sold_at"`
	Voided    bool      `gorm:"default:false" json:"voided"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Tenant  Tenant  `gorm:"foreignKey:TenantID" json:"-"`
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Contact Contact `gorm:"foreignKey:ContactID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product sale
func (s *ProductSale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductSale model
func (ProductSale) TableName() string {
	return "product_sales"
}
