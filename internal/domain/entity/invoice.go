package entity

import (
	"time"

	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice represents a billing document issued to a contact
type Invoice struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	ContactID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"contact_id"`
	InvoiceNo   string             `gorm:"size:100;unique;not null" json:"invoice_no"`
	IssuedAt    time.Time          `gorm:"not null" json:"issued_at"`
	Status      enum.InvoiceStatus `gorm:"default:0;index" json:"status"`
	SubTotal    int64              `gorm:"default:0" json:"sub_total"` // Stored in cents
	VAT         int64              `gorm:"default:0" json:"vat"`
	Total       int64              `gorm:"default:0" json:"total"`
	Paid        int64              `gorm:"default:0" json:"paid"`
	Due         int64              `gorm:"default:0" json:"due"`
	Notes       *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Tenant  Tenant        `gorm:"foreignKey:TenantID" json:"-"`
	User    User          `gorm:"foreignKey:UserID" json:"-"`
	Contact Contact       `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Items   []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Sales   []ProductSale `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is a single billed line of an invoice
type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"` // Stored in cents
	Total     int64     `gorm:"not null" json:"total"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
