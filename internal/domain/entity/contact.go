package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact represents a client record, created once a lead is won or
// entered directly by studio staff
type Contact struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;not null;index" json:"email"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Notes     *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant      Tenant           `gorm:"foreignKey:TenantID" json:"-"`
	Conversions []LeadConversion `gorm:"foreignKey:ContactID" json:"-"`
	Invoices    []Invoice        `gorm:"foreignKey:ContactID" json:"-"`
	PreBudgets  []PreBudget      `gorm:"foreignKey:ContactID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new contact
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Contact model
func (Contact) TableName() string {
	return "contacts"
}
