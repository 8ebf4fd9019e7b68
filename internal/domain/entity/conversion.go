package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeadConversion links a won lead to the contact it produced. The unique
// index on lead_id enforces at most one conversion per lead; a duplicate
// insert means the lead was already converted.
type LeadConversion struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LeadID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"lead_id"`
	ContactID   uuid.UUID `gorm:"type:uuid;not null;index" json:"contact_id"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ConvertedAt time.Time `gorm:"not null;index" json:"converted_at"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Lead    Lead    `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Contact Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Tenant  Tenant  `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new conversion
func (c *LeadConversion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LeadConversion model
func (LeadConversion) TableName() string {
	return "lead_conversions"
}
