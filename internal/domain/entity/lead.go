package entity

import (
	"time"

	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead represents a prospective client moving through the sales pipeline
type Lead struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Email          string          `gorm:"size:255;not null;index" json:"email"`
	Phone          *string         `gorm:"size:50" json:"phone,omitempty"`
	Status         enum.LeadStatus `gorm:"default:0;index" json:"status"`
	AssignedUserID *uuid.UUID      `gorm:"type:uuid;index" json:"assigned_user_id,omitempty"`
	Source         *string         `gorm:"size:100" json:"source,omitempty"`
	Notes          *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Tenant       Tenant  `gorm:"foreignKey:TenantID" json:"-"`
	AssignedUser *User   `gorm:"foreignKey:AssignedUserID" json:"-"`
	Conversions  []LeadConversion `gorm:"foreignKey:LeadID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new lead
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Lead model
func (Lead) TableName() string {
	return "leads"
}
