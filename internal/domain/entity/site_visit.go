package entity

import (
	"time"

	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteVisit represents a scheduled visit to a client's property for
// measurements, surveys or installation follow-ups
type SiteVisit struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TenantID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	LeadID         *uuid.UUID       `gorm:"type:uuid;index" json:"lead_id,omitempty"`
	ContactID      *uuid.UUID       `gorm:"type:uuid;index" json:"contact_id,omitempty"`
	AssignedUserID uuid.UUID        `gorm:"type:uuid;not null;index" json:"assigned_user_id"`
	ScheduledAt    time.Time        `gorm:"not null;index" json:"scheduled_at"`
	Status         enum.VisitStatus `gorm:"default:0;index" json:"status"`
	Address        string           `gorm:"type:text;not null" json:"address"`
	Notes          *string          `gorm:"type:text" json:"notes,omitempty"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Tenant       Tenant   `gorm:"foreignKey:TenantID" json:"-"`
	Lead         *Lead    `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Contact      *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	AssignedUser User     `gorm:"foreignKey:AssignedUserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new site visit
func (v *SiteVisit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SiteVisit model
func (SiteVisit) TableName() string {
	return "site_visits"
}
