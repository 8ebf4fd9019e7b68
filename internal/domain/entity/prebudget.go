package entity

import (
	"time"

	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreBudget represents a preliminary budget (quote) prepared for a lead
// or an existing contact before a project is committed
type PreBudget struct {
	ID          uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID      uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	LeadID      *uuid.UUID           `gorm:"type:uuid;index" json:"lead_id,omitempty"`
	ContactID   *uuid.UUID           `gorm:"type:uuid;index" json:"contact_id,omitempty"`
	Reference   string               `gorm:"size:100;unique;not null" json:"reference"`
	Title       string               `gorm:"size:255;not null" json:"title"`
	Status      enum.PreBudgetStatus `gorm:"default:0" json:"status"`
	SubTotal    int64                `gorm:"default:0" json:"sub_total"` // Stored in cents
	VAT         int64                `gorm:"default:0" json:"vat"`
	Total       int64                `gorm:"default:0" json:"total"`
	ValidUntil  *time.Time           `json:"valid_until,omitempty"`
	Notes       *string              `gorm:"type:text" json:"notes,omitempty"`
	SentAt      *time.Time           `json:"sent_at,omitempty"`
	DecidedAt   *time.Time           `json:"decided_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	DeletedAt   gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	Tenant  Tenant          `gorm:"foreignKey:TenantID" json:"-"`
	User    User            `gorm:"foreignKey:UserID" json:"-"`
	Lead    *Lead           `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Contact *Contact        `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Items   []PreBudgetItem `gorm:"foreignKey:PreBudgetID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new pre-budget
func (p *PreBudget) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PreBudget model
func (PreBudget) TableName() string {
	return "pre_budgets"
}

// PreBudgetItem is a single line of a pre-budget
type PreBudgetItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	PreBudgetID uuid.UUID  `gorm:"type:uuid;not null;index" json:"pre_budget_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Description string     `gorm:"size:255;not null" json:"description"`
	Quantity    int        `gorm:"not null" json:"quantity"`
	UnitPrice   int64      `gorm:"not null" json:"unit_price"` // Stored in cents
	Total       int64      `gorm:"not null" json:"total"`
	CreatedAt   time.Time  `json:"created_at"`

	// Relationships
	PreBudget PreBudget `gorm:"foreignKey:PreBudgetID" json:"-"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new pre-budget item
func (i *PreBudgetItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PreBudgetItem model
func (PreBudgetItem) TableName() string {
	return "pre_budget_items"
}
