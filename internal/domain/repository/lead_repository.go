package repository

import (
	"context"
	"time"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/google/uuid"
)

// LeadRepository defines the interface for lead data operations.
// All reads and writes are tenant-scoped through the request context;
// a lead that belongs to another tenant is indistinguishable from a
// missing one.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string, status *enum.LeadStatus) ([]entity.Lead, int64, error)
	CountByStatus(ctx context.Context) (map[enum.LeadStatus]int64, error)
}

// ContactRepository defines the interface for contact data operations
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	// GetByEmail looks a contact up by email within the current tenant
	GetByEmail(ctx context.Context, email string) (*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Contact, int64, error)
}

// ConversionFilter narrows a conversion listing
type ConversionFilter struct {
	LeadID    *uuid.UUID
	ContactID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
}

// LeadConversionRepository defines the interface for lead conversion records
type LeadConversionRepository interface {
	// Record resolves the contact for the lead (reusing one with the same
	// email in the tenant, creating one otherwise) and inserts the
	// conversion row, all within a single transaction. A conversion that
	// already exists for the lead is returned as-is without error.
	Record(ctx context.Context, lead *entity.Lead) (*entity.LeadConversion, error)

	// GetByLeadID retrieves the conversion for a lead, if any
	GetByLeadID(ctx context.Context, leadID uuid.UUID) (*entity.LeadConversion, error)

	// List returns up to limit conversions, most recent first, with the
	// related lead and contact preloaded
	List(ctx context.Context, filter *ConversionFilter, limit int) ([]entity.LeadConversion, error)

	// DeleteByLeadID removes all conversion rows for a lead (performed
	// before deleting the lead itself because of the foreign key)
	DeleteByLeadID(ctx context.Context, leadID uuid.UUID) error

	// CountSince returns the number of conversions recorded since a point in time
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
