package repository

import (
	"context"
	"time"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/google/uuid"
)

// SiteVisitRepository defines the interface for site visit scheduling
type SiteVisitRepository interface {
	Create(ctx context.Context, visit *entity.SiteVisit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SiteVisit, error)
	Update(ctx context.Context, visit *entity.SiteVisit) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, status *enum.VisitStatus, assignedUserID *uuid.UUID) ([]entity.SiteVisit, int64, error)
	// ListUpcoming returns scheduled visits between now and the horizon,
	// soonest first
	ListUpcoming(ctx context.Context, horizon time.Time, limit int) ([]entity.SiteVisit, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.VisitStatus) error
}
