package repository

import (
	"context"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/google/uuid"
)

// PreBudgetRepository defines the interface for pre-budget data operations
type PreBudgetRepository interface {
	Create(ctx context.Context, preBudget *entity.PreBudget) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PreBudget, error)
	// GetWithItems retrieves a pre-budget with its line items and related
	// lead/contact preloaded
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PreBudget, error)
	Update(ctx context.Context, preBudget *entity.PreBudget) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string, status *enum.PreBudgetStatus) ([]entity.PreBudget, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PreBudgetStatus) error
}

// PreBudgetItemRepository defines the interface for pre-budget line items
type PreBudgetItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.PreBudgetItem) error
	DeleteByPreBudgetID(ctx context.Context, preBudgetID uuid.UUID) error
}
