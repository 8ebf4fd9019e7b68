package repository

import (
	"context"
	"errors"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	domainRepo "github.com/decoraworks/atelier-api/internal/domain/repository"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type preBudgetRepository struct {
	db *gorm.DB
}

// NewPreBudgetRepository creates a new pre-budget repository
func NewPreBudgetRepository(db *gorm.DB) domainRepo.PreBudgetRepository {
	return &preBudgetRepository{db: db}
}

func (r *preBudgetRepository) Create(ctx context.Context, preBudget *entity.PreBudget) error {
	return r.db.WithContext(ctx).Create(preBudget).Error
}

func (r *preBudgetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PreBudget, error) {
	var preBudget entity.PreBudget
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&preBudget, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &preBudget, err
}

func (r *preBudgetRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PreBudget, error) {
	var preBudget entity.PreBudget
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Preload("Items").Preload("Items.Product").
		Preload("Lead").Preload("Contact").
		First(&preBudget, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &preBudget, err
}

func (r *preBudgetRepository) Update(ctx context.Context, preBudget *entity.PreBudget) error {
	return r.db.WithContext(ctx).Save(preBudget).Error
}

func (r *preBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.PreBudget{}, "id = ?", id).Error
}

func (r *preBudgetRepository) List(ctx context.Context, params *pagination.PaginationParams, search string, status *enum.PreBudgetStatus) ([]entity.PreBudget, int64, error) {
	var preBudgets []entity.PreBudget
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PreBudget{}).Scopes(TenantScope(ctx))

	if search != "" {
		query = query.Where("reference ILIKE ? OR title ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Lead").Preload("Contact").
		Order("created_at DESC").
		Find(&preBudgets).Error

	return preBudgets, total, err
}

func (r *preBudgetRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PreBudgetStatus) error {
	return r.db.WithContext(ctx).Model(&entity.PreBudget{}).Scopes(TenantScope(ctx)).
		Where("id = ?", id).
		Update("status", status).Error
}

type preBudgetItemRepository struct {
	db *gorm.DB
}

// NewPreBudgetItemRepository creates a new pre-budget item repository
func NewPreBudgetItemRepository(db *gorm.DB) domainRepo.PreBudgetItemRepository {
	return &preBudgetItemRepository{db: db}
}

func (r *preBudgetItemRepository) CreateBatch(ctx context.Context, items []entity.PreBudgetItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *preBudgetItemRepository) DeleteByPreBudgetID(ctx context.Context, preBudgetID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&entity.PreBudgetItem{}, "pre_budget_id = ?", preBudgetID).Error
}
