package repository

import (
	"context"
	"errors"
	"time"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	domainRepo "github.com/decoraworks/atelier-api/internal/domain/repository"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type siteVisitRepository struct {
	db *gorm.DB
}

// NewSiteVisitRepository creates a new site visit repository
func NewSiteVisitRepository(db *gorm.DB) domainRepo.SiteVisitRepository {
	return &siteVisitRepository{db: db}
}

func (r *siteVisitRepository) Create(ctx context.Context, visit *entity.SiteVisit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

func (r *siteVisitRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SiteVisit, error) {
	var visit entity.SiteVisit
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Preload("Lead").Preload("Contact").Preload("AssignedUser").
		First(&visit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &visit, err
}

func (r *siteVisitRepository) Update(ctx context.Context, visit *entity.SiteVisit) error {
	return r.db.WithContext(ctx).Save(visit).Error
}

func (r *siteVisitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.SiteVisit{}, "id = ?", id).Error
}

func (r *siteVisitRepository) List(ctx context.Context, params *pagination.PaginationParams, status *enum.VisitStatus, assignedUserID *uuid.UUID) ([]entity.SiteVisit, int64, error) {
	var visits []entity.SiteVisit
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SiteVisit{}).Scopes(TenantScope(ctx))

	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if assignedUserID != nil {
		query = query.Where("assigned_user_id = ?", *assignedUserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Lead").Preload("Contact").
		Order("scheduled_at DESC").
		Find(&visits).Error

	return visits, total, err
}

func (r *siteVisitRepository) ListUpcoming(ctx context.Context, horizon time.Time, limit int) ([]entity.SiteVisit, error) {
	var visits []entity.SiteVisit
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Where("status = ? AND scheduled_at BETWEEN ? AND ?",
			enum.VisitStatusScheduled, time.Now().UTC(), horizon).
		Preload("Lead").Preload("Contact").
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&visits).Error
	return visits, err
}

func (r *siteVisitRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.VisitStatus) error {
	return r.db.WithContext(ctx).Model(&entity.SiteVisit{}).Scopes(TenantScope(ctx)).
		Where("id = ?", id).
		Update("status", status).Error
}
