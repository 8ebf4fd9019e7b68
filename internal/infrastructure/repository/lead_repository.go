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
	"gorm.io/gorm/clause"
)

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) domainRepo.LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *leadRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	var lead entity.Lead
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Preload("AssignedUser").
		First(&lead, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lead, err
}

func (r *leadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *leadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.Lead{}, "id = ?", id).Error
}

func (r *leadRepository) List(ctx context.Context, params *pagination.PaginationParams, search string, status *enum.LeadStatus) ([]entity.Lead, int64, error) {
	var leads []entity.Lead
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Lead{}).Scopes(TenantScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("AssignedUser").
		Order("created_at DESC").
		Find(&leads).Error

	return leads, total, err
}

func (r *leadRepository) CountByStatus(ctx context.Context) (map[enum.LeadStatus]int64, error) {
	type row struct {
		Status enum.LeadStatus
		Count  int64
	}
	var rows []row

	err := r.db.WithContext(ctx).Model(&entity.Lead{}).Scopes(TenantScope(ctx)).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enum.LeadStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) domainRepo.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	var contact entity.Contact
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&contact, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &contact, err
}

func (r *contactRepository) GetByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	var contact entity.Contact
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&contact, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &contact, err
}

func (r *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.Contact{}, "id = ?", id).Error
}

func (r *contactRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Contact, int64, error) {
	var contacts []entity.Contact
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Contact{}).Scopes(TenantScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&contacts).Error

	return contacts, total, err
}

type leadConversionRepository struct {
	db *gorm.DB
}

// NewLeadConversionRepository creates a new lead conversion repository
func NewLeadConversionRepository(db *gorm.DB) domainRepo.LeadConversionRepository {
	return &leadConversionRepository{db: db}
}

// Record resolves the contact for a won lead and inserts the conversion
// row in a single transaction. The unique index on lead_id plus the
// ON CONFLICT DO NOTHING clause make a concurrent duplicate a no-op:
// the existing conversion is returned instead of an error.
func (r *leadConversionRepository) Record(ctx context.Context, lead *entity.Lead) (*entity.LeadConversion, error) {
	var conversion entity.LeadConversion

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contact entity.Contact
		err := tx.Scopes(TenantScope(ctx)).
			First(&contact, "email = ?", lead.Email).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			contact = entity.Contact{
				TenantID: lead.TenantID,
				Name:     lead.Name,
				Email:    lead.Email,
				Phone:    lead.Phone,
			}
			if err := tx.Create(&contact).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		conversion = entity.LeadConversion{
			LeadID:      lead.ID,
			ContactID:   contact.ID,
			TenantID:    lead.TenantID,
			ConvertedAt: time.Now().UTC(),
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lead_id"}},
			DoNothing: true,
		}).Create(&conversion)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// Lead was already converted; hand back the existing record
			return tx.First(&conversion, "lead_id = ?", lead.ID).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &conversion, nil
}

func (r *leadConversionRepository) GetByLeadID(ctx context.Context, leadID uuid.UUID) (*entity.LeadConversion, error) {
	var conversion entity.LeadConversion
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&conversion, "lead_id = ?", leadID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &conversion, err
}

func (r *leadConversionRepository) List(ctx context.Context, filter *domainRepo.ConversionFilter, limit int) ([]entity.LeadConversion, error) {
	var conversions []entity.LeadConversion

	query := r.db.WithContext(ctx).Model(&entity.LeadConversion{}).Scopes(TenantScope(ctx))

	if filter != nil {
		if filter.LeadID != nil {
			query = query.Where("lead_id = ?", *filter.LeadID)
		}
		if filter.ContactID != nil {
			query = query.Where("contact_id = ?", *filter.ContactID)
		}
		if filter.DateFrom != nil {
			query = query.Where("converted_at >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			query = query.Where("converted_at <= ?", *filter.DateTo)
		}
	}

	err := query.Limit(limit).
		Preload("Lead").Preload("Contact").
		Order("converted_at DESC").
		Find(&conversions).Error

	return conversions, err
}

func (r *leadConversionRepository) DeleteByLeadID(ctx context.Context, leadID uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.LeadConversion{}, "lead_id = ?", leadID).Error
}

func (r *leadConversionRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.LeadConversion{}).Scopes(TenantScope(ctx)).
		Where("converted_at >= ?", since).
		Count(&count).Error
	return count, err
}
