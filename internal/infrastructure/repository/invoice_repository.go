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

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Preload("Items").Preload("Items.Product").
		Preload("Contact").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).Scopes(TenantScope(ctx))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.ContactID != nil {
		query = query.Where("contact_id = ?", *params.ContactID)
	}
	if params.DateFrom != nil {
		query = query.Where("issued_at >= ?", *params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("issued_at <= ?", *params.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Contact").
		Order("issued_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Invoice{}).Scopes(TenantScope(ctx)).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *invoiceRepository) TotalsByStatus(ctx context.Context) (map[enum.InvoiceStatus]int64, error) {
	type row struct {
		Status enum.InvoiceStatus
		Sum    int64
	}
	var rows []row

	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).Scopes(TenantScope(ctx)).
		Select("status, COALESCE(SUM(total), 0) as sum").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[enum.InvoiceStatus]int64, len(rows))
	for _, r := range rows {
		totals[r.Status] = r.Sum
	}
	return totals, nil
}

type invoiceItemRepository struct {
	db *gorm.DB
}

// NewInvoiceItemRepository creates a new invoice item repository
func NewInvoiceItemRepository(db *gorm.DB) domainRepo.InvoiceItemRepository {
	return &invoiceItemRepository{db: db}
}

func (r *invoiceItemRepository) CreateBatch(ctx context.Context, items []entity.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

type productSaleRepository struct {
	db *gorm.DB
}

// NewProductSaleRepository creates a new product sale repository
func NewProductSaleRepository(db *gorm.DB) domainRepo.ProductSaleRepository {
	return &productSaleRepository{db: db}
}

func (r *productSaleRepository) CreateBatch(ctx context.Context, sales []entity.ProductSale) error {
	if len(sales) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&sales).Error
}

func (r *productSaleRepository) List(ctx context.Context, filter *domainRepo.SaleFilter, params *pagination.PaginationParams) ([]entity.ProductSale, int64, error) {
	var sales []entity.ProductSale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ProductSale{}).Scopes(TenantScope(ctx)).
		Where("voided = ?", false)

	if filter != nil {
		if filter.ProductID != nil {
			query = query.Where("product_id = ?", *filter.ProductID)
		}
		if filter.ContactID != nil {
			query = query.Where("contact_id = ?", *filter.ContactID)
		}
		if filter.DateFrom != nil {
			query = query.Where("sold_at >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			query = query.Where("sold_at <= ?", *filter.DateTo)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Product").
		Order("sold_at DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *productSaleRepository) VoidByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.ProductSale{}).Scopes(TenantScope(ctx)).
		Where("invoice_id = ?", invoiceID).
		Update("voided", true).Error
}
