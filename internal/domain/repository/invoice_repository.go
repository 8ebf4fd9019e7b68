package repository

import (
	"context"
	"time"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/google/uuid"
)

// InvoiceFilterParams holds filtering options for invoice listings
type InvoiceFilterParams struct {
	Pagination pagination.PaginationParams
	Status     *enum.InvoiceStatus
	ContactID  *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error
	// TotalsByStatus sums invoice totals grouped by status (dashboard)
	TotalsByStatus(ctx context.Context) (map[enum.InvoiceStatus]int64, error)
}

// InvoiceItemRepository defines the interface for invoice line items
type InvoiceItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.InvoiceItem) error
}

// SaleFilter narrows a product sale listing
type SaleFilter struct {
	ProductID *uuid.UUID
	ContactID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
}

// ProductSaleRepository defines the interface for sales fact rows
type ProductSaleRepository interface {
	CreateBatch(ctx context.Context, sales []entity.ProductSale) error
	List(ctx context.Context, filter *SaleFilter, params *pagination.PaginationParams) ([]entity.ProductSale, int64, error)
	// VoidByInvoiceID marks all sales of a cancelled invoice as voided
	VoidByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error
}
