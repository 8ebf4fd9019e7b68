package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/decoraworks/atelier-api/internal/domain/repository"
	infraRepo "github.com/decoraworks/atelier-api/internal/infrastructure/repository"
	"github.com/decoraworks/atelier-api/pkg/apperror"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/decoraworks/atelier-api/pkg/utils"
	"github.com/google/uuid"
)

// InvoiceService handles invoicing: billing documents, the stock they
// consume and the sales facts they produce
type InvoiceService struct {
	invoiceRepo     repository.InvoiceRepository
	invoiceItemRepo repository.InvoiceItemRepository
	productSaleRepo repository.ProductSaleRepository
	productRepo     repository.ProductRepository
	contactRepo     repository.ContactRepository
	tenantRepo      repository.TenantRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	invoiceItemRepo repository.InvoiceItemRepository,
	productSaleRepo repository.ProductSaleRepository,
	productRepo repository.ProductRepository,
	contactRepo repository.ContactRepository,
	tenantRepo repository.TenantRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:     invoiceRepo,
		invoiceItemRepo: invoiceItemRepo,
		productSaleRepo: productSaleRepo,
		productRepo:     productRepo,
		contactRepo:     contactRepo,
		tenantRepo:      tenantRepo,
	}
}

// InvoiceItemInput is a single requested line of an invoice
type InvoiceItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	// UnitPrice overrides the catalogue price when set (negotiated
	// discounts); in currency units
	UnitPrice *float64
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	UserID    uuid.UUID
	ContactID uuid.UUID
	Paid      float64
	Notes     *string
	Items     []InvoiceItemInput
}

// CreateInvoice issues an invoice to a contact. Stock for every line is
// decremented atomically before anything is written; if a later step
// fails the decrements are compensated so the catalogue is not left
// short. Each line also produces a ProductSale fact row for reporting.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("An invoice needs at least one item")
	}

	contact, err := s.contactRepo.GetByID(ctx, input.ContactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Tenant")
	}
	settings := tenant.GetSettings()

	// Batch fetch all products in one query
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var subTotal int64
	var taxableAmount int64    // lines priced before VAT
	var nonTaxableAmount int64 // lines with VAT already in the price
	items := make([]entity.InvoiceItem, 0, len(input.Items))
	stockDecrements := make(map[uuid.UUID]int)

	for _, in := range input.Items {
		product, exists := productMap[in.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", in.ProductID))
		}
		if in.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}

		unitPrice := product.SellingPrice
		if in.UnitPrice != nil {
			unitPrice = int64(math.Round(*in.UnitPrice * 100))
		}
		lineTotal := unitPrice * int64(in.Quantity)
		subTotal += lineTotal

		if product.TaxType.AddsVATOnTop() {
			taxableAmount += lineTotal
		} else {
			nonTaxableAmount += lineTotal
		}

		items = append(items, entity.InvoiceItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			Total:     lineTotal,
		})

		// The same product may appear on several lines
		stockDecrements[product.ID] += in.Quantity
	}

	// Atomically decrement stock; race-condition safe
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}

	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewAppError(400, fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	// For exclusive lines VAT is added on top, for inclusive lines it is
	// extracted from the price for display
	rate := settings.TaxRate / 100
	additionalVAT := int64(float64(taxableAmount) * rate)
	includedVAT := int64(float64(nonTaxableAmount) * (rate / (1 + rate)))

	vat := additionalVAT + includedVAT
	total := subTotal + additionalVAT
	paidCents := int64(math.Round(input.Paid * 100))
	due := total - paidCents

	now := time.Now().UTC()
	invoice := &entity.Invoice{
		TenantID:  tenantID,
		UserID:    input.UserID,
		ContactID: input.ContactID,
		InvoiceNo: utils.GenerateInvoiceNo(settings.InvoicePrefix),
		IssuedAt:  now,
		Status:    enum.InvoiceStatusPending,
		SubTotal:  subTotal,
		VAT:       vat,
		Total:     total,
		Paid:      paidCents,
		Due:       due,
		Notes:     input.Notes,
	}

	if due <= 0 {
		invoice.Status = enum.InvoiceStatusPaid
	} else if paidCents > 0 {
		invoice.Status = enum.InvoiceStatusPartiallyPaid
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		// Stock was already decremented, restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	if err := s.invoiceItemRepo.CreateBatch(ctx, items); err != nil {
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	sales := make([]entity.ProductSale, 0, len(items))
	for _, item := range items {
		sales = append(sales, entity.ProductSale{
			TenantID:  tenantID,
			InvoiceID: invoice.ID,
			ProductID: item.ProductID,
			ContactID: input.ContactID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
			SoldAt:    now,
		})
	}
	if err := s.productSaleRepo.CreateBatch(ctx, sales); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// RecordPayment records a payment towards an invoice's due amount
func (s *InvoiceService) RecordPayment(ctx context.Context, id uuid.UUID, amount float64) (*entity.Invoice, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if invoice.Status == enum.InvoiceStatusCancelled {
		return nil, apperror.NewBadRequestError("Cannot record a payment on a cancelled invoice")
	}

	amountCents := int64(math.Round(amount * 100))
	if amountCents > invoice.Due {
		return nil, apperror.NewBadRequestError("Payment exceeds the amount due")
	}

	invoice.Paid += amountCents
	invoice.Due -= amountCents
	if invoice.Due <= 0 {
		invoice.Status = enum.InvoiceStatusPaid
	} else {
		invoice.Status = enum.InvoiceStatusPartiallyPaid
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// CancelInvoice cancels an invoice, restores the stock it consumed and
// voids its sales facts. Paid invoices cannot be cancelled.
func (s *InvoiceService) CancelInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	if invoice.Status == enum.InvoiceStatusCancelled {
		return apperror.NewAppError(400, "Invoice is already cancelled")
	}
	if invoice.Status == enum.InvoiceStatusPaid {
		return apperror.NewBadRequestError("Paid invoices cannot be cancelled")
	}

	stockIncrements := make(map[uuid.UUID]int)
	for _, item := range invoice.Items {
		stockIncrements[item.ProductID] = item.Quantity
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return err
	}

	if err := s.productSaleRepo.VoidByInvoiceID(ctx, id); err != nil {
		return err
	}

	return s.invoiceRepo.UpdateStatus(ctx, id, enum.InvoiceStatusCancelled)
}

// ListSales lists product sale facts with filtering
func (s *InvoiceService) ListSales(ctx context.Context, filter *repository.SaleFilter, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.ProductSale], error) {
	sales, total, err := s.productSaleRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}
