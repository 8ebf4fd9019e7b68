package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/decoraworks/atelier-api/internal/domain/repository"
	infraRepo "github.com/decoraworks/atelier-api/internal/infrastructure/repository"
	"github.com/decoraworks/atelier-api/pkg/apperror"
	"github.com/decoraworks/atelier-api/pkg/pagination"
)

// MockInvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockInvoiceRepository) TotalsByStatus(ctx context.Context) (map[enum.InvoiceStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[enum.InvoiceStatus]int64), args.Error(1)
}

// MockInvoiceItemRepository
type MockInvoiceItemRepository struct {
	mock.Mock
}

func (m *MockInvoiceItemRepository) CreateBatch(ctx context.Context, items []entity.InvoiceItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

// MockProductSaleRepository
type MockProductSaleRepository struct {
	mock.Mock
}

func (m *MockProductSaleRepository) CreateBatch(ctx context.Context, sales []entity.ProductSale) error {
	args := m.Called(ctx, sales)
	return args.Error(0)
}

func (m *MockProductSaleRepository) List(ctx context.Context, filter *repository.SaleFilter, params *pagination.PaginationParams) ([]entity.ProductSale, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.ProductSale), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductSaleRepository) VoidByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// MockProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, params *pagination.PaginationParams, search string, categoryID *uuid.UUID) ([]entity.Product, int64, error) {
	args := m.Called(ctx, params, search, categoryID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductRepository) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	args := m.Called(ctx, decrements)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockProductRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	args := m.Called(ctx, increments)
	return args.Error(0)
}

// MockTenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *entity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *entity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) GetUserTenants(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Tenant, int64, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Tenant), args.Get(1).(int64), args.Error(2)
}

func (m *MockTenantRepository) AddMember(ctx context.Context, membership *entity.TenantMembership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockTenantRepository) RemoveMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	args := m.Called(ctx, tenantID, userID)
	return args.Error(0)
}

func (m *MockTenantRepository) GetMembers(ctx context.Context, tenantID uuid.UUID) ([]entity.TenantMembership, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TenantMembership), args.Error(1)
}

func (m *MockTenantRepository) IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) UpdateMemberRole(ctx context.Context, tenantID, userID uuid.UUID, role string) error {
	args := m.Called(ctx, tenantID, userID, role)
	return args.Error(0)
}

func (m *MockTenantRepository) ListAll(ctx context.Context, params *pagination.PaginationParams) ([]entity.Tenant, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Tenant), args.Get(1).(int64), args.Error(2)
}

type invoiceMocks struct {
	invoiceRepo     *MockInvoiceRepository
	invoiceItemRepo *MockInvoiceItemRepository
	productSaleRepo *MockProductSaleRepository
	productRepo     *MockProductRepository
	contactRepo     *MockContactRepository
	tenantRepo      *MockTenantRepository
}

func newInvoiceServiceWithMocks() (*InvoiceService, *invoiceMocks) {
	m := &invoiceMocks{
		invoiceRepo:     new(MockInvoiceRepository),
		invoiceItemRepo: new(MockInvoiceItemRepository),
		productSaleRepo: new(MockProductSaleRepository),
		productRepo:     new(MockProductRepository),
		contactRepo:     new(MockContactRepository),
		tenantRepo:      new(MockTenantRepository),
	}
	svc := NewInvoiceService(m.invoiceRepo, m.invoiceItemRepo, m.productSaleRepo, m.productRepo, m.contactRepo, m.tenantRepo)
	return svc, m
}

func TestCreateInvoice_ComputesTotalsWithExclusiveVAT(t *testing.T) {
	svc, m := newInvoiceServiceWithMocks()
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	contactID := uuid.New()
	productID := uuid.New()
	product := entity.Product{
		ID:           productID,
		Name:         "Oak sideboard",
		Stock:        5,
		SellingPrice: 10000, // 100.00 before VAT
		TaxType:      enum.TaxTypeExclusive,
	}

	m.contactRepo.On("GetByID", ctx, contactID).Return(&entity.Contact{ID: contactID}, nil)
	m.tenantRepo.On("GetByID", ctx, tenantID).Return(&entity.Tenant{ID: tenantID}, nil)
	m.productRepo.On("GetByIDs", ctx, mock.Anything).Return([]entity.Product{product}, nil)
	m.productRepo.On("AtomicDecrementBatch", ctx, map[uuid.UUID]int{productID: 2}).Return([]uuid.UUID{}, nil)

	var created *entity.Invoice
	m.invoiceRepo.On("Create", ctx, mock.AnythingOfType("*entity.Invoice")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Invoice)
		created.ID = uuid.New()
	}).Return(nil)
	m.invoiceItemRepo.On("CreateBatch", ctx, mock.AnythingOfType("[]entity.InvoiceItem")).Return(nil)
	m.productSaleRepo.On("CreateBatch", ctx, mock.AnythingOfType("[]entity.ProductSale")).Return(nil)
	m.invoiceRepo.On("GetWithItems", ctx, mock.AnythingOfType("uuid.UUID")).Return(&entity.Invoice{}, nil)

	_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		UserID:    uuid.New(),
		ContactID: contactID,
		Items:     []InvoiceItemInput{{ProductID: productID, Quantity: 2}},
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	// Default studio settings apply 21% VAT on top of exclusive prices.
	assert.Equal(t, int64(20000), created.SubTotal)
	assert.Equal(t, int64(4200), created.VAT)
	assert.Equal(t, int64(24200), created.Total)
	assert.Equal(t, int64(24200), created.Due)
	assert.Equal(t, enum.InvoiceStatusPending, created.Status)
}

func TestCreateInvoice_SumsRepeatedProductLines(t *testing.T) {
	svc, m := newInvoiceServiceWithMocks()
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	contactID := uuid.New()
	productID := uuid.New()
	product := entity.Product{
		ID:           productID,
		Name:         "Brass handle",
		Stock:        10,
		SellingPrice: 1500,
		TaxType:      enum.TaxTypeExclusive,
	}

	m.contactRepo.On("GetByID", ctx, contactID).Return(&entity.Contact{ID: contactID}, nil)
	m.tenantRepo.On("GetByID", ctx, tenantID).Return(&entity.Tenant{ID: tenantID}, nil)
	m.productRepo.On("GetByIDs", ctx, mock.Anything).Return([]entity.Product{product}, nil)
	// Both lines count against stock, not just the last one.
	m.productRepo.On("AtomicDecrementBatch", ctx, map[uuid.UUID]int{productID: 5}).Return([]uuid.UUID{}, nil)
	m.invoiceRepo.On("Create", ctx, mock.AnythingOfType("*entity.Invoice")).Return(nil)
	m.invoiceItemRepo.On("CreateBatch", ctx, mock.AnythingOfType("[]entity.InvoiceItem")).Return(nil)
	m.productSaleRepo.On("CreateBatch", ctx, mock.AnythingOfType("[]entity.ProductSale")).Return(nil)
	m.invoiceRepo.On("GetWithItems", ctx, mock.AnythingOfType("uuid.UUID")).Return(&entity.Invoice{}, nil)

	_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		UserID:    uuid.New(),
		ContactID: contactID,
		Items: []InvoiceItemInput{
			{ProductID: productID, Quantity: 2},
			{ProductID: productID, Quantity: 3},
		},
	})

	require.NoError(t, err)
	m.productRepo.AssertExpectations(t)
}

func TestCreateInvoice_InsufficientStock(t *testing.T) {
	svc, m := newInvoiceServiceWithMocks()
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	contactID := uuid.New()
	productID := uuid.New()
	product := entity.Product{ID: productID, Name: "Walnut desk", Stock: 1, SellingPrice: 50000}

	m.contactRepo.On("GetByID", ctx, contactID).Return(&entity.Contact{ID: contactID}, nil)
	m.tenantRepo.On("GetByID", ctx, tenantID).Return(&entity.Tenant{ID: tenantID}, nil)
	m.productRepo.On("GetByIDs", ctx, mock.Anything).Return([]entity.Product{product}, nil)
	m.productRepo.On("AtomicDecrementBatch", ctx, mock.Anything).Return([]uuid.UUID{productID}, nil)

	_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		UserID:    uuid.New(),
		ContactID: contactID,
		Items:     []InvoiceItemInput{{ProductID: productID, Quantity: 3}},
	})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "Walnut desk")
	m.invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateInvoice_RestoresStockWhenPersistFails(t *testing.T) {
	svc, m := newInvoiceServiceWithMocks()
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	contactID := uuid.New()
	productID := uuid.New()
	product := entity.Product{ID: productID, Name: "Linen armchair", Stock: 4, SellingPrice: 30000}

	m.contactRepo.On("GetByID", ctx, contactID).Return(&entity.Contact{ID: contactID}, nil)
	m.tenantRepo.On("GetByID", ctx, tenantID).Return(&entity.Tenant{ID: tenantID}, nil)
	m.productRepo.On("GetByIDs", ctx, mock.Anything).Return([]entity.Product{product}, nil)
	m.productRepo.On("AtomicDecrementBatch", ctx, mock.Anything).Return([]uuid.UUID{}, nil)
	m.invoiceRepo.On("Create", ctx, mock.Anything).Return(assert.AnError)
	m.productRepo.On("AtomicIncrementBatch", ctx, map[uuid.UUID]int{productID: 1}).Return(nil)

	_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		UserID:    uuid.New(),
		ContactID: contactID,
		Items:     []InvoiceItemInput{{ProductID: productID, Quantity: 1}},
	})

	require.Error(t, err)
	m.productRepo.AssertCalled(t, "AtomicIncrementBatch", ctx, map[uuid.UUID]int{productID: 1})
}

func TestCreateInvoice_RequiresItems(t *testing.T) {
	svc, _ := newInvoiceServiceWithMocks()
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())

	_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		UserID:    uuid.New(),
		ContactID: uuid.New(),
	})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
}

func TestRecordPayment_FullPaymentSettlesInvoice(t *testing.T) {
	svc, m := newInvoiceServiceWithMocks()
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	invoiceID := uuid.New()

	m.invoiceRepo.On("GetByID", ctx, invoiceID).Return(&entity.Invoice{
		ID:     invoiceID,
		Status: enum.InvoiceStatusPartiallyPaid,
		Total:  24200,
		Paid:   10000,
		Due:    14200,
	}, nil)
	m.invoiceRepo.On("Update", ctx, mock.AnythingOfType("*entity.Invoice")).Return(nil)

	invoice, err := svc.RecordPayment(ctx, invoiceID, 142.00)

	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, invoice.Status)
	assert.Equal(t, int64(24200), invoice.Paid)
	assert.Equal(t, int64(0), invoice.Due)
}

func TestRecordPayment_RoundsFractionalCents(t *testing.T) {
	svc, m := newInvoiceServiceWithMocks()
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	invoiceID := uuid.New()

	m.invoiceRepo.On("GetByID", ctx, invoiceID).Return(&entity.Invoice{
		ID:     invoiceID,
		Status: enum.InvoiceStatusPending,
		Total:  1999,
		Due:    1999,
	}, nil)
	m.invoiceRepo.On("Update", ctx, mock.AnythingOfType("*entity.Invoice")).Return(nil)

	// 19.99 is not exactly representable; truncation would book 1998.
	invoice, err := svc.RecordPayment(ctx, invoiceID, 19.99)

	require.NoError(t, err)
	assert.Equal(t, int64(1999), invoice.Paid)
	assert.Equal(t, enum.InvoiceStatusPaid, invoice.Status)
}

func TestRecordPayment_RejectsOverpayment(t *testing.T) {
	svc, m := newInvoiceServiceWithMocks()
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	invoiceID := uuid.New()

	m.invoiceRepo.On("GetByID", ctx, invoiceID).Return(&entity.Invoice{
		ID:     invoiceID,
		Status: enum.InvoiceStatusPending,
		Total:  10000,
		Due:    10000,
	}, nil)

	_, err := svc.RecordPayment(ctx, invoiceID, 150.00)

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	m.invoiceRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRecordPayment_RejectsCancelledInvoice(t *testing.T) {
	svc, m := newInvoiceServiceWithMocks()
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	invoiceID := uuid.New()

	m.invoiceRepo.On("GetByID", ctx, invoiceID).Return(&entity.Invoice{
		ID:     invoiceID,
		Status: enum.InvoiceStatusCancelled,
	}, nil)

	_, err := svc.RecordPayment(ctx, invoiceID, 10.00)

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
}

func TestCancelInvoice_RestoresStockAndVoidsSales(t *testing.T) {
	svc, m := newInvoiceServiceWithMocks()
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	invoiceID := uuid.New()
	productID := uuid.New()

	m.invoiceRepo.On("GetWithItems", ctx, invoiceID).Return(&entity.Invoice{
		ID:     invoiceID,
		Status: enum.InvoiceStatusPending,
		Items: []entity.InvoiceItem{
			{ProductID: productID, Quantity: 3},
		},
	}, nil)
	m.productRepo.On("AtomicIncrementBatch", ctx, map[uuid.UUID]int{productID: 3}).Return(nil)
	m.productSaleRepo.On("VoidByInvoiceID", ctx, invoiceID).Return(nil)
	m.invoiceRepo.On("UpdateStatus", ctx, invoiceID, enum.InvoiceStatusCancelled).Return(nil)

	err := svc.CancelInvoice(ctx, invoiceID)

	require.NoError(t, err)
	m.productRepo.AssertCalled(t, "AtomicIncrementBatch", ctx, map[uuid.UUID]int{productID: 3})
	m.productSaleRepo.AssertCalled(t, "VoidByInvoiceID", ctx, invoiceID)
}

func TestCancelInvoice_RejectsPaidInvoice(t *testing.T) {
	svc, m := newInvoiceServiceWithMocks()
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	invoiceID := uuid.New()

	m.invoiceRepo.On("GetWithItems", ctx, invoiceID).Return(&entity.Invoice{
		ID:     invoiceID,
		Status: enum.InvoiceStatusPaid,
	}, nil)

	err := svc.CancelInvoice(ctx, invoiceID)

	require.Error(t, err)
	m.productRepo.AssertNotCalled(t, "AtomicIncrementBatch", mock.Anything, mock.Anything)
}

func TestCancelInvoice_AlreadyCancelled(t *testing.T) {
	svc, m := newInvoiceServiceWithMocks()
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	invoiceID := uuid.New()

	m.invoiceRepo.On("GetWithItems", ctx, invoiceID).Return(&entity.Invoice{
		ID:     invoiceID,
		Status: enum.InvoiceStatusCancelled,
	}, nil)

	err := svc.CancelInvoice(ctx, invoiceID)

	require.Error(t, err)
	m.invoiceRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
