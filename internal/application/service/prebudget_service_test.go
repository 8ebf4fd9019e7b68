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
	infraRepo "github.com/decoraworks/atelier-api/internal/infrastructure/repository"
	"github.com/decoraworks/atelier-api/pkg/apperror"
	"github.com/decoraworks/atelier-api/pkg/pagination"
)

// MockPreBudgetRepository
type MockPreBudgetRepository struct {
	mock.Mock
}

func (m *MockPreBudgetRepository) Create(ctx context.Context, preBudget *entity.PreBudget) error {
	args := m.Called(ctx, preBudget)
	return args.Error(0)
}

func (m *MockPreBudgetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PreBudget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PreBudget), args.Error(1)
}

func (m *MockPreBudgetRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PreBudget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PreBudget), args.Error(1)
}

func (m *MockPreBudgetRepository) Update(ctx context.Context, preBudget *entity.PreBudget) error {
	args := m.Called(ctx, preBudget)
	return args.Error(0)
}

func (m *MockPreBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPreBudgetRepository) List(ctx context.Context, params *pagination.PaginationParams, search string, status *enum.PreBudgetStatus) ([]entity.PreBudget, int64, error) {
	args := m.Called(ctx, params, search, status)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.PreBudget), args.Get(1).(int64), args.Error(2)
}

func (m *MockPreBudgetRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PreBudgetStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockPreBudgetItemRepository
type MockPreBudgetItemRepository struct {
	mock.Mock
}

func (m *MockPreBudgetItemRepository) CreateBatch(ctx context.Context, items []entity.PreBudgetItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockPreBudgetItemRepository) DeleteByPreBudgetID(ctx context.Context, preBudgetID uuid.UUID) error {
	args := m.Called(ctx, preBudgetID)
	return args.Error(0)
}

func newPreBudgetServiceWithMocks() (*PreBudgetService, *MockPreBudgetRepository, *MockPreBudgetItemRepository) {
	preBudgetRepo := new(MockPreBudgetRepository)
	itemRepo := new(MockPreBudgetItemRepository)
	svc := NewPreBudgetService(preBudgetRepo, itemRepo, new(MockLeadRepository), new(MockContactRepository), new(MockTenantRepository))
	return svc, preBudgetRepo, itemRepo
}

func TestSendPreBudget_FromDraft(t *testing.T) {
	svc, repo, _ := newPreBudgetServiceWithMocks()
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(&entity.PreBudget{
		ID:     id,
		Status: enum.PreBudgetStatusDraft,
	}, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*entity.PreBudget")).Return(nil)

	preBudget, err := svc.SendPreBudget(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, enum.PreBudgetStatusSent, preBudget.Status)
	assert.NotNil(t, preBudget.SentAt)
}

func TestSendPreBudget_RejectsNonDraft(t *testing.T) {
	svc, repo, _ := newPreBudgetServiceWithMocks()
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(&entity.PreBudget{
		ID:     id,
		Status: enum.PreBudgetStatusApproved,
	}, nil)

	_, err := svc.SendPreBudget(ctx, id)

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApprovePreBudget_OnlyFromSent(t *testing.T) {
	svc, repo, _ := newPreBudgetServiceWithMocks()
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(&entity.PreBudget{
		ID:     id,
		Status: enum.PreBudgetStatusSent,
	}, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*entity.PreBudget")).Return(nil)

	preBudget, err := svc.ApprovePreBudget(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, enum.PreBudgetStatusApproved, preBudget.Status)
	assert.NotNil(t, preBudget.DecidedAt)
}

func TestRejectPreBudget_FromDraftFails(t *testing.T) {
	svc, repo, _ := newPreBudgetServiceWithMocks()
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(&entity.PreBudget{
		ID:     id,
		Status: enum.PreBudgetStatusDraft,
	}, nil)

	_, err := svc.RejectPreBudget(ctx, id)

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
}

func TestDeletePreBudget_RemovesItemsFirst(t *testing.T) {
	svc, repo, itemRepo := newPreBudgetServiceWithMocks()
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	id := uuid.New()

	var order []string
	repo.On("GetByID", ctx, id).Return(&entity.PreBudget{ID: id}, nil)
	itemRepo.On("DeleteByPreBudgetID", ctx, id).Run(func(mock.Arguments) {
		order = append(order, "items")
	}).Return(nil)
	repo.On("Delete", ctx, id).Run(func(mock.Arguments) {
		order = append(order, "prebudget")
	}).Return(nil)

	err := svc.DeletePreBudget(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, []string{"items", "prebudget"}, order)
}
