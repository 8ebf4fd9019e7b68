package service

import (
	"context"
	"testing"
	"time"

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

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context, params *pagination.PaginationParams, search string, status *enum.LeadStatus) ([]entity.Lead, int64, error) {
	args := m.Called(ctx, params, search, status)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Lead), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeadRepository) CountByStatus(ctx context.Context) (map[enum.LeadStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[enum.LeadStatus]int64), args.Error(1)
}

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) GetByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Contact, int64, error) {
	args := m.Called(ctx, params, search)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Contact), args.Get(1).(int64), args.Error(2)
}

// MockLeadConversionRepository
type MockLeadConversionRepository struct {
	mock.Mock
}

func (m *MockLeadConversionRepository) Record(ctx context.Context, lead *entity.Lead) (*entity.LeadConversion, error) {
	args := m.Called(ctx, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadConversion), args.Error(1)
}

func (m *MockLeadConversionRepository) GetByLeadID(ctx context.Context, leadID uuid.UUID) (*entity.LeadConversion, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadConversion), args.Error(1)
}

func (m *MockLeadConversionRepository) List(ctx context.Context, filter *repository.ConversionFilter, limit int) ([]entity.LeadConversion, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeadConversion), args.Error(1)
}

func (m *MockLeadConversionRepository) DeleteByLeadID(ctx context.Context, leadID uuid.UUID) error {
	args := m.Called(ctx, leadID)
	return args.Error(0)
}

func (m *MockLeadConversionRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func newLeadServiceWithMocks() (*LeadService, *MockLeadRepository, *MockLeadConversionRepository) {
	leadRepo := new(MockLeadRepository)
	conversionRepo := new(MockLeadConversionRepository)
	svc := NewLeadService(leadRepo, conversionRepo)
	return svc, leadRepo, conversionRepo
}

func tenantCtx() context.Context {
	return infraRepo.WithTenant(context.Background(), uuid.New())
}

func statusPtr(s enum.LeadStatus) *enum.LeadStatus {
	return &s
}

func TestCreateLead_DefaultsToNew(t *testing.T) {
	svc, leadRepo, conversionRepo := newLeadServiceWithMocks()
	ctx := tenantCtx()

	leadRepo.On("Create", ctx, mock.AnythingOfType("*entity.Lead")).Return(nil)

	lead, err := svc.CreateLead(ctx, &CreateLeadInput{
		Name:  "Marta Rivas",
		Email: "marta@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, enum.LeadStatusNew, lead.Status)
	conversionRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestCreateLead_RequiresTenantContext(t *testing.T) {
	svc, _, _ := newLeadServiceWithMocks()

	_, err := svc.CreateLead(context.Background(), &CreateLeadInput{
		Name:  "Marta Rivas",
		Email: "marta@example.com",
	})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
}

func TestCreateLead_AsConvertedRecordsConversion(t *testing.T) {
	svc, leadRepo, conversionRepo := newLeadServiceWithMocks()
	ctx := tenantCtx()

	leadRepo.On("Create", ctx, mock.AnythingOfType("*entity.Lead")).Return(nil)
	conversionRepo.On("Record", ctx, mock.AnythingOfType("*entity.Lead")).
		Return(&entity.LeadConversion{ID: uuid.New()}, nil)

	lead, err := svc.CreateLead(ctx, &CreateLeadInput{
		Name:   "Marta Rivas",
		Email:  "marta@example.com",
		Status: statusPtr(enum.LeadStatusConverted),
	})

	require.NoError(t, err)
	assert.Equal(t, enum.LeadStatusConverted, lead.Status)
	conversionRepo.AssertCalled(t, "Record", ctx, mock.AnythingOfType("*entity.Lead"))
}

func TestUpdateLead_TransitionIntoConvertedRecordsConversion(t *testing.T) {
	svc, leadRepo, conversionRepo := newLeadServiceWithMocks()
	ctx := tenantCtx()
	leadID := uuid.New()

	leadRepo.On("GetByID", ctx, leadID).Return(&entity.Lead{
		ID:     leadID,
		Name:   "Marta Rivas",
		Email:  "marta@example.com",
		Status: enum.LeadStatusNegotiation,
	}, nil)
	leadRepo.On("Update", ctx, mock.AnythingOfType("*entity.Lead")).Return(nil)
	conversionRepo.On("Record", ctx, mock.AnythingOfType("*entity.Lead")).
		Return(&entity.LeadConversion{ID: uuid.New(), LeadID: leadID}, nil)

	lead, err := svc.UpdateLead(ctx, &UpdateLeadInput{
		ID:     leadID,
		Status: statusPtr(enum.LeadStatusConverted),
	})

	require.NoError(t, err)
	assert.Equal(t, enum.LeadStatusConverted, lead.Status)
	conversionRepo.AssertNumberOfCalls(t, "Record", 1)
}

func TestUpdateLead_AlreadyConvertedDoesNotRecordAgain(t *testing.T) {
	svc, leadRepo, conversionRepo := newLeadServiceWithMocks()
	ctx := tenantCtx()
	leadID := uuid.New()

	leadRepo.On("GetByID", ctx, leadID).Return(&entity.Lead{
		ID:     leadID,
		Name:   "Marta Rivas",
		Email:  "marta@example.com",
		Status: enum.LeadStatusConverted,
	}, nil)
	leadRepo.On("Update", ctx, mock.AnythingOfType("*entity.Lead")).Return(nil)

	// Re-submitting CONVERTED is a no-op for the conversion record.
	_, err := svc.UpdateLead(ctx, &UpdateLeadInput{
		ID:     leadID,
		Status: statusPtr(enum.LeadStatusConverted),
	})

	require.NoError(t, err)
	conversionRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestUpdateLead_MovingOutOfConvertedKeepsConversion(t *testing.T) {
	svc, leadRepo, conversionRepo := newLeadServiceWithMocks()
	ctx := tenantCtx()
	leadID := uuid.New()

	leadRepo.On("GetByID", ctx, leadID).Return(&entity.Lead{
		ID:     leadID,
		Name:   "Marta Rivas",
		Email:  "marta@example.com",
		Status: enum.LeadStatusConverted,
	}, nil)
	leadRepo.On("Update", ctx, mock.AnythingOfType("*entity.Lead")).Return(nil)

	lead, err := svc.UpdateLead(ctx, &UpdateLeadInput{
		ID:     leadID,
		Status: statusPtr(enum.LeadStatusLost),
	})

	require.NoError(t, err)
	assert.Equal(t, enum.LeadStatusLost, lead.Status)
	conversionRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	conversionRepo.AssertNotCalled(t, "DeleteByLeadID", mock.Anything, mock.Anything)
}

func TestUpdateLead_InvalidStatusRejected(t *testing.T) {
	svc, leadRepo, _ := newLeadServiceWithMocks()
	ctx := tenantCtx()
	leadID := uuid.New()

	leadRepo.On("GetByID", ctx, leadID).Return(&entity.Lead{
		ID:     leadID,
		Status: enum.LeadStatusNew,
	}, nil)

	_, err := svc.UpdateLead(ctx, &UpdateLeadInput{
		ID:     leadID,
		Status: statusPtr(enum.LeadStatus(42)),
	})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	leadRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetLead_NotFound(t *testing.T) {
	svc, leadRepo, _ := newLeadServiceWithMocks()
	ctx := tenantCtx()
	leadID := uuid.New()

	leadRepo.On("GetByID", ctx, leadID).Return(nil, nil)

	_, err := svc.GetLead(ctx, leadID)

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)
}

func TestDeleteLead_RemovesConversionsFirst(t *testing.T) {
	svc, leadRepo, conversionRepo := newLeadServiceWithMocks()
	ctx := tenantCtx()
	leadID := uuid.New()

	var order []string
	leadRepo.On("GetByID", ctx, leadID).Return(&entity.Lead{ID: leadID}, nil)
	conversionRepo.On("DeleteByLeadID", ctx, leadID).Run(func(mock.Arguments) {
		order = append(order, "conversions")
	}).Return(nil)
	leadRepo.On("Delete", ctx, leadID).Run(func(mock.Arguments) {
		order = append(order, "lead")
	}).Return(nil)

	err := svc.DeleteLead(ctx, leadID)

	require.NoError(t, err)
	assert.Equal(t, []string{"conversions", "lead"}, order)
}

func TestDeleteLead_NotFound(t *testing.T) {
	svc, leadRepo, conversionRepo := newLeadServiceWithMocks()
	ctx := tenantCtx()
	leadID := uuid.New()

	leadRepo.On("GetByID", ctx, leadID).Return(nil, nil)

	err := svc.DeleteLead(ctx, leadID)

	require.Error(t, err)
	conversionRepo.AssertNotCalled(t, "DeleteByLeadID", mock.Anything, mock.Anything)
	leadRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGetLeadConversion_LeadNotConverted(t *testing.T) {
	svc, leadRepo, conversionRepo := newLeadServiceWithMocks()
	ctx := tenantCtx()
	leadID := uuid.New()

	leadRepo.On("GetByID", ctx, leadID).Return(&entity.Lead{
		ID:     leadID,
		Status: enum.LeadStatusQualified,
	}, nil)
	conversionRepo.On("GetByLeadID", ctx, leadID).Return(nil, nil)

	_, err := svc.GetLeadConversion(ctx, leadID)

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)
}
