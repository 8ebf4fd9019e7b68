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
	"github.com/decoraworks/atelier-api/pkg/apperror"
	"github.com/decoraworks/atelier-api/pkg/pagination"
)

type MockSiteVisitRepository struct {
	mock.Mock
}

func (m *MockSiteVisitRepository) Create(ctx context.Context, visit *entity.SiteVisit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockSiteVisitRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SiteVisit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SiteVisit), args.Error(1)
}

func (m *MockSiteVisitRepository) Update(ctx context.Context, visit *entity.SiteVisit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockSiteVisitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSiteVisitRepository) List(ctx context.Context, params *pagination.PaginationParams, status *enum.VisitStatus, assignedUserID *uuid.UUID) ([]entity.SiteVisit, int64, error) {
	args := m.Called(ctx, params, status, assignedUserID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.SiteVisit), args.Get(1).(int64), args.Error(2)
}

func (m *MockSiteVisitRepository) ListUpcoming(ctx context.Context, horizon time.Time, limit int) ([]entity.SiteVisit, error) {
	args := m.Called(ctx, horizon, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SiteVisit), args.Error(1)
}

func (m *MockSiteVisitRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.VisitStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func newSiteVisitServiceWithMocks() (*SiteVisitService, *MockSiteVisitRepository, *MockLeadRepository, *MockContactRepository) {
	visitRepo := new(MockSiteVisitRepository)
	leadRepo := new(MockLeadRepository)
	contactRepo := new(MockContactRepository)
	return NewSiteVisitService(visitRepo, leadRepo, contactRepo), visitRepo, leadRepo, contactRepo
}

func TestScheduleVisit_ForLead(t *testing.T) {
	svc, visitRepo, leadRepo, _ := newSiteVisitServiceWithMocks()
	ctx := tenantCtx()

	leadID := uuid.New()
	when := time.Now().UTC().Add(48 * time.Hour)
	leadRepo.On("GetByID", ctx, leadID).Return(&entity.Lead{ID: leadID}, nil)
	visitRepo.On("Create", ctx, mock.AnythingOfType("*entity.SiteVisit")).Return(nil)

	visit, err := svc.ScheduleVisit(ctx, &ScheduleVisitInput{
		LeadID:         &leadID,
		AssignedUserID: uuid.New(),
		ScheduledAt:    when,
		Address:        "Calle Mayor 12, Madrid",
	})

	require.NoError(t, err)
	assert.Equal(t, enum.VisitStatusScheduled, visit.Status)
	assert.Equal(t, when, visit.ScheduledAt)
	visitRepo.AssertExpectations(t)
}

func TestScheduleVisit_RequiresLeadOrContact(t *testing.T) {
	svc, visitRepo, _, _ := newSiteVisitServiceWithMocks()

	_, err := svc.ScheduleVisit(tenantCtx(), &ScheduleVisitInput{
		AssignedUserID: uuid.New(),
		ScheduledAt:    time.Now().UTC().Add(time.Hour),
		Address:        "Somewhere",
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	visitRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestScheduleVisit_RejectsPastTime(t *testing.T) {
	svc, _, _, _ := newSiteVisitServiceWithMocks()
	leadID := uuid.New()

	_, err := svc.ScheduleVisit(tenantCtx(), &ScheduleVisitInput{
		LeadID:         &leadID,
		AssignedUserID: uuid.New(),
		ScheduledAt:    time.Now().UTC().Add(-time.Hour),
		Address:        "Somewhere",
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestScheduleVisit_UnknownContact(t *testing.T) {
	svc, _, _, contactRepo := newSiteVisitServiceWithMocks()
	ctx := tenantCtx()

	contactID := uuid.New()
	contactRepo.On("GetByID", ctx, contactID).Return(nil, nil)

	_, err := svc.ScheduleVisit(ctx, &ScheduleVisitInput{
		ContactID:      &contactID,
		AssignedUserID: uuid.New(),
		ScheduledAt:    time.Now().UTC().Add(time.Hour),
		Address:        "Somewhere",
	})

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestScheduleVisit_RequiresTenantContext(t *testing.T) {
	svc, _, _, _ := newSiteVisitServiceWithMocks()
	leadID := uuid.New()

	_, err := svc.ScheduleVisit(context.Background(), &ScheduleVisitInput{
		LeadID:         &leadID,
		AssignedUserID: uuid.New(),
		ScheduledAt:    time.Now().UTC().Add(time.Hour),
		Address:        "Somewhere",
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestRescheduleVisit_PartialUpdate(t *testing.T) {
	svc, visitRepo, _, _ := newSiteVisitServiceWithMocks()
	ctx := tenantCtx()

	id := uuid.New()
	original := time.Now().UTC().Add(24 * time.Hour)
	visitRepo.On("GetByID", ctx, id).Return(&entity.SiteVisit{
		ID:          id,
		Status:      enum.VisitStatusScheduled,
		ScheduledAt: original,
		Address:     "Old address",
	}, nil)
	visitRepo.On("Update", ctx, mock.AnythingOfType("*entity.SiteVisit")).Return(nil)

	newAddress := "Av. Diagonal 400, Barcelona"
	visit, err := svc.RescheduleVisit(ctx, &RescheduleVisitInput{
		ID:      id,
		Address: &newAddress,
	})

	require.NoError(t, err)
	assert.Equal(t, newAddress, visit.Address)
	assert.Equal(t, original, visit.ScheduledAt, "fields not in the input stay as they were")
}

func TestRescheduleVisit_RejectsCompletedVisit(t *testing.T) {
	svc, visitRepo, _, _ := newSiteVisitServiceWithMocks()
	ctx := tenantCtx()

	id := uuid.New()
	visitRepo.On("GetByID", ctx, id).Return(&entity.SiteVisit{
		ID:     id,
		Status: enum.VisitStatusCompleted,
	}, nil)

	when := time.Now().UTC().Add(time.Hour)
	_, err := svc.RescheduleVisit(ctx, &RescheduleVisitInput{ID: id, ScheduledAt: &when})

	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	visitRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCompleteVisit_SetsCompletionDetails(t *testing.T) {
	svc, visitRepo, _, _ := newSiteVisitServiceWithMocks()
	ctx := tenantCtx()

	id := uuid.New()
	visitRepo.On("GetByID", ctx, id).Return(&entity.SiteVisit{
		ID:     id,
		Status: enum.VisitStatusScheduled,
	}, nil)
	visitRepo.On("Update", ctx, mock.AnythingOfType("*entity.SiteVisit")).Return(nil)

	notes := "Measured the living room, client wants oak flooring"
	visit, err := svc.CompleteVisit(ctx, id, &notes)

	require.NoError(t, err)
	assert.Equal(t, enum.VisitStatusCompleted, visit.Status)
	require.NotNil(t, visit.CompletedAt)
	require.NotNil(t, visit.Notes)
	assert.Equal(t, notes, *visit.Notes)
}

func TestCancelVisit_OnlyScheduled(t *testing.T) {
	svc, visitRepo, _, _ := newSiteVisitServiceWithMocks()
	ctx := tenantCtx()

	cancelled := uuid.New()
	visitRepo.On("GetByID", ctx, cancelled).Return(&entity.SiteVisit{
		ID:     cancelled,
		Status: enum.VisitStatusCancelled,
	}, nil)

	err := svc.CancelVisit(ctx, cancelled)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	scheduled := uuid.New()
	visitRepo.On("GetByID", ctx, scheduled).Return(&entity.SiteVisit{
		ID:     scheduled,
		Status: enum.VisitStatusScheduled,
	}, nil)
	visitRepo.On("UpdateStatus", ctx, scheduled, enum.VisitStatusCancelled).Return(nil)

	require.NoError(t, svc.CancelVisit(ctx, scheduled))
	visitRepo.AssertExpectations(t)
}

func TestGetUpcomingVisits_PassesLimit(t *testing.T) {
	svc, visitRepo, _, _ := newSiteVisitServiceWithMocks()
	ctx := tenantCtx()

	visitRepo.On("ListUpcoming", ctx, mock.AnythingOfType("time.Time"), 5).
		Return([]entity.SiteVisit{{ID: uuid.New()}}, nil)

	visits, err := svc.GetUpcomingVisits(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, visits, 1)
}
