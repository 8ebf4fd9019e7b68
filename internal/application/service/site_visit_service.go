package service

import (
	"context"
	"time"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/decoraworks/atelier-api/internal/domain/repository"
	infraRepo "github.com/decoraworks/atelier-api/internal/infrastructure/repository"
	"github.com/decoraworks/atelier-api/pkg/apperror"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/google/uuid"
)

// upcomingVisitHorizon is how far ahead the agenda looks
const upcomingVisitHorizon = 14 * 24 * time.Hour

// SiteVisitService handles scheduling of property visits for
// measurements, surveys and installation follow-ups
type SiteVisitService struct {
	visitRepo   repository.SiteVisitRepository
	leadRepo    repository.LeadRepository
	contactRepo repository.ContactRepository
}

// NewSiteVisitService creates a new site visit service
func NewSiteVisitService(
	visitRepo repository.SiteVisitRepository,
	leadRepo repository.LeadRepository,
	contactRepo repository.ContactRepository,
) *SiteVisitService {
	return &SiteVisitService{
		visitRepo:   visitRepo,
		leadRepo:    leadRepo,
		contactRepo: contactRepo,
	}
}

// ScheduleVisitInput represents the schedule visit input
type ScheduleVisitInput struct {
	LeadID         *uuid.UUID
	ContactID      *uuid.UUID
	AssignedUserID uuid.UUID
	ScheduledAt    time.Time
	Address        string
	Notes          *string
}

// ScheduleVisit schedules a visit for a lead or a contact
func (s *SiteVisitService) ScheduleVisit(ctx context.Context, input *ScheduleVisitInput) (*entity.SiteVisit, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if input.LeadID == nil && input.ContactID == nil {
		return nil, apperror.NewBadRequestError("A visit needs a lead or a contact")
	}
	if input.ScheduledAt.Before(time.Now().UTC()) {
		return nil, apperror.NewBadRequestError("Cannot schedule a visit in the past")
	}

	if input.LeadID != nil {
		lead, err := s.leadRepo.GetByID(ctx, *input.LeadID)
		if err != nil {
			return nil, err
		}
		if lead == nil {
			return nil, apperror.NewNotFoundError("Lead")
		}
	}
	if input.ContactID != nil {
		contact, err := s.contactRepo.GetByID(ctx, *input.ContactID)
		if err != nil {
			return nil, err
		}
		if contact == nil {
			return nil, apperror.NewNotFoundError("Contact")
		}
	}

	visit := &entity.SiteVisit{
		TenantID:       tenantID,
		LeadID:         input.LeadID,
		ContactID:      input.ContactID,
		AssignedUserID: input.AssignedUserID,
		ScheduledAt:    input.ScheduledAt,
		Status:         enum.VisitStatusScheduled,
		Address:        input.Address,
		Notes:          input.Notes,
	}

	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, err
	}

	return visit, nil
}

// GetVisit retrieves a site visit by ID
func (s *SiteVisitService) GetVisit(ctx context.Context, id uuid.UUID) (*entity.SiteVisit, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, apperror.NewNotFoundError("Site visit")
	}
	return visit, nil
}

// ListVisits lists site visits with optional status and assignee filtering
func (s *SiteVisitService) ListVisits(ctx context.Context, params *pagination.PaginationParams, status *enum.VisitStatus, assignedUserID *uuid.UUID) (*pagination.PaginatedResult[entity.SiteVisit], error) {
	visits, total, err := s.visitRepo.List(ctx, params, status, assignedUserID)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(visits, pag), nil
}

// GetUpcomingVisits returns the agenda: scheduled visits in the next
// two weeks, soonest first
func (s *SiteVisitService) GetUpcomingVisits(ctx context.Context, limit int) ([]entity.SiteVisit, error) {
	horizon := time.Now().UTC().Add(upcomingVisitHorizon)
	return s.visitRepo.ListUpcoming(ctx, horizon, limit)
}

// RescheduleVisitInput represents the reschedule visit input
type RescheduleVisitInput struct {
	ID             uuid.UUID
	ScheduledAt    *time.Time
	AssignedUserID *uuid.UUID
	Address        *string
	Notes          *string
}

// RescheduleVisit updates a scheduled visit. Completed or cancelled
// visits cannot be changed.
func (s *SiteVisitService) RescheduleVisit(ctx context.Context, input *RescheduleVisitInput) (*entity.SiteVisit, error) {
	visit, err := s.visitRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, apperror.NewNotFoundError("Site visit")
	}

	if visit.Status != enum.VisitStatusScheduled {
		return nil, apperror.NewBadRequestError("Only scheduled visits can be changed")
	}

	if input.ScheduledAt != nil {
		if input.ScheduledAt.Before(time.Now().UTC()) {
			return nil, apperror.NewBadRequestError("Cannot schedule a visit in the past")
		}
		visit.ScheduledAt = *input.ScheduledAt
	}
	if input.AssignedUserID != nil {
		visit.AssignedUserID = *input.AssignedUserID
	}
	if input.Address != nil {
		visit.Address = *input.Address
	}
	if input.Notes != nil {
		visit.Notes = input.Notes
	}

	if err := s.visitRepo.Update(ctx, visit); err != nil {
		return nil, err
	}

	return visit, nil
}

// CompleteVisit marks a scheduled visit as completed
func (s *SiteVisitService) CompleteVisit(ctx context.Context, id uuid.UUID, notes *string) (*entity.SiteVisit, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, apperror.NewNotFoundError("Site visit")
	}

	if visit.Status != enum.VisitStatusScheduled {
		return nil, apperror.NewBadRequestError("Only scheduled visits can be completed")
	}

	now := time.Now().UTC()
	visit.Status = enum.VisitStatusCompleted
	visit.CompletedAt = &now
	if notes != nil {
		visit.Notes = notes
	}

	if err := s.visitRepo.Update(ctx, visit); err != nil {
		return nil, err
	}

	return visit, nil
}

// CancelVisit cancels a scheduled visit
func (s *SiteVisitService) CancelVisit(ctx context.Context, id uuid.UUID) error {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if visit == nil {
		return apperror.NewNotFoundError("Site visit")
	}

	if visit.Status != enum.VisitStatusScheduled {
		return apperror.NewBadRequestError("Only scheduled visits can be cancelled")
	}

	return s.visitRepo.UpdateStatus(ctx, id, enum.VisitStatusCancelled)
}
