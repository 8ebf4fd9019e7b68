package service

import (
	"context"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/decoraworks/atelier-api/internal/domain/repository"
	infraRepo "github.com/decoraworks/atelier-api/internal/infrastructure/repository"
	"github.com/decoraworks/atelier-api/pkg/apperror"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/google/uuid"
)

// maxConversionListSize caps how many conversion records a single
// listing returns
const maxConversionListSize = 100

// LeadService handles the sales pipeline: leads, their status
// transitions and the conversion into contacts
type LeadService struct {
	leadRepo       repository.LeadRepository
	conversionRepo repository.LeadConversionRepository
}

// NewLeadService creates a new lead service. Contact resolution during
// a conversion happens inside the conversion repository, in the same
// transaction as the conversion insert.
func NewLeadService(
	leadRepo repository.LeadRepository,
	conversionRepo repository.LeadConversionRepository,
) *LeadService {
	return &LeadService{
		leadRepo:       leadRepo,
		conversionRepo: conversionRepo,
	}
}

// CreateLeadInput represents the create lead input
type CreateLeadInput struct {
	Name           string
	Email          string
	Phone          *string
	Status         *enum.LeadStatus
	AssignedUserID *uuid.UUID
	Source         *string
	Notes          *string
}

// CreateLead creates a new lead. Status defaults to NEW when omitted.
// A lead created directly as CONVERTED still goes through the
// conversion recording, the same as an update would.
func (s *LeadService) CreateLead(ctx context.Context, input *CreateLeadInput) (*entity.Lead, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	status := enum.LeadStatusNew
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid lead status")
		}
		status = *input.Status
	}

	lead := &entity.Lead{
		TenantID:       tenantID,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Status:         status,
		AssignedUserID: input.AssignedUserID,
		Source:         input.Source,
		Notes:          input.Notes,
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}

	if status == enum.LeadStatusConverted {
		if _, err := s.conversionRepo.Record(ctx, lead); err != nil {
			return nil, err
		}
	}

	return lead, nil
}

// GetLead retrieves a lead by ID. A lead belonging to another tenant is
// reported as not found, never as forbidden.
func (s *LeadService) GetLead(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}
	return lead, nil
}

// ListLeads lists leads with optional search and status filtering
func (s *LeadService) ListLeads(ctx context.Context, params *pagination.PaginationParams, search string, status *enum.LeadStatus) (*pagination.PaginatedResult[entity.Lead], error) {
	if status != nil && !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid lead status")
	}

	leads, total, err := s.leadRepo.List(ctx, params, search, status)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(leads, pag), nil
}

// UpdateLeadInput represents the update lead input. Nil fields are left
// unchanged.
type UpdateLeadInput struct {
	ID             uuid.UUID
	Name           *string
	Email          *string
	Phone          *string
	Status         *enum.LeadStatus
	AssignedUserID *uuid.UUID
	Source         *string
	Notes          *string
}

// UpdateLead updates a lead. When the update moves the lead into
// CONVERTED from any other status, the conversion side effect runs:
// a contact is reused or created for the lead's email and a conversion
// record is written. Updating a lead that is already CONVERTED (even
// re-submitting CONVERTED) does not record anything again, and moving
// a lead out of CONVERTED leaves the existing conversion in place.
func (s *LeadService) UpdateLead(ctx context.Context, input *UpdateLeadInput) (*entity.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}

	previousStatus := lead.Status

	if input.Name != nil {
		lead.Name = *input.Name
	}
	if input.Email != nil {
		lead.Email = *input.Email
	}
	if input.Phone != nil {
		lead.Phone = input.Phone
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid lead status")
		}
		lead.Status = *input.Status
	}
	if input.AssignedUserID != nil {
		lead.AssignedUserID = input.AssignedUserID
	}
	if input.Source != nil {
		lead.Source = input.Source
	}
	if input.Notes != nil {
		lead.Notes = input.Notes
	}

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}

	// Conversion fires only on the transition into CONVERTED
	if previousStatus != enum.LeadStatusConverted && lead.Status == enum.LeadStatusConverted {
		if _, err := s.conversionRepo.Record(ctx, lead); err != nil {
			return nil, err
		}
	}

	return lead, nil
}

// DeleteLead deletes a lead and its conversion records. Conversions go
// first so the foreign key on lead_id never dangles. Contacts created
// by a conversion survive the lead's deletion.
func (s *LeadService) DeleteLead(ctx context.Context, id uuid.UUID) error {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lead == nil {
		return apperror.NewNotFoundError("Lead")
	}

	if err := s.conversionRepo.DeleteByLeadID(ctx, id); err != nil {
		return err
	}

	return s.leadRepo.Delete(ctx, id)
}

// GetLeadConversion retrieves the conversion record for a lead, if the
// lead has been converted
func (s *LeadService) GetLeadConversion(ctx context.Context, leadID uuid.UUID) (*entity.LeadConversion, error) {
	lead, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}

	conversion, err := s.conversionRepo.GetByLeadID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if conversion == nil {
		return nil, apperror.NewNotFoundError("Conversion")
	}
	return conversion, nil
}

// ListConversions lists conversion records, most recent first, with
// their lead and contact attached
func (s *LeadService) ListConversions(ctx context.Context, filter *repository.ConversionFilter) ([]entity.LeadConversion, error) {
	return s.conversionRepo.List(ctx, filter, maxConversionListSize)
}

// CountLeadsByStatus returns the pipeline breakdown for the dashboard
func (s *LeadService) CountLeadsByStatus(ctx context.Context) (map[enum.LeadStatus]int64, error) {
	return s.leadRepo.CountByStatus(ctx)
}
