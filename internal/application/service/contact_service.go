package service

import (
	"context"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/repository"
	infraRepo "github.com/decoraworks/atelier-api/internal/infrastructure/repository"
	"github.com/decoraworks/atelier-api/pkg/apperror"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/google/uuid"
)

// ContactService handles client contacts, whether entered directly or
// produced by a lead conversion
type ContactService struct {
	contactRepo repository.ContactRepository
}

// NewContactService creates a new contact service
func NewContactService(contactRepo repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// CreateContactInput represents the create contact input
type CreateContactInput struct {
	Name    string
	Email   string
	Phone   *string
	Address *string
	Notes   *string
}

// CreateContact creates a new contact. The email must be unique within
// the tenant because conversions look contacts up by it.
func (s *ContactService) CreateContact(ctx context.Context, input *CreateContactInput) (*entity.Contact, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	existing, err := s.contactRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A contact with this email already exists")
	}

	contact := &entity.Contact{
		TenantID: tenantID,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		Notes:    input.Notes,
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

// GetContact retrieves a contact by ID
func (s *ContactService) GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}
	return contact, nil
}

// ListContacts lists contacts with optional search
func (s *ContactService) ListContacts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Contact], error) {
	contacts, total, err := s.contactRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(contacts, pag), nil
}

// UpdateContactInput represents the update contact input
type UpdateContactInput struct {
	ID      uuid.UUID
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Notes   *string
}

// UpdateContact updates a contact
func (s *ContactService) UpdateContact(ctx context.Context, input *UpdateContactInput) (*entity.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}

	if input.Email != nil && *input.Email != contact.Email {
		existing, err := s.contactRepo.GetByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A contact with this email already exists")
		}
		contact.Email = *input.Email
	}

	if input.Name != nil {
		contact.Name = *input.Name
	}
	if input.Phone != nil {
		contact.Phone = input.Phone
	}
	if input.Address != nil {
		contact.Address = input.Address
	}
	if input.Notes != nil {
		contact.Notes = input.Notes
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

// DeleteContact deletes a contact
func (s *ContactService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contact == nil {
		return apperror.NewNotFoundError("Contact")
	}

	return s.contactRepo.Delete(ctx, id)
}
