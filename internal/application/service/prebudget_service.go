package service

import (
	"context"
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

// PreBudgetService handles preliminary budgets prepared for leads and
// contacts before a project is committed
type PreBudgetService struct {
	preBudgetRepo     repository.PreBudgetRepository
	preBudgetItemRepo repository.PreBudgetItemRepository
	leadRepo          repository.LeadRepository
	contactRepo       repository.ContactRepository
	tenantRepo        repository.TenantRepository
}

// NewPreBudgetService creates a new pre-budget service
func NewPreBudgetService(
	preBudgetRepo repository.PreBudgetRepository,
	preBudgetItemRepo repository.PreBudgetItemRepository,
	leadRepo repository.LeadRepository,
	contactRepo repository.ContactRepository,
	tenantRepo repository.TenantRepository,
) *PreBudgetService {
	return &PreBudgetService{
		preBudgetRepo:     preBudgetRepo,
		preBudgetItemRepo: preBudgetItemRepo,
		leadRepo:          leadRepo,
		contactRepo:       contactRepo,
		tenantRepo:        tenantRepo,
	}
}

// PreBudgetItemInput is a single requested line of a pre-budget
type PreBudgetItemInput struct {
	ProductID   *uuid.UUID
	Description string
	Quantity    int
	UnitPrice   float64
}

// CreatePreBudgetInput represents the create pre-budget input
type CreatePreBudgetInput struct {
	UserID     uuid.UUID
	LeadID     *uuid.UUID
	ContactID  *uuid.UUID
	Title      string
	ValidUntil *time.Time
	Notes      *string
	Items      []PreBudgetItemInput
}

// CreatePreBudget creates a pre-budget for a lead or a contact and
// computes its totals with the tenant's VAT rate
func (s *PreBudgetService) CreatePreBudget(ctx context.Context, input *CreatePreBudgetInput) (*entity.PreBudget, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if input.LeadID == nil && input.ContactID == nil {
		return nil, apperror.NewBadRequestError("A pre-budget needs a lead or a contact")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("A pre-budget needs at least one item")
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

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Tenant")
	}
	settings := tenant.GetSettings()

	var subTotal int64
	items := make([]entity.PreBudgetItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		unitPrice := int64(math.Round(in.UnitPrice * 100))
		lineTotal := unitPrice * int64(in.Quantity)
		subTotal += lineTotal
		items = append(items, entity.PreBudgetItem{
			ProductID:   in.ProductID,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   unitPrice,
			Total:       lineTotal,
		})
	}

	vat := int64(float64(subTotal) * settings.TaxRate / 100)

	preBudget := &entity.PreBudget{
		TenantID:   tenantID,
		UserID:     input.UserID,
		LeadID:     input.LeadID,
		ContactID:  input.ContactID,
		Reference:  utils.GeneratePreBudgetReference(settings.PreBudgetPrefix),
		Title:      input.Title,
		Status:     enum.PreBudgetStatusDraft,
		SubTotal:   subTotal,
		VAT:        vat,
		Total:      subTotal + vat,
		ValidUntil: input.ValidUntil,
		Notes:      input.Notes,
	}

	if err := s.preBudgetRepo.Create(ctx, preBudget); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].PreBudgetID = preBudget.ID
	}
	if err := s.preBudgetItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.preBudgetRepo.GetWithItems(ctx, preBudget.ID)
}

// GetPreBudget retrieves a pre-budget with its items
func (s *PreBudgetService) GetPreBudget(ctx context.Context, id uuid.UUID) (*entity.PreBudget, error) {
	preBudget, err := s.preBudgetRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if preBudget == nil {
		return nil, apperror.NewNotFoundError("Pre-budget")
	}
	return preBudget, nil
}

// ListPreBudgets lists pre-budgets with optional search and status filtering
func (s *PreBudgetService) ListPreBudgets(ctx context.Context, params *pagination.PaginationParams, search string, status *enum.PreBudgetStatus) (*pagination.PaginatedResult[entity.PreBudget], error) {
	preBudgets, total, err := s.preBudgetRepo.List(ctx, params, search, status)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(preBudgets, pag), nil
}

// UpdatePreBudgetInput represents the update pre-budget input. When
// Items is non-nil the whole item set is replaced and totals recomputed.
type UpdatePreBudgetInput struct {
	ID         uuid.UUID
	Title      *string
	ValidUntil *time.Time
	Notes      *string
	Items      []PreBudgetItemInput
}

// UpdatePreBudget updates a draft pre-budget. Sent or decided
// pre-budgets are immutable apart from their status.
func (s *PreBudgetService) UpdatePreBudget(ctx context.Context, input *UpdatePreBudgetInput) (*entity.PreBudget, error) {
	preBudget, err := s.preBudgetRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if preBudget == nil {
		return nil, apperror.NewNotFoundError("Pre-budget")
	}

	if preBudget.Status != enum.PreBudgetStatusDraft {
		return nil, apperror.NewBadRequestError("Only draft pre-budgets can be edited")
	}

	if input.Title != nil {
		preBudget.Title = *input.Title
	}
	if input.ValidUntil != nil {
		preBudget.ValidUntil = input.ValidUntil
	}
	if input.Notes != nil {
		preBudget.Notes = input.Notes
	}

	if input.Items != nil {
		if len(input.Items) == 0 {
			return nil, apperror.NewBadRequestError("A pre-budget needs at least one item")
		}

		tenantID, _ := infraRepo.GetTenantID(ctx)
		tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, apperror.NewNotFoundError("Tenant")
		}
		settings := tenant.GetSettings()

		var subTotal int64
		items := make([]entity.PreBudgetItem, 0, len(input.Items))
		for _, in := range input.Items {
			if in.Quantity <= 0 {
				return nil, apperror.NewBadRequestError("Item quantity must be positive")
			}
			unitPrice := int64(math.Round(in.UnitPrice * 100))
			lineTotal := unitPrice * int64(in.Quantity)
			subTotal += lineTotal
			items = append(items, entity.PreBudgetItem{
				PreBudgetID: preBudget.ID,
				ProductID:   in.ProductID,
				Description: in.Description,
				Quantity:    in.Quantity,
				UnitPrice:   unitPrice,
				Total:       lineTotal,
			})
		}

		if err := s.preBudgetItemRepo.DeleteByPreBudgetID(ctx, preBudget.ID); err != nil {
			return nil, err
		}
		if err := s.preBudgetItemRepo.CreateBatch(ctx, items); err != nil {
			return nil, err
		}

		vat := int64(float64(subTotal) * settings.TaxRate / 100)
		preBudget.SubTotal = subTotal
		preBudget.VAT = vat
		preBudget.Total = subTotal + vat
	}

	if err := s.preBudgetRepo.Update(ctx, preBudget); err != nil {
		return nil, err
	}

	return s.preBudgetRepo.GetWithItems(ctx, preBudget.ID)
}

// SendPreBudget marks a draft pre-budget as sent to the client
func (s *PreBudgetService) SendPreBudget(ctx context.Context, id uuid.UUID) (*entity.PreBudget, error) {
	return s.transition(ctx, id, enum.PreBudgetStatusSent)
}

// ApprovePreBudget marks a sent pre-budget as approved by the client
func (s *PreBudgetService) ApprovePreBudget(ctx context.Context, id uuid.UUID) (*entity.PreBudget, error) {
	return s.transition(ctx, id, enum.PreBudgetStatusApproved)
}

// RejectPreBudget marks a sent pre-budget as rejected by the client
func (s *PreBudgetService) RejectPreBudget(ctx context.Context, id uuid.UUID) (*entity.PreBudget, error) {
	return s.transition(ctx, id, enum.PreBudgetStatusRejected)
}

// transition enforces the pre-budget lifecycle:
// DRAFT -> SENT -> APPROVED | REJECTED
func (s *PreBudgetService) transition(ctx context.Context, id uuid.UUID, target enum.PreBudgetStatus) (*entity.PreBudget, error) {
	preBudget, err := s.preBudgetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if preBudget == nil {
		return nil, apperror.NewNotFoundError("Pre-budget")
	}

	now := time.Now().UTC()
	switch target {
	case enum.PreBudgetStatusSent:
		if preBudget.Status != enum.PreBudgetStatusDraft {
			return nil, apperror.NewBadRequestError("Only draft pre-budgets can be sent")
		}
		preBudget.SentAt = &now
	case enum.PreBudgetStatusApproved, enum.PreBudgetStatusRejected:
		if preBudget.Status != enum.PreBudgetStatusSent {
			return nil, apperror.NewBadRequestError("Only sent pre-budgets can be decided")
		}
		preBudget.DecidedAt = &now
	default:
		return nil, apperror.NewBadRequestError("Invalid pre-budget status")
	}

	preBudget.Status = target
	if err := s.preBudgetRepo.Update(ctx, preBudget); err != nil {
		return nil, err
	}

	return preBudget, nil
}

// DeletePreBudget deletes a pre-budget and its items
func (s *PreBudgetService) DeletePreBudget(ctx context.Context, id uuid.UUID) error {
	preBudget, err := s.preBudgetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if preBudget == nil {
		return apperror.NewNotFoundError("Pre-budget")
	}

	if err := s.preBudgetItemRepo.DeleteByPreBudgetID(ctx, id); err != nil {
		return err
	}

	return s.preBudgetRepo.Delete(ctx, id)
}
