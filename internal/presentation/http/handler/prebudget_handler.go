package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/decoraworks/atelier-api/internal/application/service"
	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/decoraworks/atelier-api/internal/presentation/http/dto/response"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PreBudgetHandler handles pre-budget HTTP requests
type PreBudgetHandler struct {
	preBudgetService *service.PreBudgetService
}

// NewPreBudgetHandler creates a new pre-budget handler
func NewPreBudgetHandler(preBudgetService *service.PreBudgetService) *PreBudgetHandler {
	return &PreBudgetHandler{preBudgetService: preBudgetService}
}

type preBudgetItemRequest struct {
	ProductID   *uuid.UUID `json:"product_id"`
	Description string     `json:"description" binding:"required,max=255"`
	Quantity    int        `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64    `json:"unit_price" binding:"min=0"`
}

func toItemInputs(items []preBudgetItemRequest) []service.PreBudgetItemInput {
	inputs := make([]service.PreBudgetItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.PreBudgetItemInput{
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return inputs
}

// List handles listing pre-budgets
func (h *PreBudgetHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	var status *enum.PreBudgetStatus
	if statusStr := c.Query("status"); statusStr != "" {
		parsed, err := enum.ParsePreBudgetStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid pre-budget status")
			return
		}
		status = &parsed
	}

	result, err := h.preBudgetService.ListPreBudgets(c.Request.Context(), params, c.Query("search"), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Pre-budgets retrieved successfully", result)
}

// Create handles creating a pre-budget
func (h *PreBudgetHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		LeadID     *uuid.UUID             `json:"lead_id"`
		ContactID  *uuid.UUID             `json:"contact_id"`
		Title      string                 `json:"title" binding:"required,max=255"`
		ValidUntil *time.Time             `json:"valid_until"`
		Notes      *string                `json:"notes"`
		Items      []preBudgetItemRequest `json:"items" binding:"required,min=1,dive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	preBudget, err := h.preBudgetService.CreatePreBudget(c.Request.Context(), &service.CreatePreBudgetInput{
		UserID:     *userID,
		LeadID:     req.LeadID,
		ContactID:  req.ContactID,
		Title:      req.Title,
		ValidUntil: req.ValidUntil,
		Notes:      req.Notes,
		Items:      toItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Pre-budget created successfully", preBudget)
}

// Get handles retrieving a pre-budget with its items
func (h *PreBudgetHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid pre-budget ID")
		return
	}

	preBudget, err := h.preBudgetService.GetPreBudget(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pre-budget retrieved successfully", preBudget)
}

// Update handles updating a draft pre-budget
func (h *PreBudgetHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid pre-budget ID")
		return
	}

	var req struct {
		Title      *string                `json:"title" binding:"omitempty,max=255"`
		ValidUntil *time.Time             `json:"valid_until"`
		Notes      *string                `json:"notes"`
		Items      []preBudgetItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdatePreBudgetInput{
		ID:         id,
		Title:      req.Title,
		ValidUntil: req.ValidUntil,
		Notes:      req.Notes,
	}
	if req.Items != nil {
		input.Items = toItemInputs(req.Items)
	}

	preBudget, err := h.preBudgetService.UpdatePreBudget(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pre-budget updated successfully", preBudget)
}

// Send handles marking a pre-budget as sent
func (h *PreBudgetHandler) Send(c *gin.Context) {
	h.transition(c, h.preBudgetService.SendPreBudget, "Pre-budget sent successfully")
}

// Approve handles marking a pre-budget as approved
func (h *PreBudgetHandler) Approve(c *gin.Context) {
	h.transition(c, h.preBudgetService.ApprovePreBudget, "Pre-budget approved successfully")
}

// Reject handles marking a pre-budget as rejected
func (h *PreBudgetHandler) Reject(c *gin.Context) {
	h.transition(c, h.preBudgetService.RejectPreBudget, "Pre-budget rejected successfully")
}

func (h *PreBudgetHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*entity.PreBudget, error), message string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid pre-budget ID")
		return
	}

	preBudget, err := fn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, preBudget)
}

// Delete handles deleting a pre-budget
func (h *PreBudgetHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid pre-budget ID")
		return
	}

	if err := h.preBudgetService.DeletePreBudget(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
