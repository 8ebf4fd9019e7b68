package handler

import (
	"strconv"
	"time"

	"github.com/decoraworks/atelier-api/internal/application/service"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/decoraworks/atelier-api/internal/domain/repository"
	"github.com/decoraworks/atelier-api/internal/presentation/http/dto/response"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LeadHandler handles lead-related HTTP requests
type LeadHandler struct {
	leadService *service.LeadService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// List handles listing leads with optional search and status filter
func (h *LeadHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	var status *enum.LeadStatus
	if statusStr := c.Query("status"); statusStr != "" {
		parsed, err := enum.ParseLeadStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid lead status")
			return
		}
		status = &parsed
	}

	result, err := h.leadService.ListLeads(c.Request.Context(), params, c.Query("search"), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Leads retrieved successfully", result)
}

// Create handles creating a lead
func (h *LeadHandler) Create(c *gin.Context) {
	var req struct {
		Name           string  `json:"name" binding:"required"`
		Email          string  `json:"email" binding:"required,email"`
		Phone          *string `json:"phone"`
		Status         *string `json:"status"`
		AssignedUserID *string `json:"assigned_user_id"`
		Source         *string `json:"source"`
		Notes          *string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateLeadInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Source: req.Source,
		Notes:  req.Notes,
	}

	if req.Status != nil {
		status, err := enum.ParseLeadStatus(*req.Status)
		if err != nil {
			response.BadRequest(c, "Invalid lead status")
			return
		}
		input.Status = &status
	}

	if req.AssignedUserID != nil {
		assignedID, err := uuid.Parse(*req.AssignedUserID)
		if err != nil {
			response.BadRequest(c, "Invalid assigned user ID")
			return
		}
		input.AssignedUserID = &assignedID
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lead created successfully", lead)
}

// Get handles retrieving a single lead
func (h *LeadHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	lead, err := h.leadService.GetLead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead retrieved successfully", lead)
}

// Update handles updating a lead, including the status transition that
// converts it into a contact
func (h *LeadHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	var req struct {
		Name           *string `json:"name"`
		Email          *string `json:"email"`
		Phone          *string `json:"phone"`
		Status         *string `json:"status"`
		AssignedUserID *string `json:"assigned_user_id"`
		Source         *string `json:"source"`
		Notes          *string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateLeadInput{
		ID:     id,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Source: req.Source,
		Notes:  req.Notes,
	}

	if req.Status != nil {
		status, err := enum.ParseLeadStatus(*req.Status)
		if err != nil {
			response.BadRequest(c, "Invalid lead status")
			return
		}
		input.Status = &status
	}

	if req.AssignedUserID != nil {
		assignedID, err := uuid.Parse(*req.AssignedUserID)
		if err != nil {
			response.BadRequest(c, "Invalid assigned user ID")
			return
		}
		input.AssignedUserID = &assignedID
	}

	lead, err := h.leadService.UpdateLead(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead updated successfully", lead)
}

// Delete handles deleting a lead and its conversion records
func (h *LeadHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	if err := h.leadService.DeleteLead(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetConversion handles retrieving the conversion record of a lead
func (h *LeadHandler) GetConversion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	conversion, err := h.leadService.GetLeadConversion(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Conversion retrieved successfully", conversion)
}

// ListConversions handles listing conversion records
func (h *LeadHandler) ListConversions(c *gin.Context) {
	filter := &repository.ConversionFilter{}

	if leadIDStr := c.Query("lead_id"); leadIDStr != "" {
		leadID, err := uuid.Parse(leadIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid lead ID")
			return
		}
		filter.LeadID = &leadID
	}
	if contactIDStr := c.Query("contact_id"); contactIDStr != "" {
		contactID, err := uuid.Parse(contactIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid contact ID")
			return
		}
		filter.ContactID = &contactID
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			response.BadRequest(c, "Invalid from date, expected RFC3339")
			return
		}
		filter.DateFrom = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			response.BadRequest(c, "Invalid to date, expected RFC3339")
			return
		}
		filter.DateTo = &to
	}

	conversions, err := h.leadService.ListConversions(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Conversions retrieved successfully", conversions)
}
