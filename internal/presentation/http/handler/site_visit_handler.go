package handler

import (
	"strconv"
	"time"

	"github.com/decoraworks/atelier-api/internal/application/service"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/decoraworks/atelier-api/internal/presentation/http/dto/response"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SiteVisitHandler handles site visit HTTP requests
type SiteVisitHandler struct {
	visitService *service.SiteVisitService
}

// NewSiteVisitHandler creates a new site visit handler
func NewSiteVisitHandler(visitService *service.SiteVisitService) *SiteVisitHandler {
	return &SiteVisitHandler{visitService: visitService}
}

// List handles listing site visits
func (h *SiteVisitHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	var status *enum.VisitStatus
	if statusStr := c.Query("status"); statusStr != "" {
		parsed, err := enum.ParseVisitStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid visit status")
			return
		}
		status = &parsed
	}

	var assignedUserID *uuid.UUID
	if userIDStr := c.Query("assigned_user_id"); userIDStr != "" {
		parsed, err := uuid.Parse(userIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid assigned user ID")
			return
		}
		assignedUserID = &parsed
	}

	result, err := h.visitService.ListVisits(c.Request.Context(), params, status, assignedUserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Site visits retrieved successfully", result)
}

// Create handles scheduling a site visit
func (h *SiteVisitHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		LeadID         *string   `json:"lead_id"`
		ContactID      *string   `json:"contact_id"`
		AssignedUserID *string   `json:"assigned_user_id"`
		ScheduledAt    time.Time `json:"scheduled_at" binding:"required"`
		Address        string    `json:"address" binding:"required"`
		Notes          *string   `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Visits default to the user scheduling them.
	input := &service.ScheduleVisitInput{
		AssignedUserID: *userID,
		ScheduledAt:    req.ScheduledAt,
		Address:        req.Address,
		Notes:          req.Notes,
	}

	if req.LeadID != nil {
		leadID, err := uuid.Parse(*req.LeadID)
		if err != nil {
			response.BadRequest(c, "Invalid lead ID")
			return
		}
		input.LeadID = &leadID
	}
	if req.ContactID != nil {
		contactID, err := uuid.Parse(*req.ContactID)
		if err != nil {
			response.BadRequest(c, "Invalid contact ID")
			return
		}
		input.ContactID = &contactID
	}
	if req.AssignedUserID != nil {
		assignedID, err := uuid.Parse(*req.AssignedUserID)
		if err != nil {
			response.BadRequest(c, "Invalid assigned user ID")
			return
		}
		input.AssignedUserID = assignedID
	}

	visit, err := h.visitService.ScheduleVisit(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Site visit scheduled successfully", visit)
}

// Get handles retrieving a site visit
func (h *SiteVisitHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid visit ID")
		return
	}

	visit, err := h.visitService.GetVisit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Site visit retrieved successfully", visit)
}

// Reschedule handles updating a scheduled visit
func (h *SiteVisitHandler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid visit ID")
		return
	}

	var req struct {
		ScheduledAt    *time.Time `json:"scheduled_at"`
		AssignedUserID *string    `json:"assigned_user_id"`
		Address        *string    `json:"address"`
		Notes          *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.RescheduleVisitInput{
		ID:          id,
		ScheduledAt: req.ScheduledAt,
		Address:     req.Address,
		Notes:       req.Notes,
	}
	if req.AssignedUserID != nil {
		userID, err := uuid.Parse(*req.AssignedUserID)
		if err != nil {
			response.BadRequest(c, "Invalid assigned user ID")
			return
		}
		input.AssignedUserID = &userID
	}

	visit, err := h.visitService.RescheduleVisit(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Site visit rescheduled successfully", visit)
}

// Complete handles marking a visit as completed
func (h *SiteVisitHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid visit ID")
		return
	}

	var req struct {
		Notes *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, err.Error())
		return
	}

	visit, err := h.visitService.CompleteVisit(c.Request.Context(), id, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Site visit completed successfully", visit)
}

// Cancel handles cancelling a scheduled visit
func (h *SiteVisitHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid visit ID")
		return
	}

	if err := h.visitService.CancelVisit(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Site visit cancelled successfully", nil)
}

// Upcoming handles listing upcoming scheduled visits
func (h *SiteVisitHandler) Upcoming(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	visits, err := h.visitService.GetUpcomingVisits(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Upcoming site visits retrieved successfully", visits)
}
