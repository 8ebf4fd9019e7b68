package handler

import (
	"strconv"

	"github.com/decoraworks/atelier-api/internal/application/service"
	"github.com/decoraworks/atelier-api/internal/presentation/http/dto/response"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContactHandler handles contact-related HTTP requests
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// List handles listing contacts
func (h *ContactHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.contactService.ListContacts(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Contacts retrieved successfully", result)
}

// Create handles creating a contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req struct {
		Name    string  `json:"name" binding:"required"`
		Email   string  `json:"email" binding:"required,email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		Notes   *string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), &service.CreateContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Contact created successfully", contact)
}

// Get handles retrieving a single contact
func (h *ContactHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid contact ID")
		return
	}

	contact, err := h.contactService.GetContact(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact retrieved successfully", contact)
}

// Update handles updating a contact
func (h *ContactHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid contact ID")
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Email   *string `json:"email" binding:"omitempty,email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		Notes   *string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), &service.UpdateContactInput{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact updated successfully", contact)
}

// Delete handles deleting a contact
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid contact ID")
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
