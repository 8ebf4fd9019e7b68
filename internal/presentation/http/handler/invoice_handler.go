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

// InvoiceHandler handles invoice and sales HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing invoices with filtering
func (h *InvoiceHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.InvoiceFilterParams{
		Pagination: pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseInvoiceStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid invoice status")
			return
		}
		params.Status = &status
	}
	if contactIDStr := c.Query("contact_id"); contactIDStr != "" {
		contactID, err := uuid.Parse(contactIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid contact ID")
			return
		}
		params.ContactID = &contactID
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			response.BadRequest(c, "Invalid from date, expected RFC3339")
			return
		}
		params.DateFrom = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			response.BadRequest(c, "Invalid to date, expected RFC3339")
			return
		}
		params.DateTo = &to
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles issuing an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		ContactID uuid.UUID `json:"contact_id" binding:"required"`
		Paid      float64   `json:"paid" binding:"min=0"`
		Notes     *string   `json:"notes"`
		Items     []struct {
			ProductID uuid.UUID `json:"product_id" binding:"required"`
			Quantity  int       `json:"quantity" binding:"required,min=1"`
			UnitPrice *float64  `json:"unit_price" binding:"omitempty,min=0"`
		} `json:"items" binding:"required,min=1,dive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateInvoiceInput{
		UserID:    *userID,
		ContactID: req.ContactID,
		Paid:      req.Paid,
		Notes:     req.Notes,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.InvoiceItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles retrieving an invoice with its items
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// RecordPayment handles recording a payment towards an invoice
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", invoice)
}

// Cancel handles cancelling an invoice
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.CancelInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice cancelled successfully", nil)
}

// ListSales handles listing product sale facts
func (h *InvoiceHandler) ListSales(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	filter := &repository.SaleFilter{}
	if productIDStr := c.Query("product_id"); productIDStr != "" {
		productID, err := uuid.Parse(productIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid product ID")
			return
		}
		filter.ProductID = &productID
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

	result, err := h.invoiceService.ListSales(c.Request.Context(), filter, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}
