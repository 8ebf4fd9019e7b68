package request

import "github.com/google/uuid"

// CreateProductRequest represents a catalogue product creation request
type CreateProductRequest struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	Name         string     `json:"name" binding:"required,min=2,max=255"`
	SKU          string     `json:"sku" binding:"omitempty,max=100"`
	Description  *string    `json:"description"`
	Supplier     *string    `json:"supplier" binding:"omitempty,max=255"`
	Dimensions   *string    `json:"dimensions" binding:"omitempty,max=100"`
	Material     *string    `json:"material" binding:"omitempty,max=100"`
	Stock        int        `json:"stock" binding:"min=0"`
	StockAlert   int        `json:"stock_alert" binding:"min=0"`
	CostPrice    float64    `json:"cost_price" binding:"min=0"`
	SellingPrice float64    `json:"selling_price" binding:"min=0"`
	Tax          int        `json:"tax" binding:"min=0,max=100"`
	TaxType      int        `json:"tax_type" binding:"min=0,max=1"`
	ImageURL     *string    `json:"image_url"`
}

// UpdateProductRequest represents a catalogue product update request
type UpdateProductRequest struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	Name         *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Description  *string    `json:"description"`
	Supplier     *string    `json:"supplier" binding:"omitempty,max=255"`
	Dimensions   *string    `json:"dimensions" binding:"omitempty,max=100"`
	Material     *string    `json:"material" binding:"omitempty,max=100"`
	Stock        *int       `json:"stock" binding:"omitempty,min=0"`
	StockAlert   *int       `json:"stock_alert" binding:"omitempty,min=0"`
	CostPrice    *float64   `json:"cost_price" binding:"omitempty,min=0"`
	SellingPrice *float64   `json:"selling_price" binding:"omitempty,min=0"`
	Tax          *int       `json:"tax" binding:"omitempty,min=0,max=100"`
	TaxType      *int       `json:"tax_type" binding:"omitempty,min=0,max=1"`
	ImageURL     *string    `json:"image_url"`
}

// CategoryRequest represents a category create/update request
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}
