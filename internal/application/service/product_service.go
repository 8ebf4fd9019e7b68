package service

import (
	"context"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/decoraworks/atelier-api/internal/domain/repository"
	infraRepo "github.com/decoraworks/atelier-api/internal/infrastructure/repository"
	"github.com/decoraworks/atelier-api/pkg/apperror"
	"github.com/decoraworks/atelier-api/pkg/pagination"
	"github.com/decoraworks/atelier-api/pkg/utils"
	"github.com/google/uuid"
)

// ProductService handles the studio catalogue: products, categories and
// stock levels
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	CategoryID   *uuid.UUID
	Name         string
	SKU          string
	Description  *string
	Supplier     *string
	Dimensions   *string
	Material     *string
	Stock        int
	StockAlert   int
	CostPrice    float64
	SellingPrice float64
	Tax          int
	TaxType      int
	ImageURL     *string
}

// CreateProduct creates a new catalogue product. The SKU is generated
// when not provided.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	sku := input.SKU
	if sku == "" {
		sku = utils.GenerateSKU()
	}

	existing, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product SKU already exists")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	product := &entity.Product{
		TenantID:    tenantID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        utils.Slugify(input.Name),
		SKU:         sku,
		Description: input.Description,
		Supplier:    input.Supplier,
		Dimensions:  input.Dimensions,
		Material:    input.Material,
		Stock:       input.Stock,
		StockAlert:  input.StockAlert,
		Tax:         input.Tax,
		TaxType:     enum.TaxType(input.TaxType),
		ImageURL:    input.ImageURL,
	}
	product.SetCostPriceFromDecimal(input.CostPrice)
	product.SetSellingPriceFromDecimal(input.SellingPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by slug
func (s *ProductService) GetProduct(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists catalogue products with optional search and
// category filtering
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string, categoryID *uuid.UUID) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params, search, categoryID)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStockProducts returns products at or below their alert threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID           uuid.UUID
	CategoryID   *uuid.UUID
	Name         *string
	Description  *string
	Supplier     *string
	Dimensions   *string
	Material     *string
	Stock        *int
	StockAlert   *int
	CostPrice    *float64
	SellingPrice *float64
	Tax          *int
	TaxType      *int
	ImageURL     *string
}

// UpdateProduct updates a product. Renaming regenerates the slug.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}

	if input.Name != nil {
		product.Name = *input.Name
		product.Slug = utils.Slugify(*input.Name)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Supplier != nil {
		product.Supplier = input.Supplier
	}
	if input.Dimensions != nil {
		product.Dimensions = input.Dimensions
	}
	if input.Material != nil {
		product.Material = input.Material
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.StockAlert != nil {
		product.StockAlert = *input.StockAlert
	}
	if input.CostPrice != nil {
		product.SetCostPriceFromDecimal(*input.CostPrice)
	}
	if input.SellingPrice != nil {
		product.SetSellingPriceFromDecimal(*input.SellingPrice)
	}
	if input.Tax != nil {
		product.Tax = *input.Tax
	}
	if input.TaxType != nil {
		product.TaxType = enum.TaxType(*input.TaxType)
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, id)
}

// CategoryService handles catalogue categories
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	slug := utils.Slugify(name)
	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	category := &entity.Category{
		TenantID: tenantID,
		Name:     name,
		Slug:     slug,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists categories with optional search
func (s *CategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	category.Name = name
	category.Slug = utils.Slugify(name)

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory deletes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	return s.categoryRepo.Delete(ctx, id)
}
