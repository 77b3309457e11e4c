package service

import (
	"context"

	"github.com/fadhilmp/usahaku-api/internal/domain/entity"
	"github.com/fadhilmp/usahaku-api/internal/domain/repository"
	"github.com/fadhilmp/usahaku-api/pkg/apperror"
	"github.com/fadhilmp/usahaku-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService handles product business logic
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UserID          uuid.UUID
	Name            string
	Code            string
	CategoryID      *uuid.UUID
	UnitID          *uuid.UUID
	SellingPrice    decimal.Decimal
	BuyingPrice     decimal.Decimal
	TrackingEnabled bool
	InitialQuantity *decimal.Decimal
	QuantityAlert   *decimal.Decimal
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	Name          *string
	Code          *string
	CategoryID    *uuid.UUID
	UnitID        *uuid.UUID
	SellingPrice  *decimal.Decimal
	BuyingPrice   *decimal.Decimal
	QuantityAlert *decimal.Decimal
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	var fieldErrs []apperror.FieldError
	if input.Name == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "name", Message: "product name is required"})
	}
	if input.SellingPrice.IsNegative() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "selling_price", Message: "selling price must not be negative"})
	}
	if input.BuyingPrice.IsNegative() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "buying_price", Message: "buying price must not be negative"})
	}
	if input.InitialQuantity != nil && input.InitialQuantity.IsNegative() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "initial_quantity", Message: "initial quantity must not be negative"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	if input.Code != "" {
		existing, err := s.productRepo.GetByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Product code already in use")
		}
	}

	product := &entity.Product{
		UserID:          input.UserID,
		Name:            input.Name,
		Code:            input.Code,
		CategoryID:      input.CategoryID,
		UnitID:          input.UnitID,
		SellingPrice:    input.SellingPrice,
		BuyingPrice:     input.BuyingPrice,
		TrackingEnabled: input.TrackingEnabled,
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}
	if input.TrackingEnabled {
		qty := decimal.Zero
		if input.InitialQuantity != nil {
			qty = *input.InitialQuantity
		}
		product.TrackedQuantity = &qty
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, userID, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if product.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return product, nil
}

// UpdateProduct updates product fields. Tracked quantity is deliberately not
// updatable here; it only moves through sales, production and restocks.
func (s *ProductService) UpdateProduct(ctx context.Context, userID, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{{
				Field: "name", Message: "product name is required",
			}})
		}
		product.Name = *input.Name
	}
	if input.Code != nil && *input.Code != product.Code {
		if *input.Code != "" {
			existing, err := s.productRepo.GetByCode(ctx, *input.Code)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != product.ID {
				return nil, apperror.NewConflictError("Product code already in use")
			}
		}
		product.Code = *input.Code
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.UnitID != nil {
		product.UnitID = input.UnitID
	}
	if input.SellingPrice != nil {
		if input.SellingPrice.IsNegative() {
			return nil, apperror.NewValidationError([]apperror.FieldError{{
				Field: "selling_price", Message: "selling price must not be negative",
			}})
		}
		product.SellingPrice = *input.SellingPrice
	}
	if input.BuyingPrice != nil {
		if input.BuyingPrice.IsNegative() {
			return nil, apperror.NewValidationError([]apperror.FieldError{{
				Field: "buying_price", Message: "buying price must not be negative",
			}})
		}
		product.BuyingPrice = *input.BuyingPrice
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, userID, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering and pagination
func (s *ProductService) ListProducts(ctx context.Context, userID uuid.UUID, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStockProducts returns tracked products at or below their alert level
func (s *ProductService) GetLowStockProducts(ctx context.Context, userID uuid.UUID) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx, userID)
}

// RestockProduct adds quantity to a tracked product
func (s *ProductService) RestockProduct(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*entity.Product, error) {
	if !amount.IsPositive() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "amount", Message: "restock amount must be greater than zero",
		}})
	}

	product, err := s.GetProduct(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !product.TrackingEnabled {
		return nil, apperror.NewBadRequestError("Product does not track stock")
	}

	if err := s.productRepo.IncrementStock(ctx, id, amount); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, id)
}
