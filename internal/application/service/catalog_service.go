package service

import (
	"context"
	"strings"

	"github.com/fadhilmp/usahaku-api/internal/domain/entity"
	"github.com/fadhilmp/usahaku-api/internal/domain/repository"
	"github.com/fadhilmp/usahaku-api/pkg/apperror"
	"github.com/fadhilmp/usahaku-api/pkg/pagination"
	"github.com/google/uuid"
)

// CatalogService manages categories and units of measurement
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(categoryRepo repository.CategoryRepository, unitRepo repository.UnitRepository) *CatalogService {
	return &CatalogService{categoryRepo: categoryRepo, unitRepo: unitRepo}
}

// CreateCategory creates a new category
func (s *CatalogService) CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "name", Message: "category name is required",
		}})
	}

	slug := slugify(name)
	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.UserID == userID {
		return nil, apperror.NewConflictError("Category already exists")
	}

	category := &entity.Category{
		UserID: userID,
		Name:   name,
		Slug:   slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists categories with pagination and search
func (s *CatalogService) ListCategories(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// UpdateCategory renames a category
func (s *CatalogService) UpdateCategory(ctx context.Context, userID, id uuid.UUID, name string) (*entity.Category, error) {
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "name", Message: "category name is required",
		}})
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	if category.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	category.Name = name
	category.Slug = slugify(name)
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category
func (s *CatalogService) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	if category.UserID != userID {
		return apperror.ErrForbidden
	}
	return s.categoryRepo.Delete(ctx, id)
}

// CreateUnit creates a new unit of measurement
func (s *CatalogService) CreateUnit(ctx context.Context, userID uuid.UUID, name, shortCode string) (*entity.Unit, error) {
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "name", Message: "unit name is required",
		}})
	}

	slug := slugify(name)
	existing, err := s.unitRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.UserID == userID {
		return nil, apperror.NewConflictError("Unit already exists")
	}

	unit := &entity.Unit{
		UserID:    userID,
		Name:      name,
		Slug:      slug,
		ShortCode: shortCode,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// ListUnits lists units with pagination and search
func (s *CatalogService) ListUnits(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Unit], error) {
	units, total, err := s.unitRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(units, pag), nil
}

// DeleteUnit deletes a unit
func (s *CatalogService) DeleteUnit(ctx context.Context, userID, id uuid.UUID) error {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if unit == nil {
		return apperror.NewNotFoundError("Unit")
	}
	if unit.UserID != userID {
		return apperror.ErrForbidden
	}
	return s.unitRepo.Delete(ctx, id)
}

// slugify turns a display name into a lower-kebab slug.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
