package repository

import (
	"context"

	"github.com/fadhilmp/usahaku-api/internal/domain/entity"
	"github.com/fadhilmp/usahaku-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data operations.
//
// DecrementStock and IncrementStock are the only writers of tracked
// quantities. DecrementStock performs the availability check and the write in
// a single conditional statement, so the read-check-write sequence for one
// product is a critical section even under concurrent callers.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context, userID uuid.UUID) ([]entity.Product, error)
	// DecrementStock decrements a tracked quantity only if the stored value
	// still covers the amount. Returns (false, nil) when it does not, which
	// means either insufficient stock or a concurrent writer got there first.
	DecrementStock(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)
	// IncrementStock increases a tracked quantity. Used for purchases,
	// production output and compensating writes during rollback.
	IncrementStock(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string
	CategoryID  *uuid.UUID
	UnitID      *uuid.UUID
	LowStock    bool
	TrackedOnly bool
	SortBy      string
	SortOrder   string
}
