package repository

import (
	"context"
	"time"

	"github.com/fadhilmp/usahaku-api/internal/domain/entity"
	"github.com/fadhilmp/usahaku-api/internal/domain/enum"
	"github.com/fadhilmp/usahaku-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	// Create persists the transaction together with its items and fees.
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	// GetWithDetails retrieves a transaction with items and fees preloaded.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	// GetDue returns deferred transactions with an outstanding balance.
	GetDue(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Transaction, int64, error)
	// SumGrandTotal sums grand totals of one type over a date range, for the
	// dashboard summary.
	SumGrandTotal(ctx context.Context, userID uuid.UUID, txType enum.TransactionType, from, to time.Time) (decimal.Decimal, error)
}

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Type          *enum.TransactionType
	PaymentStatus *enum.PaymentStatus
	Category      string
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}

// ProductionRepository defines the interface for production audit records
type ProductionRepository interface {
	Create(ctx context.Context, record *entity.ProductionRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductionRecord, error)
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.ProductionRecord, int64, error)
}
