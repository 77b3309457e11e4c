package service

import (
	"context"
	"time"

	"github.com/fadhilmp/usahaku-api/internal/domain/entity"
	"github.com/fadhilmp/usahaku-api/internal/domain/enum"
	"github.com/fadhilmp/usahaku-api/internal/domain/finance"
	"github.com/fadhilmp/usahaku-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardService aggregates transaction totals into the home screen figures
type DashboardService struct {
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(transactionRepo repository.TransactionRepository, productRepo repository.ProductRepository) *DashboardService {
	return &DashboardService{transactionRepo: transactionRepo, productRepo: productRepo}
}

// DashboardSummary holds the aggregated figures for a period
type DashboardSummary struct {
	PeriodStart      time.Time        `json:"period_start"`
	PeriodEnd        time.Time        `json:"period_end"`
	TotalIncome      decimal.Decimal  `json:"total_income"`
	TotalExpense     decimal.Decimal  `json:"total_expense"`
	NetCashflow      decimal.Decimal  `json:"net_cashflow"`
	CashBufferTarget decimal.Decimal  `json:"cash_buffer_target"`
	LowStockProducts []entity.Product `json:"low_stock_products"`
}

// GetSummary computes income, expense and net cashflow for the given period.
// The cash buffer target is CashAlertMultiplier times the average monthly
// expense over the three months preceding the period end.
func (s *DashboardService) GetSummary(ctx context.Context, userID uuid.UUID, from, to time.Time) (*DashboardSummary, error) {
	income, err := s.transactionRepo.SumGrandTotal(ctx, userID, enum.TransactionTypeIncome, from, to)
	if err != nil {
		return nil, err
	}
	expense, err := s.transactionRepo.SumGrandTotal(ctx, userID, enum.TransactionTypeExpense, from, to)
	if err != nil {
		return nil, err
	}

	trailingStart := to.AddDate(0, -3, 0)
	trailingExpense, err := s.transactionRepo.SumGrandTotal(ctx, userID, enum.TransactionTypeExpense, trailingStart, to)
	if err != nil {
		return nil, err
	}
	avgMonthlyExpense := finance.RoundMoney(trailingExpense.Div(decimal.NewFromInt(3)))
	bufferTarget := avgMonthlyExpense.Mul(finance.CashAlertMultiplier)

	lowStock, err := s.productRepo.GetLowStock(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		PeriodStart:      from,
		PeriodEnd:        to,
		TotalIncome:      income,
		TotalExpense:     expense,
		NetCashflow:      income.Sub(expense),
		CashBufferTarget: bufferTarget,
		LowStockProducts: lowStock,
	}, nil
}
