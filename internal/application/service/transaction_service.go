package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadhilmp/usahaku-api/internal/domain/classify"
	"github.com/fadhilmp/usahaku-api/internal/domain/entity"
	"github.com/fadhilmp/usahaku-api/internal/domain/enum"
	"github.com/fadhilmp/usahaku-api/internal/domain/finance"
	"github.com/fadhilmp/usahaku-api/internal/domain/repository"
	"github.com/fadhilmp/usahaku-api/pkg/apperror"
	"github.com/fadhilmp/usahaku-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TransactionService composes the computation core into the create/list/pay
// flows: lines are normalized and merged, totals cascade once, the payment
// choice is validated, and only then is stock touched and the record written.
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	inventory       *InventoryService
	log             *logrus.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	inventory *InventoryService,
	log *logrus.Logger,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		inventory:       inventory,
		log:             log,
	}
}

// TransactionItemInput represents one raw line in a submission
type TransactionItemInput struct {
	ProductID *uuid.UUID
	Name      string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal
}

// FeeInput represents one extra fee in a submission
type FeeInput struct {
	Name   string
	Amount decimal.Decimal
}

// CreateTransactionInput represents the create transaction input
type CreateTransactionInput struct {
	UserID             uuid.UUID
	Type               enum.TransactionType
	Category           string
	TransactionDate    time.Time
	Items              []TransactionItemInput
	DiscountMode       enum.DiscountMode
	DiscountValue      decimal.Decimal
	TaxEnabled         bool
	WithholdingPreset  enum.WithholdingPreset
	WithholdingPercent decimal.Decimal
	Fees               []FeeInput
	PaymentMethod      string
	PaymentStatus      enum.PaymentStatus
	DownPayment        decimal.Decimal
	DueDate            *time.Time
	Notes              *string
}

// CreateTransactionResult carries the stored transaction plus every warning
// raised along the way (clamps, full-down-payment-on-deferred, and so on).
// Warnings never block; they exist so nothing is corrected silently.
type CreateTransactionResult struct {
	Transaction *entity.Transaction `json:"transaction"`
	Warnings    []string            `json:"warnings,omitempty"`
}

// CreateTransaction validates, computes and persists a transaction. For
// income transactions whose items reference tracked products, stock is
// decremented before the record is written and restored if the write fails.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionResult, error) {
	var fieldErrs []apperror.FieldError

	if !input.Type.Valid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{
			Field: "type", Message: "transaction type must be Income or Expense",
		})
	}

	candidates := make([]finance.LineCandidate, 0, len(input.Items))
	for _, item := range input.Items {
		candidates = append(candidates, finance.LineCandidate{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			UnitPrice: item.UnitPrice,
		})
	}
	lines, lineErrs := finance.NormalizeLines(candidates)
	fieldErrs = append(fieldErrs, lineErrs...)

	fees := make([]finance.Fee, 0, len(input.Fees))
	for i, fee := range input.Fees {
		if fee.Amount.IsNegative() {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field:   fmt.Sprintf("fees[%d].amount", i),
				Message: "fee amount must not be negative",
			})
			continue
		}
		fees = append(fees, finance.Fee{Name: fee.Name, Amount: fee.Amount})
	}

	withholdingPercent, err := finance.WithholdingRate(input.WithholdingPreset, input.WithholdingPercent)
	if err != nil {
		fieldErrs = append(fieldErrs, apperror.FieldError{
			Field: "withholding_percent", Message: err.Error(),
		})
	}

	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	lines = finance.MergeDuplicates(lines)

	totals, warnings := finance.ComputeTotals(lines,
		finance.DiscountSpec{Mode: input.DiscountMode, Value: input.DiscountValue},
		input.TaxEnabled, withholdingPercent, fees)

	txDate := input.TransactionDate
	if txDate.IsZero() {
		txDate = time.Now()
	}

	check := finance.ValidatePayment(totals.GrandTotal, input.PaymentStatus, input.DownPayment, input.DueDate, txDate)
	if !check.Valid {
		return nil, apperror.NewValidationError(check.Errors)
	}
	warnings = append(warnings, check.Warnings...)

	category := input.Category
	autoCategorized := false
	if category == "" {
		// Only classify when the user left the category blank; an explicit
		// choice is never overridden.
		if suggestion, ok := classify.Suggest(s.classifierText(lines, input.Notes)); ok {
			category = suggestion.Category
			autoCategorized = true
		}
	}

	downPayment := finance.SettledDownPayment(totals.GrandTotal, input.PaymentStatus, input.DownPayment)
	remaining := finance.DeriveRemaining(totals.GrandTotal, input.PaymentStatus, input.DownPayment)

	tx := &entity.Transaction{
		UserID:            input.UserID,
		InvoiceNo:         fmt.Sprintf("TRX-%s", uuid.New().String()[:8]),
		Type:              input.Type,
		Category:          category,
		AutoCategorized:   autoCategorized,
		TransactionDate:   txDate,
		SubTotal:          totals.Subtotal,
		DiscountMode:      input.DiscountMode,
		DiscountValue:     input.DiscountValue,
		DiscountAmount:    totals.DiscountAmount,
		TaxEnabled:        input.TaxEnabled,
		TaxAmount:         totals.TaxAmount,
		WithholdingPreset: input.WithholdingPreset,
		WithholdingAmount: totals.WithholdingAmount,
		OtherFeesTotal:    totals.OtherFeesTotal,
		GrandTotal:        totals.GrandTotal,
		PaymentMethod:     input.PaymentMethod,
		PaymentStatus:     input.PaymentStatus,
		DownPayment:       downPayment,
		Remaining:         remaining,
		DueDate:           input.DueDate,
		Notes:             input.Notes,
	}
	for _, line := range lines {
		tx.Items = append(tx.Items, entity.TransactionItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Unit:      line.Unit,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}
	for _, fee := range fees {
		tx.Fees = append(tx.Fees, entity.TransactionFee{
			Name:   fee.Name,
			Amount: fee.Amount,
		})
	}

	demands := stockDemands(tx)
	if input.Type == enum.TransactionTypeIncome && len(demands) > 0 {
		if err := s.inventory.ApplySale(ctx, demands); err != nil {
			return nil, err
		}
	}

	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		// Stock was already decremented, restore it before surfacing.
		if input.Type == enum.TransactionTypeIncome && len(demands) > 0 {
			if rerr := s.inventory.ReleaseSale(context.WithoutCancel(ctx), demands); rerr != nil {
				s.log.WithFields(logrus.Fields{
					"module":  "transaction",
					"invoice": tx.InvoiceNo,
				}).WithError(rerr).Error("stock restore after failed persist did not complete")
			}
		}
		s.log.WithFields(logrus.Fields{
			"module":  "transaction",
			"invoice": tx.InvoiceNo,
		}).WithError(err).Error("failed to persist transaction")
		return nil, apperror.ErrInternalServer
	}

	return &CreateTransactionResult{Transaction: tx, Warnings: warnings}, nil
}

// GetTransaction retrieves a transaction with its items and fees
func (s *TransactionService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	tx, err := s.transactionRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if tx.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return tx, nil
}

// ListTransactions lists transactions with filtering
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	txs, total, err := s.transactionRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txs, pag), nil
}

// GetDueTransactions returns deferred transactions with an outstanding balance
func (s *TransactionService) GetDueTransactions(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	txs, total, err := s.transactionRepo.GetDue(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(txs, pag), nil
}

// PayRemaining records a payment against a deferred transaction's balance.
// The remaining amount stays derived from the grand total and what has been
// paid; it is never accepted from the caller.
func (s *TransactionService) PayRemaining(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*entity.Transaction, error) {
	tx, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if tx.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	if tx.PaymentStatus != enum.PaymentStatusDeferred {
		return nil, apperror.NewBadRequestError("Transaction is already fully paid")
	}
	if !amount.IsPositive() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "amount", Message: "payment amount must be greater than zero",
		}})
	}
	if amount.GreaterThan(tx.Remaining) {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "amount",
			Message: fmt.Sprintf("payment %s exceeds the remaining balance %s", amount, tx.Remaining),
		}})
	}

	tx.DownPayment = tx.DownPayment.Add(amount)
	tx.Remaining = finance.DeriveRemaining(tx.GrandTotal, tx.PaymentStatus, tx.DownPayment)
	if tx.Remaining.IsZero() {
		tx.PaymentStatus = enum.PaymentStatusPaid
	}

	if err := s.transactionRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// DeleteTransaction removes a transaction. Stock consumed by an income
// transaction is restored only after the row is gone, so a failed delete
// never leaves restored stock next to a transaction that still exists.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	tx, err := s.transactionRepo.GetWithDetails(ctx, id)
	if err != nil {
		return err
	}
	if tx == nil {
		return apperror.NewNotFoundError("Transaction")
	}
	if tx.UserID != userID {
		return apperror.ErrForbidden
	}

	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		return err
	}

	demands := stockDemands(tx)
	if tx.Type == enum.TransactionTypeIncome && len(demands) > 0 {
		if rerr := s.inventory.ReleaseSale(context.WithoutCancel(ctx), demands); rerr != nil {
			s.log.WithFields(logrus.Fields{
				"module":  "transaction",
				"invoice": tx.InvoiceNo,
			}).WithError(rerr).Error("stock restore after delete did not complete")
		}
	}
	return nil
}

func (s *TransactionService) classifierText(lines []finance.LineItem, notes *string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line.Name)
		b.WriteString(" ")
	}
	if notes != nil {
		b.WriteString(*notes)
	}
	return b.String()
}

// stockDemands extracts the product-linked quantities of a transaction.
func stockDemands(tx *entity.Transaction) []StockDemand {
	var demands []StockDemand
	for _, item := range tx.Items {
		if item.ProductID == nil {
			continue
		}
		demands = append(demands, StockDemand{
			ProductID: *item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return demands
}
