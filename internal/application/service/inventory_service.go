package service

import (
	"context"
	"fmt"

	"github.com/fadhilmp/usahaku-api/internal/domain/entity"
	"github.com/fadhilmp/usahaku-api/internal/domain/repository"
	"github.com/fadhilmp/usahaku-api/pkg/apperror"
	"github.com/fadhilmp/usahaku-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// StockDemand is a requested stock movement for one product.
type StockDemand struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// StockShortfall reports one product whose availability does not cover the
// requested decrement.
type StockShortfall struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
}

// InsufficientStockError carries the full per-product shortfall report. The
// summary message names the first insufficient product; callers that can show
// more should use the Shortfalls list.
type InsufficientStockError struct {
	Shortfalls []StockShortfall
}

func (e *InsufficientStockError) Error() string {
	first := e.Shortfalls[0]
	return fmt.Sprintf("insufficient stock for %s: requested %s, available %s",
		first.Name, first.Requested, first.Available)
}

// ErrStockConflict is returned when a conditional decrement lost a race with a
// concurrent writer after validation had already passed.
var ErrStockConflict = apperror.NewConflictError("stock changed while applying the request, please retry")

// ProductionOrderInput is a transient production/assembly request. Component
// quantities are per-unit usage; the total requirement for a component is
// quantity multiplied by the output quantity.
type ProductionOrderInput struct {
	UserID            uuid.UUID
	FinishedProductID uuid.UUID
	OutputQuantity    decimal.Decimal
	Components        []StockDemand
	Notes             *string
}

// InventoryService coordinates stock state changes. Every request either
// applies to all affected stock records or to none: a write failing partway
// through triggers compensating writes restoring the pre-request quantities
// before the failure is surfaced.
type InventoryService struct {
	productRepo    repository.ProductRepository
	productionRepo repository.ProductionRepository
	log            *logrus.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	productRepo repository.ProductRepository,
	productionRepo repository.ProductionRepository,
	log *logrus.Logger,
) *InventoryService {
	return &InventoryService{
		productRepo:    productRepo,
		productionRepo: productionRepo,
		log:            log,
	}
}

// ApplySale validates and applies the stock decrements for a sale. Products
// with tracking disabled are exempt from both the check and the mutation.
func (s *InventoryService) ApplySale(ctx context.Context, demands []StockDemand) error {
	demands = combineDemands(demands)

	products, err := s.loadProducts(ctx, demands)
	if err != nil {
		return err
	}

	tracked := trackedDemands(demands, products)
	if shortfalls := checkAvailability(tracked, products); len(shortfalls) > 0 {
		s.logShortfalls("sale", shortfalls)
		return &InsufficientStockError{Shortfalls: shortfalls}
	}

	// Abandonment is honored up to this point only; once applying starts the
	// request runs to applied or rolled back.
	if err := ctx.Err(); err != nil {
		return err
	}
	applyCtx := context.WithoutCancel(ctx)

	_, err = s.applyDecrements(applyCtx, tracked)
	return err
}

// ReleaseSale restores the stock a sale consumed. Used as the compensating
// write when persisting the transaction fails after stock was decremented,
// and when a transaction is deleted.
func (s *InventoryService) ReleaseSale(ctx context.Context, demands []StockDemand) error {
	demands = combineDemands(demands)

	products, err := s.loadProducts(ctx, demands)
	if err != nil {
		return err
	}

	for _, d := range trackedDemands(demands, products) {
		if err := s.productRepo.IncrementStock(ctx, d.ProductID, d.Quantity); err != nil {
			s.log.WithFields(logrus.Fields{
				"module":  "inventory",
				"product": d.ProductID,
			}).WithError(err).Error("failed to restore stock")
			return err
		}
	}
	return nil
}

// ApplyProduction validates a production order, consumes the tracked
// components, increments the finished good and writes the audit record.
func (s *InventoryService) ApplyProduction(ctx context.Context, input ProductionOrderInput) (*entity.ProductionRecord, error) {
	if errs := validateProductionOrder(input); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	// Total component requirement is per-unit usage times the output
	// quantity; duplicate component lines are summed before any check.
	requirements := make([]StockDemand, 0, len(input.Components))
	for _, c := range input.Components {
		requirements = append(requirements, StockDemand{
			ProductID: c.ProductID,
			Quantity:  c.Quantity.Mul(input.OutputQuantity),
		})
	}
	requirements = combineDemands(requirements)

	lookup := append([]StockDemand{{ProductID: input.FinishedProductID}}, requirements...)
	products, err := s.loadProducts(ctx, lookup)
	if err != nil {
		return nil, err
	}

	finished := products[input.FinishedProductID]
	if !finished.TrackingEnabled {
		// A non-tracked finished good has nowhere to record the output.
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "finished_product_id",
			Message: fmt.Sprintf("product %s does not have stock tracking enabled", finished.Name),
		}})
	}

	tracked := trackedDemands(requirements, products)
	if shortfalls := checkAvailability(tracked, products); len(shortfalls) > 0 {
		s.logShortfalls("production", shortfalls)
		return nil, &InsufficientStockError{Shortfalls: shortfalls}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	applyCtx := context.WithoutCancel(ctx)

	applied, err := s.applyDecrements(applyCtx, tracked)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.IncrementStock(applyCtx, input.FinishedProductID, input.OutputQuantity); err != nil {
		s.rollbackDecrements(applyCtx, applied)
		s.log.WithFields(logrus.Fields{
			"module":  "inventory",
			"product": input.FinishedProductID,
		}).WithError(err).Error("failed to increment finished good, components rolled back")
		return nil, apperror.ErrInternalServer
	}

	record := &entity.ProductionRecord{
		UserID:         input.UserID,
		ProductID:      input.FinishedProductID,
		OutputQuantity: input.OutputQuantity,
		Notes:          input.Notes,
	}
	for _, r := range requirements {
		record.Components = append(record.Components, entity.ProductionComponent{
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
		})
	}

	if err := s.productionRepo.Create(applyCtx, record); err != nil {
		// Undo the finished-good increment and the component decrements.
		if _, derr := s.productRepo.DecrementStock(applyCtx, input.FinishedProductID, input.OutputQuantity); derr != nil {
			s.log.WithFields(logrus.Fields{
				"module":  "inventory",
				"product": input.FinishedProductID,
			}).Error("compensating decrement of finished good failed, stock left inconsistent")
		}
		s.rollbackDecrements(applyCtx, applied)
		s.log.WithFields(logrus.Fields{
			"module":  "inventory",
			"product": input.FinishedProductID,
		}).WithError(err).Error("failed to write production audit record, stock rolled back")
		return nil, apperror.ErrInternalServer
	}

	return record, nil
}

// GetProduction retrieves one production audit record
func (s *InventoryService) GetProduction(ctx context.Context, userID, id uuid.UUID) (*entity.ProductionRecord, error) {
	record, err := s.productionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Production record")
	}
	if record.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return record, nil
}

// ListProductions lists production audit records
func (s *InventoryService) ListProductions(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.ProductionRecord], error) {
	records, total, err := s.productionRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(records, pag), nil
}

// applyDecrements performs the conditional per-product decrements. On any
// failure the already-applied decrements are compensated before returning.
func (s *InventoryService) applyDecrements(ctx context.Context, demands []StockDemand) ([]StockDemand, error) {
	applied := make([]StockDemand, 0, len(demands))

	for _, d := range demands {
		ok, err := s.productRepo.DecrementStock(ctx, d.ProductID, d.Quantity)
		if err != nil {
			s.rollbackDecrements(ctx, applied)
			s.log.WithFields(logrus.Fields{
				"module":  "inventory",
				"product": d.ProductID,
				"amount":  d.Quantity,
			}).WithError(err).Error("stock decrement failed, applied decrements rolled back")
			return nil, apperror.ErrInternalServer
		}
		if !ok {
			// Validation passed moments ago, so a concurrent request consumed
			// the stock in between.
			s.rollbackDecrements(ctx, applied)
			return nil, ErrStockConflict
		}
		applied = append(applied, d)
	}

	return applied, nil
}

// rollbackDecrements issues the compensating increments for already-applied
// decrements. Failures here are logged with full context; there is nothing
// more the caller can do with them.
func (s *InventoryService) rollbackDecrements(ctx context.Context, applied []StockDemand) {
	for _, d := range applied {
		if err := s.productRepo.IncrementStock(ctx, d.ProductID, d.Quantity); err != nil {
			s.log.WithFields(logrus.Fields{
				"module":  "inventory",
				"product": d.ProductID,
				"amount":  d.Quantity,
			}).WithError(err).Error("compensating increment failed, stock left inconsistent")
		}
	}
}

func (s *InventoryService) loadProducts(ctx context.Context, demands []StockDemand) (map[uuid.UUID]*entity.Product, error) {
	ids := make([]uuid.UUID, 0, len(demands))
	for _, d := range demands {
		ids = append(ids, d.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", id))
		}
	}
	return byID, nil
}

func (s *InventoryService) logShortfalls(kind string, shortfalls []StockShortfall) {
	// The caller may only surface a summary; the full report is always logged.
	for _, sf := range shortfalls {
		s.log.WithFields(logrus.Fields{
			"module":    "inventory",
			"request":   kind,
			"product":   sf.ProductID,
			"name":      sf.Name,
			"requested": sf.Requested,
			"available": sf.Available,
		}).Warn("insufficient stock")
	}
}

// combineDemands sums duplicate product references so a product is never
// checked or deducted twice independently. First-appearance order is kept.
func combineDemands(demands []StockDemand) []StockDemand {
	combined := make([]StockDemand, 0, len(demands))
	index := make(map[uuid.UUID]int)

	for _, d := range demands {
		if at, seen := index[d.ProductID]; seen {
			combined[at].Quantity = combined[at].Quantity.Add(d.Quantity)
			continue
		}
		index[d.ProductID] = len(combined)
		combined = append(combined, d)
	}
	return combined
}

// trackedDemands filters out demands for products with tracking disabled.
func trackedDemands(demands []StockDemand, products map[uuid.UUID]*entity.Product) []StockDemand {
	tracked := make([]StockDemand, 0, len(demands))
	for _, d := range demands {
		if products[d.ProductID].TrackingEnabled {
			tracked = append(tracked, d)
		}
	}
	return tracked
}

func checkAvailability(demands []StockDemand, products map[uuid.UUID]*entity.Product) []StockShortfall {
	var shortfalls []StockShortfall
	for _, d := range demands {
		p := products[d.ProductID]
		if p.AvailableQuantity().LessThan(d.Quantity) {
			shortfalls = append(shortfalls, StockShortfall{
				ProductID: d.ProductID,
				Name:      p.Name,
				Requested: d.Quantity,
				Available: p.AvailableQuantity(),
			})
		}
	}
	return shortfalls
}

func validateProductionOrder(input ProductionOrderInput) []apperror.FieldError {
	var errs []apperror.FieldError

	if input.FinishedProductID == uuid.Nil {
		errs = append(errs, apperror.FieldError{
			Field:   "finished_product_id",
			Message: "finished product is required",
		})
	}
	if !input.OutputQuantity.IsPositive() {
		errs = append(errs, apperror.FieldError{
			Field:   "output_qty",
			Message: "output quantity must be greater than zero",
		})
	}
	if len(input.Components) == 0 {
		errs = append(errs, apperror.FieldError{
			Field:   "components",
			Message: "at least one component is required",
		})
	}
	for i, c := range input.Components {
		if c.ProductID == uuid.Nil {
			errs = append(errs, apperror.FieldError{
				Field:   fmt.Sprintf("components[%d].product_id", i),
				Message: "component product is required",
			})
		}
		if !c.Quantity.IsPositive() {
			errs = append(errs, apperror.FieldError{
				Field:   fmt.Sprintf("components[%d].qty", i),
				Message: "component quantity must be greater than zero",
			})
		}
		if c.ProductID == input.FinishedProductID {
			errs = append(errs, apperror.FieldError{
				Field:   fmt.Sprintf("components[%d].product_id", i),
				Message: "finished product cannot be one of its own components",
			})
		}
	}

	return errs
}
