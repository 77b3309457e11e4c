package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/fadhilmp/usahaku-api/internal/domain/entity"
	"github.com/fadhilmp/usahaku-api/internal/domain/repository"
	"github.com/fadhilmp/usahaku-api/pkg/apperror"
	"github.com/fadhilmp/usahaku-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProductRepo is an in-memory ProductRepository with injectable write
// failures, so rollback paths can be driven deterministically.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product

	decrementCalls int
	// failDecrementAt makes the nth DecrementStock call return an error.
	failDecrementAt int
	// conflictAt makes the nth DecrementStock call report a lost race.
	conflictAt int
	// failIncrementFor makes IncrementStock fail for the given product.
	failIncrementFor uuid.UUID
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, userID uuid.UUID, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context, userID uuid.UUID) ([]entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.decrementCalls++
	if r.failDecrementAt != 0 && r.decrementCalls == r.failDecrementAt {
		return false, errors.New("write failed")
	}
	if r.conflictAt != 0 && r.decrementCalls == r.conflictAt {
		return false, nil
	}

	p, ok := r.products[id]
	if !ok || !p.TrackingEnabled || p.TrackedQuantity == nil || p.TrackedQuantity.LessThan(amount) {
		return false, nil
	}
	next := p.TrackedQuantity.Sub(amount)
	p.TrackedQuantity = &next
	return true, nil
}

func (r *fakeProductRepo) IncrementStock(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == r.failIncrementFor {
		return errors.New("write failed")
	}
	p, ok := r.products[id]
	if !ok {
		return errors.New("product not found")
	}
	next := p.AvailableQuantity().Add(amount)
	p.TrackedQuantity = &next
	return nil
}

func (r *fakeProductRepo) quantity(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	require.True(t, ok)
	return p.AvailableQuantity()
}

// fakeProductionRepo is an in-memory ProductionRepository.
type fakeProductionRepo struct {
	mu        sync.Mutex
	records   []*entity.ProductionRecord
	createErr error
}

func (r *fakeProductionRepo) Create(ctx context.Context, record *entity.ProductionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.records = append(r.records, record)
	return nil
}

func (r *fakeProductionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *fakeProductionRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.ProductionRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.ProductionRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, int64(len(out)), nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func trackedProduct(name string, qty int64) *entity.Product {
	q := decimal.NewFromInt(qty)
	return &entity.Product{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		Name:            name,
		Code:            name,
		TrackingEnabled: true,
		TrackedQuantity: &q,
	}
}

func untrackedProduct(name string) *entity.Product {
	return &entity.Product{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   name,
		Code:   name,
	}
}

func demand(id uuid.UUID, qty int64) StockDemand {
	return StockDemand{ProductID: id, Quantity: decimal.NewFromInt(qty)}
}

func TestApplySaleDecrementsTrackedStock(t *testing.T) {
	flour := trackedProduct("Tepung Terigu", 10)
	repo := newFakeProductRepo(flour)
	svc := NewInventoryService(repo, &fakeProductionRepo{}, quietLogger())

	err := svc.ApplySale(context.Background(), []StockDemand{demand(flour.ID, 4)})

	require.NoError(t, err)
	assert.True(t, repo.quantity(t, flour.ID).Equal(decimal.NewFromInt(6)))
}

func TestApplySaleRejectsInsufficientStock(t *testing.T) {
	flour := trackedProduct("Tepung Terigu", 5)
	repo := newFakeProductRepo(flour)
	svc := NewInventoryService(repo, &fakeProductionRepo{}, quietLogger())

	err := svc.ApplySale(context.Background(), []StockDemand{demand(flour.ID, 6)})

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Shortfalls, 1)
	assert.True(t, insufficient.Shortfalls[0].Requested.Equal(decimal.NewFromInt(6)))
	assert.True(t, insufficient.Shortfalls[0].Available.Equal(decimal.NewFromInt(5)))
	// Nothing was written.
	assert.True(t, repo.quantity(t, flour.ID).Equal(decimal.NewFromInt(5)))
}

func TestApplySaleSumsDuplicateDemands(t *testing.T) {
	flour := trackedProduct("Tepung Terigu", 5)
	repo := newFakeProductRepo(flour)
	svc := NewInventoryService(repo, &fakeProductionRepo{}, quietLogger())

	// 3 + 3 must be checked as 6 against 5, not twice as 3.
	err := svc.ApplySale(context.Background(), []StockDemand{
		demand(flour.ID, 3),
		demand(flour.ID, 3),
	})

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Shortfalls[0].Requested.Equal(decimal.NewFromInt(6)))
}

func TestApplySaleExemptsUntrackedProducts(t *testing.T) {
	service := untrackedProduct("Jasa Antar")
	flour := trackedProduct("Tepung Terigu", 10)
	repo := newFakeProductRepo(service, flour)
	svc := NewInventoryService(repo, &fakeProductionRepo{}, quietLogger())

	err := svc.ApplySale(context.Background(), []StockDemand{
		demand(service.ID, 999),
		demand(flour.ID, 2),
	})

	require.NoError(t, err)
	assert.True(t, repo.quantity(t, flour.ID).Equal(decimal.NewFromInt(8)))
}

func TestApplySaleRollsBackOnPartialFailure(t *testing.T) {
	flour := trackedProduct("Tepung Terigu", 10)
	sugar := trackedProduct("Gula Pasir", 10)
	repo := newFakeProductRepo(flour, sugar)
	repo.failDecrementAt = 2
	svc := NewInventoryService(repo, &fakeProductionRepo{}, quietLogger())

	err := svc.ApplySale(context.Background(), []StockDemand{
		demand(flour.ID, 4),
		demand(sugar.ID, 4),
	})

	require.Error(t, err)
	// The first decrement succeeded and must have been compensated.
	assert.True(t, repo.quantity(t, flour.ID).Equal(decimal.NewFromInt(10)))
	assert.True(t, repo.quantity(t, sugar.ID).Equal(decimal.NewFromInt(10)))
}

func TestApplySaleSurfacesLostRace(t *testing.T) {
	flour := trackedProduct("Tepung Terigu", 10)
	sugar := trackedProduct("Gula Pasir", 10)
	repo := newFakeProductRepo(flour, sugar)
	repo.conflictAt = 2
	svc := NewInventoryService(repo, &fakeProductionRepo{}, quietLogger())

	err := svc.ApplySale(context.Background(), []StockDemand{
		demand(flour.ID, 4),
		demand(sugar.ID, 4),
	})

	assert.ErrorIs(t, err, ErrStockConflict)
	assert.True(t, repo.quantity(t, flour.ID).Equal(decimal.NewFromInt(10)))
}

func TestReleaseSaleRestoresStock(t *testing.T) {
	flour := trackedProduct("Tepung Terigu", 6)
	repo := newFakeProductRepo(flour)
	svc := NewInventoryService(repo, &fakeProductionRepo{}, quietLogger())

	require.NoError(t, svc.ReleaseSale(context.Background(), []StockDemand{demand(flour.ID, 4)}))
	assert.True(t, repo.quantity(t, flour.ID).Equal(decimal.NewFromInt(10)))
}

func TestApplyProductionConsumesPerUnitComponents(t *testing.T) {
	dough := trackedProduct("Adonan", 30)
	bread := trackedProduct("Roti Tawar", 0)
	repo := newFakeProductRepo(dough, bread)
	production := &fakeProductionRepo{}
	svc := NewInventoryService(repo, production, quietLogger())

	record, err := svc.ApplyProduction(context.Background(), ProductionOrderInput{
		UserID:            bread.UserID,
		FinishedProductID: bread.ID,
		OutputQuantity:    decimal.NewFromInt(10),
		Components:        []StockDemand{demand(dough.ID, 2)}, // per unit
	})

	require.NoError(t, err)
	// 2 per unit times 10 units of output.
	assert.True(t, repo.quantity(t, dough.ID).Equal(decimal.NewFromInt(10)))
	assert.True(t, repo.quantity(t, bread.ID).Equal(decimal.NewFromInt(10)))
	require.Len(t, record.Components, 1)
	assert.True(t, record.Components[0].Quantity.Equal(decimal.NewFromInt(20)))
	require.Len(t, production.records, 1)
}

func TestApplyProductionSumsDuplicateComponents(t *testing.T) {
	dough := trackedProduct("Adonan", 40)
	bread := trackedProduct("Roti Tawar", 0)
	repo := newFakeProductRepo(dough, bread)
	svc := NewInventoryService(repo, &fakeProductionRepo{}, quietLogger())

	// 1 + 1 per unit over 10 units must be treated as one demand of 20.
	record, err := svc.ApplyProduction(context.Background(), ProductionOrderInput{
		UserID:            bread.UserID,
		FinishedProductID: bread.ID,
		OutputQuantity:    decimal.NewFromInt(10),
		Components: []StockDemand{
			demand(dough.ID, 1),
			demand(dough.ID, 1),
		},
	})

	require.NoError(t, err)
	assert.True(t, repo.quantity(t, dough.ID).Equal(decimal.NewFromInt(20)))
	require.Len(t, record.Components, 1)
	assert.True(t, record.Components[0].Quantity.Equal(decimal.NewFromInt(20)))
}

func TestApplyProductionReportsComponentShortfall(t *testing.T) {
	dough := trackedProduct("Adonan", 15)
	bread := trackedProduct("Roti Tawar", 0)
	repo := newFakeProductRepo(dough, bread)
	svc := NewInventoryService(repo, &fakeProductionRepo{}, quietLogger())

	_, err := svc.ApplyProduction(context.Background(), ProductionOrderInput{
		UserID:            bread.UserID,
		FinishedProductID: bread.ID,
		OutputQuantity:    decimal.NewFromInt(10),
		Components:        []StockDemand{demand(dough.ID, 2)},
	})

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Shortfalls[0].Requested.Equal(decimal.NewFromInt(20)))
	assert.True(t, insufficient.Shortfalls[0].Available.Equal(decimal.NewFromInt(15)))
	assert.True(t, repo.quantity(t, dough.ID).Equal(decimal.NewFromInt(15)))
}

func TestApplyProductionRejectsSelfReference(t *testing.T) {
	bread := trackedProduct("Roti Tawar", 5)
	repo := newFakeProductRepo(bread)
	svc := NewInventoryService(repo, &fakeProductionRepo{}, quietLogger())

	_, err := svc.ApplyProduction(context.Background(), ProductionOrderInput{
		UserID:            bread.UserID,
		FinishedProductID: bread.ID,
		OutputQuantity:    decimal.NewFromInt(1),
		Components:        []StockDemand{demand(bread.ID, 1)},
	})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotEmpty(t, appErr.Errors)
	assert.Contains(t, appErr.Errors[0].Message, "own components")
}

func TestApplyProductionRequiresTrackedFinishedGood(t *testing.T) {
	dough := trackedProduct("Adonan", 30)
	bread := untrackedProduct("Roti Tawar")
	repo := newFakeProductRepo(dough, bread)
	svc := NewInventoryService(repo, &fakeProductionRepo{}, quietLogger())

	_, err := svc.ApplyProduction(context.Background(), ProductionOrderInput{
		UserID:            bread.UserID,
		FinishedProductID: bread.ID,
		OutputQuantity:    decimal.NewFromInt(10),
		Components:        []StockDemand{demand(dough.ID, 1)},
	})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotEmpty(t, appErr.Errors)
	assert.Equal(t, "finished_product_id", appErr.Errors[0].Field)
	assert.True(t, repo.quantity(t, dough.ID).Equal(decimal.NewFromInt(30)))
}

func TestApplyProductionRollsBackWhenFinishedIncrementFails(t *testing.T) {
	dough := trackedProduct("Adonan", 30)
	bread := trackedProduct("Roti Tawar", 0)
	repo := newFakeProductRepo(dough, bread)
	repo.failIncrementFor = bread.ID
	svc := NewInventoryService(repo, &fakeProductionRepo{}, quietLogger())

	_, err := svc.ApplyProduction(context.Background(), ProductionOrderInput{
		UserID:            bread.UserID,
		FinishedProductID: bread.ID,
		OutputQuantity:    decimal.NewFromInt(10),
		Components:        []StockDemand{demand(dough.ID, 2)},
	})

	require.Error(t, err)
	assert.True(t, repo.quantity(t, dough.ID).Equal(decimal.NewFromInt(30)))
	assert.True(t, repo.quantity(t, bread.ID).Equal(decimal.Zero))
}

func TestApplyProductionRollsBackWhenAuditWriteFails(t *testing.T) {
	dough := trackedProduct("Adonan", 30)
	bread := trackedProduct("Roti Tawar", 0)
	repo := newFakeProductRepo(dough, bread)
	production := &fakeProductionRepo{createErr: errors.New("write failed")}
	svc := NewInventoryService(repo, production, quietLogger())

	_, err := svc.ApplyProduction(context.Background(), ProductionOrderInput{
		UserID:            bread.UserID,
		FinishedProductID: bread.ID,
		OutputQuantity:    decimal.NewFromInt(10),
		Components:        []StockDemand{demand(dough.ID, 2)},
	})

	require.Error(t, err)
	assert.True(t, repo.quantity(t, dough.ID).Equal(decimal.NewFromInt(30)))
	assert.True(t, repo.quantity(t, bread.ID).Equal(decimal.Zero))
	assert.Empty(t, production.records)
}

func TestApplySaleHonorsCancellationBeforeApplying(t *testing.T) {
	flour := trackedProduct("Tepung Terigu", 10)
	repo := newFakeProductRepo(flour)
	svc := NewInventoryService(repo, &fakeProductionRepo{}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.ApplySale(ctx, []StockDemand{demand(flour.ID, 4)})

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, repo.quantity(t, flour.ID).Equal(decimal.NewFromInt(10)))
}
