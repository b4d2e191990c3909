package inventory_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/inventory"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct {
	productID string
	ownerID   string
}

// fakeStockRepo reproduces the storage contract in memory. A single mutex
// spans check and write in ReserveAndDecrement, mirroring the atomicity of the
// conditional UPDATE it stands in for.
type fakeStockRepo struct {
	mu     sync.Mutex
	stocks map[stockKey]decimal.Decimal
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{stocks: make(map[stockKey]decimal.Decimal)}
}

func (f *fakeStockRepo) set(productID, ownerID string, qty decimal.Decimal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stocks[stockKey{productID, ownerID}] = qty
}

func (f *fakeStockRepo) Get(productID, ownerID string) (*entity.Stock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	qty, ok := f.stocks[stockKey{productID, ownerID}]
	if !ok {
		qty = decimal.Zero
	}
	return &entity.Stock{ProductID: productID, OwnerID: ownerID, Quantity: qty}, nil
}

func (f *fakeStockRepo) Upsert(stock *entity.Stock) error {
	f.set(stock.ProductID, stock.OwnerID, stock.Quantity)
	return nil
}

func (f *fakeStockRepo) ReserveAndDecrement(productID string, quantity decimal.Decimal, ownerID string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := stockKey{productID, ownerID}
	current, ok := f.stocks[key]
	if !ok || current.LessThan(quantity) {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	remaining := current.Sub(quantity)
	f.stocks[key] = remaining
	return remaining, nil
}

func (f *fakeStockRepo) GetForUpdate(productID, ownerID string) (*entity.Stock, error) {
	return f.Get(productID, ownerID)
}

func (f *fakeStockRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Stock, error) {
	return nil, nil
}

// fakeMovementRepo records movements behind a mutex.
type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(movement *entity.StockMovement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movements = append(f.movements, movement)
	return nil
}

func (f *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) { return nil, nil }

func (f *fakeMovementRepo) ListByProduct(productID, ownerID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (f *fakeMovementRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReserveAndDecrement
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerA = "owner-a"
	ownerB = "owner-b"
	prodX  = "prod-x"
)

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestReserveAndDecrement_HappyPath(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set(prodX, ownerA, qty(10))
	ledger := inventory.NewStockLedger(repo)

	remaining, err := ledger.ReserveAndDecrement(prodX, qty(4), ownerA)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(qty(6)), "10 - 4 must leave 6, got %s", remaining)
}

func TestReserveAndDecrement_ExactBoundary(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set(prodX, ownerA, qty(7))
	ledger := inventory.NewStockLedger(repo)

	// quantity == available must succeed and leave exactly zero
	remaining, err := ledger.ReserveAndDecrement(prodX, qty(7), ownerA)
	require.NoError(t, err)
	assert.True(t, remaining.IsZero(), "exact decrement must leave zero, got %s", remaining)

	// nothing left: the next unit must be rejected
	_, err = ledger.ReserveAndDecrement(prodX, qty(1), ownerA)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestReserveAndDecrement_OverAvailable(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set(prodX, ownerA, qty(3))
	ledger := inventory.NewStockLedger(repo)

	_, err := ledger.ReserveAndDecrement(prodX, qty(4), ownerA)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// a failed attempt must not change the quantity
	stock, _ := repo.Get(prodX, ownerA)
	assert.True(t, stock.Quantity.Equal(qty(3)), "failed decrement must leave stock untouched")
}

func TestReserveAndDecrement_FailureIsRepeatable(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set(prodX, ownerA, qty(5))
	ledger := inventory.NewStockLedger(repo)

	for i := 0; i < 3; i++ {
		_, err := ledger.ReserveAndDecrement(prodX, qty(6), ownerA)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock, "attempt %d", i)
	}
	stock, _ := repo.Get(prodX, ownerA)
	assert.True(t, stock.Quantity.Equal(qty(5)), "repeated failures must never move the quantity")
}

func TestReserveAndDecrement_InvalidQuantity(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set(prodX, ownerA, qty(10))
	ledger := inventory.NewStockLedger(repo)

	_, err := ledger.ReserveAndDecrement(prodX, decimal.Zero, ownerA)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.ReserveAndDecrement(prodX, qty(-2), ownerA)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReserveAndDecrement_MissingProduct(t *testing.T) {
	ledger := inventory.NewStockLedger(newFakeStockRepo())

	_, err := ledger.ReserveAndDecrement("no-such-product", qty(1), ownerA)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"a missing row reads the same as insufficient stock")
}

func TestReserveAndDecrement_OwnerIsolation(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set(prodX, ownerA, qty(10))
	ledger := inventory.NewStockLedger(repo)

	// ownerB holds no stock of prodX, even though ownerA does
	_, err := ledger.ReserveAndDecrement(prodX, qty(1), ownerB)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"another owner's stock must be invisible")

	stock, _ := repo.Get(prodX, ownerA)
	assert.True(t, stock.Quantity.Equal(qty(10)), "ownerA's stock must be untouched")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrency
// ──────────────────────────────────────────────────────────────────────────────

// Two sales of 7 against 10 on hand: exactly one may win.
func TestReserveAndDecrement_ConcurrentLastUnits(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set(prodX, ownerA, qty(10))
	ledger := inventory.NewStockLedger(repo)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.ReserveAndDecrement(prodX, qty(7), ownerA)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, wins, "exactly one of two concurrent 7-of-10 sales may succeed")

	stock, _ := repo.Get(prodX, ownerA)
	assert.True(t, stock.Quantity.Equal(qty(3)), "final quantity must be 10-7=3, got %s", stock.Quantity)
}

// Twenty sales of 5 against 100 on hand: all succeed, nothing goes negative.
func TestReserveAndDecrement_ConcurrentDrainToZero(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set(prodX, ownerA, qty(100))
	ledger := inventory.NewStockLedger(repo)

	var wg sync.WaitGroup
	errs := make([]error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.ReserveAndDecrement(prodX, qty(5), ownerA)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "sale %d of 20x5 against 100 must succeed", i)
	}
	stock, _ := repo.Get(prodX, ownerA)
	assert.True(t, stock.Quantity.IsZero(), "stock must drain to exactly zero, got %s", stock.Quantity)
	assert.False(t, stock.Quantity.IsNegative(), "stock must never go negative")
}

// Oversubscribed: 30 sales of 5 against 100. Exactly 20 win, the rest fail,
// and the quantity never dips below zero.
func TestReserveAndDecrement_ConcurrentOversubscribed(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set(prodX, ownerA, qty(100))
	ledger := inventory.NewStockLedger(repo)

	var wg sync.WaitGroup
	errs := make([]error, 30)
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.ReserveAndDecrement(prodX, qty(5), ownerA)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	assert.Equal(t, 20, wins, "only 100/5 = 20 sales may win")

	stock, _ := repo.Get(prodX, ownerA)
	assert.True(t, stock.Quantity.IsZero(), "final quantity must be zero, got %s", stock.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterSaleInTx
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSaleInTx_RecordsOUTMovement(t *testing.T) {
	stockRepo := newFakeStockRepo()
	stockRepo.set(prodX, ownerA, qty(10))
	movRepo := &fakeMovementRepo{}
	ledger := inventory.NewStockLedger(stockRepo)

	product := &entity.Product{
		ID:      prodX,
		OwnerID: ownerA,
		Name:    "Basmati Rice 5kg",
		Cost:    decimal.NewFromFloat(320.50),
	}
	now := time.Now()

	remaining, err := ledger.RegisterSaleInTx(stockRepo, movRepo, product, qty(3), ownerA, "user-1", now, "inv-42")
	require.NoError(t, err)
	assert.True(t, remaining.Equal(qty(7)))

	require.Len(t, movRepo.movements, 1)
	mov := movRepo.movements[0]
	assert.Equal(t, entity.MovementTypeOUT, mov.Type)
	assert.Equal(t, "inv-42", mov.ReferenceID)
	assert.True(t, mov.Quantity.Equal(qty(-3)), "OUT movements carry negative quantity")
	assert.True(t, mov.UnitCost.Equal(product.Cost), "sale is valued at the average cost")
	assert.True(t, mov.TotalCost.Equal(qty(-3).Mul(product.Cost)))
	assert.Equal(t, "user-1", mov.CreatedBy)
}

func TestRegisterSaleInTx_NoMovementOnShortfall(t *testing.T) {
	stockRepo := newFakeStockRepo()
	stockRepo.set(prodX, ownerA, qty(2))
	movRepo := &fakeMovementRepo{}
	ledger := inventory.NewStockLedger(stockRepo)

	product := &entity.Product{ID: prodX, OwnerID: ownerA, Cost: qty(100)}

	_, err := ledger.RegisterSaleInTx(stockRepo, movRepo, product, qty(3), ownerA, "user-1", time.Now(), "inv-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, movRepo.count(), "a failed sale must not leave a movement row")
}

func TestRegisterSaleInTx_ConcurrentMovementsMatchWins(t *testing.T) {
	stockRepo := newFakeStockRepo()
	stockRepo.set(prodX, ownerA, qty(10))
	movRepo := &fakeMovementRepo{}
	ledger := inventory.NewStockLedger(stockRepo)

	product := &entity.Product{ID: prodX, OwnerID: ownerA, Cost: qty(50)}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = ledger.RegisterSaleInTx(stockRepo, movRepo, product, qty(2), ownerA, "user-1", time.Now(), fmt.Sprintf("inv-%d", i))
		}(i)
	}
	wg.Wait()

	// 8 sales of 2 against 10: exactly 5 win, so exactly 5 movements exist
	assert.Equal(t, 5, movRepo.count(), "one OUT movement per winning sale")
	stock, _ := stockRepo.Get(prodX, ownerA)
	assert.True(t, stock.Quantity.IsZero())
}
