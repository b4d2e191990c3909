package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

// StockLedger is the one gate through which quantity on hand goes down.
//
// The check and the subtraction happen in a single conditional UPDATE inside
// the repository, so a passing precondition can never go stale between a read
// and a write: two concurrent sales of the same low-stock product race on the
// row itself and the storage layer serializes them — exactly one wins. There
// is no retry loop and no lock here; a zero-row update simply means the
// precondition was false at the moment the statement ran.
type StockLedger struct {
	stockRepo repository.StockRepository
}

// NewStockLedger builds the ledger service over a pool-bound stock repository.
func NewStockLedger(stockRepo repository.StockRepository) *StockLedger {
	return &StockLedger{stockRepo: stockRepo}
}

// ReserveAndDecrement validates the request and applies the atomic conditional
// decrement. Returns the post-decrement quantity, or:
//   - domain.ErrInvalidInput      when quantity <= 0;
//   - domain.ErrInsufficientStock when the product is missing, belongs to
//     another owner, or has less than the requested quantity;
//   - an error wrapping domain.ErrStorageUnavailable when the write could not
//     be attempted (safe to retry: no partial state exists on failure).
func (s *StockLedger) ReserveAndDecrement(itemID string, quantity decimal.Decimal, ownerID string) (decimal.Decimal, error) {
	if itemID == "" || ownerID == "" || !quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return s.stockRepo.ReserveAndDecrement(itemID, quantity, ownerID)
}

// RegisterSaleInTx runs the conditional decrement against the caller's
// tx-bound repositories and records the OUT movement row, valued at the
// product's current average cost. referenceID is the invoice (or batch) the
// sale belongs to. Returns the post-decrement quantity.
func (s *StockLedger) RegisterSaleInTx(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	product *entity.Product,
	quantity decimal.Decimal,
	ownerID, userID string,
	now time.Time,
	referenceID string,
) (decimal.Decimal, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	remaining, err := stockRepo.ReserveAndDecrement(product.ID, quantity, ownerID)
	if err != nil {
		return decimal.Zero, err
	}
	unitCost := product.Cost
	mov := &entity.StockMovement{
		ReferenceID: referenceID,
		ProductID:   product.ID,
		OwnerID:     ownerID,
		Type:        entity.MovementTypeOUT,
		Quantity:    quantity.Neg(),
		UnitCost:    unitCost,
		TotalCost:   quantity.Neg().Mul(unitCost),
		Date:        now,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return decimal.Zero, err
	}
	return remaining, nil
}
