package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
)

// StockRepository defines the port for the stock ledger.
//
// ReserveAndDecrement is the only way quantity ever goes down. It must be a
// single conditional write: check owner and sufficiency and subtract in one
// atomic step, so two concurrent sales of the same low-stock product can never
// both win. Implementations return:
//   - the post-decrement quantity on success;
//   - domain.ErrInsufficientStock when no row matched (missing product, wrong
//     owner, or not enough on hand — indistinguishable by design);
//   - an error wrapping domain.ErrStorageUnavailable on connectivity failures
//     (nothing was written; the whole call may be retried).
type StockRepository interface {
	Get(productID, ownerID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ReserveAndDecrement(productID string, quantity decimal.Decimal, ownerID string) (decimal.Decimal, error)
	// GetForUpdate locks the row for the stock-in path, where the weighted
	// average cost needs a stable read of the current quantity. The decrement
	// path never uses it.
	GetForUpdate(productID, ownerID string) (*entity.Stock, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Stock, error)
}
