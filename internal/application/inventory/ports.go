package inventory

import (
	"context"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

// TxRunner runs a function inside a DB transaction, handing it repositories
// bound to that tx. Guarantees atomicity for the stock engine.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}
