package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock is the ledger entry for one product: the quantity available for sale.
// Quantity is never negative in any committed state; the only way it decreases
// is the conditional decrement in StockRepository.
type Stock struct {
	ProductID string
	OwnerID   string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
