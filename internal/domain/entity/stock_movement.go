package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock movement types.
const (
	MovementTypeIN         = "IN"         // refill / purchase
	MovementTypeOUT        = "OUT"        // sale
	MovementTypeADJUSTMENT = "ADJUSTMENT" // signed correction after a count
)

// StockMovement is one history row of the stock ledger (refill, sale or adjustment).
type StockMovement struct {
	ID          string
	ReferenceID string // invoice ID for OUT, batch ID otherwise
	ProductID   string
	OwnerID     string
	Type        string
	Quantity    decimal.Decimal // positive IN/adjust+, negative OUT/adjust-
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string
}
