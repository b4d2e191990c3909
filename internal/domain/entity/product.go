package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable SKU. Cost is the weighted average recalculated
// on every stock-in; the quantity on hand lives in Stock.
type Product struct {
	ID           string
	OwnerID      string
	SKU          string // unique per owner
	Name         string
	Description  string
	Price        decimal.Decimal // selling price
	Cost         decimal.Decimal // weighted average cost (starts at 0)
	TaxRate      decimal.Decimal // GST rate as a fraction: 0, 0.05, 0.12, 0.18, 0.28
	Unit         string          // pcs, kg, box...
	ReorderLevel decimal.Decimal // low-stock report threshold; zero disables
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
