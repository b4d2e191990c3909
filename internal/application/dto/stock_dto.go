package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body for POST /api/stock/movements.
// type: IN | OUT | ADJUSTMENT. unit_cost is required for IN.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
}

// StockResponse current quantity on hand for one product.
type StockResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MovementResponse one ledger history row.
type MovementResponse struct {
	ID          string          `json:"id"`
	ReferenceID string          `json:"reference_id,omitempty"`
	ProductID   string          `json:"product_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Date        time.Time       `json:"date"`
}
