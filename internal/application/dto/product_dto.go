package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body for POST /api/products.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Unit         string          `json:"unit,omitempty"`
	ReorderLevel decimal.Decimal `json:"reorder_level,omitempty"`
}

// UpdateProductRequest body for PUT /api/products/:id.
// Cost is intentionally absent: it only changes through stock-in movements.
type UpdateProductRequest struct {
	Name         string           `json:"name,omitempty"`
	Description  string           `json:"description,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	TaxRate      *decimal.Decimal `json:"tax_rate,omitempty"`
	Unit         string           `json:"unit,omitempty"`
	ReorderLevel *decimal.Decimal `json:"reorder_level,omitempty"`
}

// ProductResponse product in responses.
type ProductResponse struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Unit         string          `json:"unit,omitempty"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}
