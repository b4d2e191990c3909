package dto

import "github.com/shopspring/decimal"

// CreateQuotationRequest body for POST /api/quotations.
type CreateQuotationRequest struct {
	CustomerID string                 `json:"customer_id"`
	ValidDays  int                    `json:"valid_days,omitempty"` // default 15
	Notes      string                 `json:"notes,omitempty"`
	Items      []QuotationItemRequest `json:"items"`
}

// QuotationItemRequest quotation line.
type QuotationItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdateQuotationStatusRequest body for PATCH /api/quotations/:id/status.
type UpdateQuotationStatusRequest struct {
	Status string `json:"status"` // SENT | ACCEPTED | DECLINED
}

// ConvertQuotationRequest body for POST /api/quotations/:id/convert.
type ConvertQuotationRequest struct {
	Prefix string `json:"prefix,omitempty"` // invoice prefix, default INV
}

// QuotationResponse quotation with items.
type QuotationResponse struct {
	ID           string                  `json:"id"`
	OwnerID      string                  `json:"owner_id"`
	CustomerID   string                  `json:"customer_id"`
	CustomerName string                  `json:"customer_name,omitempty"`
	Number       string                  `json:"number"`
	Date         string                  `json:"date"`
	ValidUntil   string                  `json:"valid_until"`
	NetTotal     decimal.Decimal         `json:"net_total"`
	TaxTotal     decimal.Decimal         `json:"tax_total"`
	GrandTotal   decimal.Decimal         `json:"grand_total"`
	Status       string                  `json:"status"`
	Notes        string                  `json:"notes,omitempty"`
	InvoiceID    string                  `json:"invoice_id,omitempty"`
	Items        []QuotationItemResponse `json:"items"`
}

// QuotationItemResponse quotation line in the response.
type QuotationItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
