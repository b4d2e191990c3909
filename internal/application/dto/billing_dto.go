package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body for POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID string               `json:"customer_id"`
	Prefix     string               `json:"prefix"`
	Number     string               `json:"number,omitempty"` // optional; generated from the owner's sequence when empty
	Notes      string               `json:"notes,omitempty"`
	Items      []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest invoice line (product, quantity, unit price).
// A zero unit_price means "use the product's list price".
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// InvoiceResponse invoice with line items for GET /api/invoices/:id.
type InvoiceResponse struct {
	ID           string                  `json:"id"`
	OwnerID      string                  `json:"owner_id"`
	CustomerID   string                  `json:"customer_id"`
	CustomerName string                  `json:"customer_name,omitempty"`
	Prefix       string                  `json:"prefix"`
	Number       string                  `json:"number"`
	Date         string                  `json:"date"`
	NetTotal     decimal.Decimal         `json:"net_total"`
	TaxTotal     decimal.Decimal         `json:"tax_total"`
	GrandTotal   decimal.Decimal         `json:"grand_total"`
	Status       string                  `json:"status"`
	Notes        string                  `json:"notes,omitempty"`
	Details      []InvoiceDetailResponse `json:"details"`
}

// InvoiceDetailResponse line item in the response.
type InvoiceDetailResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
