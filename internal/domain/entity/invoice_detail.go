package entity

import "github.com/shopspring/decimal"

// InvoiceDetail represents one line item of an invoice.
type InvoiceDetail struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
	Subtotal  decimal.Decimal
}
