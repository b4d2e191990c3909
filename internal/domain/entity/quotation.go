package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quotation states. A quotation never touches stock; the ledger only moves
// when an accepted quotation is converted into an invoice.
const (
	QuotationStatusDraft     = "DRAFT"
	QuotationStatusSent      = "SENT"
	QuotationStatusAccepted  = "ACCEPTED"
	QuotationStatusDeclined  = "DECLINED"
	QuotationStatusExpired   = "EXPIRED"
	QuotationStatusConverted = "CONVERTED" // an invoice was created from it
)

// Quotation represents a price offer to a customer.
type Quotation struct {
	ID         string
	OwnerID    string
	CustomerID string
	Number     string
	Date       time.Time
	ValidUntil time.Time
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	Status     string
	Notes      string
	InvoiceID  string // set when converted
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// QuotationItem represents one line of a quotation.
type QuotationItem struct {
	ID          string
	QuotationID string
	ProductID   string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Subtotal    decimal.Decimal
}
