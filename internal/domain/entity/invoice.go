package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice states.
const (
	InvoiceStatusIssued = "ISSUED"
	InvoiceStatusVoid   = "VOID"
)

// Invoice represents the header of a sales invoice.
type Invoice struct {
	ID         string
	OwnerID    string
	CustomerID string
	Prefix     string
	Number     string
	Date       time.Time
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	Status     string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
