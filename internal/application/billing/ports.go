package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

// BillingTxRunner runs a function inside a transaction that spans the stock
// ledger, the invoice tables and the quotation status. The per-line decrements,
// the invoice header/detail inserts and a quotation's CONVERTED mark commit or
// roll back as one unit of work: a later step's failure undoes the earlier
// lines' decrements, and a conversion can never commit an invoice while the
// quotation stays ACCEPTED.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		quotationRepo repository.QuotationRepository,
	) error) error
}

// StockLedger is the billing-side view of the inventory ledger. The
// implementation must perform the availability check and the decrement as one
// atomic conditional write against the caller's tx-bound repositories.
type StockLedger interface {
	RegisterSaleInTx(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		product *entity.Product,
		quantity decimal.Decimal,
		ownerID, userID string,
		now time.Time,
		referenceID string,
	) (decimal.Decimal, error)
}

// InvoicePDFGenerator renders the printable document for an issued invoice.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		business *entity.User,
		customer *entity.Customer,
		details []InvoiceDetailForPDF,
	) ([]byte, error)
}

// InvoiceDetailForPDF line item enriched with the product name for rendering.
type InvoiceDetailForPDF struct {
	entity.InvoiceDetail
	ProductName string
	Unit        string
}
