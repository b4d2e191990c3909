package repository

import "github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"

// InvoiceRepository defines the persistence port for Invoice and its line items.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateDetail(detail *entity.InvoiceDetail) error
	GetByID(id string) (*entity.Invoice, error)
	GetDetailsByInvoiceID(invoiceID string) ([]*entity.InvoiceDetail, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Invoice, error)
	// NextNumber reserves the next sequential invoice number for a prefix
	// (atomic per owner+prefix; safe under concurrent invoice creation).
	NextNumber(ownerID, prefix string) (int64, error)
}
