package repository

import "github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"

// QuotationRepository defines the persistence port for Quotation and its items.
type QuotationRepository interface {
	Create(quotation *entity.Quotation) error
	CreateItem(item *entity.QuotationItem) error
	GetByID(id string) (*entity.Quotation, error)
	GetItemsByQuotationID(quotationID string) ([]*entity.QuotationItem, error)
	ListByOwner(ownerID string, status string, limit, offset int) ([]*entity.Quotation, error)
	// UpdateStatus moves the quotation through its lifecycle; invoiceID is
	// recorded when the new status is CONVERTED.
	UpdateStatus(id, status, invoiceID string) error
}
