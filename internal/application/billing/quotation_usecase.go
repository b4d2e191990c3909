package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/dto"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

const defaultQuotationValidDays = 15

// QuotationUseCase creates and manages price quotations. A quotation never
// moves stock; only converting it into an invoice does, through
// CreateInvoiceUseCase and its transactional decrement.
type QuotationUseCase struct {
	quotationRepo repository.QuotationRepository
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	createInvoice *CreateInvoiceUseCase
}

// NewQuotationUseCase builds the use case.
func NewQuotationUseCase(
	quotationRepo repository.QuotationRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	createInvoice *CreateInvoiceUseCase,
) *QuotationUseCase {
	return &QuotationUseCase{
		quotationRepo: quotationRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		createInvoice: createInvoice,
	}
}

// Create validates the request and persists a DRAFT quotation with its items.
func (uc *QuotationUseCase) Create(ctx context.Context, ownerID string, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.OwnerID != ownerID {
			return nil, domain.ErrForbidden
		}
		productsByID[item.ProductID] = product
		if item.UnitPrice.IsZero() {
			in.Items[i].UnitPrice = product.Price
		}
	}

	var netTotal, taxTotal decimal.Decimal
	for _, item := range in.Items {
		product := productsByID[item.ProductID]
		subtotal := item.Quantity.Mul(item.UnitPrice)
		netTotal = netTotal.Add(subtotal)
		taxTotal = taxTotal.Add(subtotal.Mul(product.TaxRate))
	}

	validDays := in.ValidDays
	if validDays <= 0 {
		validDays = defaultQuotationValidDays
	}
	now := time.Now()
	q := &entity.Quotation{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		CustomerID: in.CustomerID,
		Number:     fmt.Sprintf("Q-%d", now.Unix()),
		Date:       now,
		ValidUntil: now.AddDate(0, 0, validDays),
		NetTotal:   netTotal,
		TaxTotal:   taxTotal,
		GrandTotal: netTotal.Add(taxTotal),
		Status:     entity.QuotationStatusDraft,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.quotationRepo.Create(q); err != nil {
		return nil, err
	}
	var items []*entity.QuotationItem
	for _, item := range in.Items {
		product := productsByID[item.ProductID]
		qi := &entity.QuotationItem{
			ID:          uuid.New().String(),
			QuotationID: q.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxRate:     product.TaxRate,
			Subtotal:    item.Quantity.Mul(item.UnitPrice),
		}
		if err := uc.quotationRepo.CreateItem(qi); err != nil {
			return nil, err
		}
		items = append(items, qi)
	}
	return uc.toResponse(q, customer.Name, items), nil
}

// GetByID returns one quotation with its items.
func (uc *QuotationUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.QuotationResponse, error) {
	q, err := uc.quotationRepo.GetByID(id)
	if err != nil || q == nil {
		return nil, domain.ErrNotFound
	}
	if q.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.quotationRepo.GetItemsByQuotationID(id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if c, _ := uc.customerRepo.GetByID(q.CustomerID); c != nil {
		customerName = c.Name
	}
	return uc.toResponse(q, customerName, items), nil
}

// List lists the account's quotations, optionally filtered by status.
func (uc *QuotationUseCase) List(ctx context.Context, ownerID, status string, limit, offset int) ([]*dto.QuotationResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.quotationRepo.ListByOwner(ownerID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		out = append(out, uc.toResponse(q, "", nil))
	}
	return out, nil
}

// UpdateStatus moves a quotation through DRAFT→SENT→ACCEPTED/DECLINED.
// CONVERTED is reserved for ConvertToInvoice; expired quotations are frozen.
func (uc *QuotationUseCase) UpdateStatus(ctx context.Context, ownerID, id, status string) error {
	q, err := uc.quotationRepo.GetByID(id)
	if err != nil || q == nil {
		return domain.ErrNotFound
	}
	if q.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	switch status {
	case entity.QuotationStatusSent, entity.QuotationStatusAccepted, entity.QuotationStatusDeclined:
	default:
		return domain.ErrInvalidInput
	}
	if q.Status == entity.QuotationStatusConverted || q.Status == entity.QuotationStatusExpired {
		return domain.ErrConflict
	}
	return uc.quotationRepo.UpdateStatus(id, status, "")
}

// ConvertToInvoice turns an accepted quotation into an invoice. Stock moves
// here, through CreateInvoiceUseCase's transactional conditional decrements,
// and the CONVERTED mark lands in the same transaction: any failure aborts the
// whole conversion and the quotation stays ACCEPTED, ready to retry without
// duplicating the invoice.
func (uc *QuotationUseCase) ConvertToInvoice(ctx context.Context, ownerID, userID, id, prefix string) (*dto.InvoiceResponse, error) {
	q, err := uc.quotationRepo.GetByID(id)
	if err != nil || q == nil {
		return nil, domain.ErrNotFound
	}
	if q.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	if q.Status != entity.QuotationStatusAccepted {
		return nil, domain.ErrConflict
	}
	if time.Now().After(q.ValidUntil) {
		_ = uc.quotationRepo.UpdateStatus(id, entity.QuotationStatusExpired, "")
		return nil, domain.ErrConflict
	}
	items, err := uc.quotationRepo.GetItemsByQuotationID(id)
	if err != nil {
		return nil, err
	}
	req := dto.CreateInvoiceRequest{
		CustomerID: q.CustomerID,
		Prefix:     prefix,
		Notes:      fmt.Sprintf("Converted from quotation %s", q.Number),
	}
	for _, item := range items {
		req.Items = append(req.Items, dto.InvoiceItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return uc.createInvoice.CreateInvoiceForQuotation(ctx, ownerID, userID, req, id)
}

func (uc *QuotationUseCase) toResponse(q *entity.Quotation, customerName string, items []*entity.QuotationItem) *dto.QuotationResponse {
	resp := &dto.QuotationResponse{
		ID:           q.ID,
		OwnerID:      q.OwnerID,
		CustomerID:   q.CustomerID,
		CustomerName: customerName,
		Number:       q.Number,
		Date:         q.Date.Format("2006-01-02"),
		ValidUntil:   q.ValidUntil.Format("2006-01-02"),
		NetTotal:     q.NetTotal,
		TaxTotal:     q.TaxTotal,
		GrandTotal:   q.GrandTotal,
		Status:       q.Status,
		Notes:        q.Notes,
		InvoiceID:    q.InvoiceID,
		Items:        make([]dto.QuotationItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.QuotationItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			TaxRate:   it.TaxRate,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
