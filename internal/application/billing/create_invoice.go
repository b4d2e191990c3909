package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/dto"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

// CreateInvoiceUseCase creates an invoice and decrements stock in one transaction.
//
// Every line item goes through the ledger's conditional decrement. Shortfalls
// are collected across ALL lines (a zero-row conditional update is not a SQL
// error, so probing the remaining lines is safe) and, if any line failed, the
// whole transaction rolls back and the caller gets one InsufficientStockError
// naming every unfulfillable product. Partial fulfillment is never persisted.
type CreateInvoiceUseCase struct {
	txRunner     BillingTxRunner
	ledger       StockLedger
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewCreateInvoiceUseCase builds the use case.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	ledger StockLedger,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// CreateInvoice validates the request, decrements stock per line item and
// persists the header and details, all inside one transaction.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, ownerID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	return uc.create(ctx, ownerID, userID, in, "")
}

// CreateInvoiceForQuotation creates the invoice and marks the source quotation
// CONVERTED in the same transaction. A conversion either fully happens or
// leaves the quotation ACCEPTED; it can never commit an invoice that a retry
// would duplicate.
func (uc *CreateInvoiceUseCase) CreateInvoiceForQuotation(ctx context.Context, ownerID, userID string, in dto.CreateInvoiceRequest, quotationID string) (*dto.InvoiceResponse, error) {
	if quotationID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.create(ctx, ownerID, userID, in, quotationID)
}

func (uc *CreateInvoiceUseCase) create(ctx context.Context, ownerID, userID string, in dto.CreateInvoiceRequest, quotationID string) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 || in.Prefix == "" {
		return nil, domain.ErrInvalidInput
	}

	// Customer must exist and belong to the caller's account
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	// Validate products and prices (read-only, outside the tx)
	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
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
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsZero() {
			in.Items[i].UnitPrice = product.Price
		}
	}

	now := time.Now()
	invoiceID := uuid.New().String() // referenced by movements (ReferenceID)
	var inv *entity.Invoice
	var details []*entity.InvoiceDetail

	err = uc.txRunner.RunBilling(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		quotationRepo repository.QuotationRepository,
	) error {
		// 1) Per line item, one conditional decrement. Shortfalls are
		// collected so the user sees every failing product at once; any
		// shortfall rolls back the decrements already applied in this tx.
		var short []string
		for _, item := range in.Items {
			product := productsByID[item.ProductID]
			_, err := uc.ledger.RegisterSaleInTx(
				stockRepo, movRepo, product,
				item.Quantity, ownerID, userID,
				now, invoiceID,
			)
			if err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					short = append(short, product.Name)
					continue
				}
				return err
			}
		}
		if len(short) > 0 {
			return &domain.InsufficientStockError{Items: short}
		}

		// 2) Taxes and totals
		var netTotal, taxTotal decimal.Decimal
		for _, item := range in.Items {
			product := productsByID[item.ProductID]
			subtotal := item.Quantity.Mul(item.UnitPrice)
			netTotal = netTotal.Add(subtotal)
			taxTotal = taxTotal.Add(subtotal.Mul(product.TaxRate))
		}
		grandTotal := netTotal.Add(taxTotal)

		// 3) Invoice number: explicit, or next in the owner's sequence
		number := in.Number
		if number == "" {
			n, err := invoiceRepo.NextNumber(ownerID, in.Prefix)
			if err != nil {
				return fmt.Errorf("next invoice number: %w", err)
			}
			number = fmt.Sprintf("%d", n)
		}

		// 4) Header and details
		inv = &entity.Invoice{
			ID:         invoiceID,
			OwnerID:    ownerID,
			CustomerID: in.CustomerID,
			Prefix:     in.Prefix,
			Number:     number,
			Date:       now,
			NetTotal:   netTotal,
			TaxTotal:   taxTotal,
			GrandTotal: grandTotal,
			Status:     entity.InvoiceStatusIssued,
			Notes:      in.Notes,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		for _, item := range in.Items {
			product := productsByID[item.ProductID]
			subtotal := item.Quantity.Mul(item.UnitPrice)
			details = append(details, &entity.InvoiceDetail{
				ID:        uuid.New().String(),
				InvoiceID: inv.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				TaxRate:   product.TaxRate,
				Subtotal:  subtotal,
			})
		}

		// 5) Persist
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, detail := range details {
			if err := invoiceRepo.CreateDetail(detail); err != nil {
				return err
			}
		}

		// 6) Conversion mark, same unit of work as the invoice itself
		if quotationID != "" {
			if err := quotationRepo.UpdateStatus(quotationID, entity.QuotationStatusConverted, inv.ID); err != nil {
				return fmt.Errorf("mark quotation converted: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(inv, customer.Name, details), nil
}

// GetInvoice returns an invoice by ID with its full detail.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, ownerID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	details, err := uc.invoiceRepo.GetDetailsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	customer, _ := uc.customerRepo.GetByID(inv.CustomerID)
	customerName := ""
	if customer != nil {
		customerName = customer.Name
	}
	return uc.toResponse(inv, customerName, details), nil
}

// ListInvoices lists the account's invoices, newest first.
func (uc *CreateInvoiceUseCase) ListInvoices(ctx context.Context, ownerID string, limit, offset int) ([]*dto.InvoiceResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.invoiceRepo.ListByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, uc.toResponse(inv, "", nil))
	}
	return out, nil
}

func (uc *CreateInvoiceUseCase) toResponse(inv *entity.Invoice, customerName string, details []*entity.InvoiceDetail) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           inv.ID,
		OwnerID:      inv.OwnerID,
		CustomerID:   inv.CustomerID,
		CustomerName: customerName,
		Prefix:       inv.Prefix,
		Number:       inv.Number,
		Date:         inv.Date.Format("2006-01-02"),
		NetTotal:     inv.NetTotal,
		TaxTotal:     inv.TaxTotal,
		GrandTotal:   inv.GrandTotal,
		Status:       inv.Status,
		Notes:        inv.Notes,
		Details:      make([]dto.InvoiceDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.InvoiceDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			TaxRate:   d.TaxRate,
			Subtotal:  d.Subtotal,
		})
	}
	return resp
}
