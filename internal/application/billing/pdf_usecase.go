package billing

import (
	"context"
	"fmt"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

// PDFUseCase renders the printable document of an issued invoice.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase builds the use case with all its dependencies.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF loads the full invoice, checks ownership and generates
// the PDF.
//
// Returns:
//   - (pdfBytes, filename, nil) on success;
//   - domain.ErrNotFound  if the invoice does not exist;
//   - domain.ErrForbidden if the invoice belongs to another account.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, ownerID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if inv.OwnerID != ownerID {
		return nil, "", domain.ErrForbidden
	}

	// The owner account carries the business header fields
	business, err := uc.userRepo.GetByID(inv.OwnerID)
	if err != nil || business == nil {
		return nil, "", fmt.Errorf("pdf: load business profile: %w", err)
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil || customer == nil {
		return nil, "", fmt.Errorf("pdf: load customer: %w", err)
	}
	rawDetails, err := uc.invoiceRepo.GetDetailsByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load details: %w", err)
	}

	enriched := make([]InvoiceDetailForPDF, 0, len(rawDetails))
	for _, d := range rawDetails {
		name := "Product " + d.ProductID // fallback
		unit := ""
		if product, pErr := uc.productRepo.GetByID(d.ProductID); pErr == nil && product != nil {
			name = product.Name
			unit = product.Unit
		}
		enriched = append(enriched, InvoiceDetailForPDF{
			InvoiceDetail: *d,
			ProductName:   name,
			Unit:          unit,
		})
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, business, customer, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generation failed: %w", err)
	}

	filename = fmt.Sprintf("invoice_%s%s.pdf", inv.Prefix, inv.Number)
	return pdfBytes, filename, nil
}
