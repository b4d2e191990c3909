package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persists the invoice header.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, owner_id, customer_id, prefix, number, date, net_total, tax_total, grand_total, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.OwnerID, invoice.CustomerID, invoice.Prefix, invoice.Number,
		invoice.Date, invoice.NetTotal, invoice.TaxTotal, invoice.GrandTotal,
		invoice.Status, nullIfEmpty(invoice.Notes),
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateDetail persists one line item.
func (r *InvoiceRepo) CreateDetail(detail *entity.InvoiceDetail) error {
	if detail.ID == "" {
		detail.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_details (id, invoice_id, product_id, quantity, unit_price, tax_rate, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.InvoiceID, detail.ProductID, detail.Quantity, detail.UnitPrice,
		detail.TaxRate, detail.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice detail: %w", err)
	}
	return nil
}

// GetByID returns a full invoice by ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, owner_id, customer_id, prefix, number, date,
		       net_total, tax_total, grand_total, status, notes,
		       created_at, updated_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	var notes *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.OwnerID, &inv.CustomerID, &inv.Prefix, &inv.Number,
		&inv.Date, &inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
		&inv.Status, &notes,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if notes != nil {
		inv.Notes = *notes
	}
	return &inv, nil
}

// GetDetailsByInvoiceID returns every line item of an invoice.
func (r *InvoiceRepo) GetDetailsByInvoiceID(invoiceID string) ([]*entity.InvoiceDetail, error) {
	query := `
		SELECT id, invoice_id, product_id, quantity, unit_price, tax_rate, subtotal
		FROM invoice_details WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice details: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceDetail
	for rows.Next() {
		var d entity.InvoiceDetail
		if err := rows.Scan(&d.ID, &d.InvoiceID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.TaxRate, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListByOwner lists the invoices of an owner, newest first.
func (r *InvoiceRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT id, owner_id, customer_id, prefix, number, date,
		       net_total, tax_total, grand_total, status, notes,
		       created_at, updated_at
		FROM invoices WHERE owner_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		var notes *string
		if err := rows.Scan(&inv.ID, &inv.OwnerID, &inv.CustomerID, &inv.Prefix, &inv.Number,
			&inv.Date, &inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
			&inv.Status, &notes, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		if notes != nil {
			inv.Notes = *notes
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// NextNumber reserves the next sequential number for an owner and prefix.
// The upsert increments and returns in one statement, so concurrent invoice
// creation never hands out the same number twice.
func (r *InvoiceRepo) NextNumber(ownerID, prefix string) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (owner_id, prefix, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (owner_id, prefix)
		DO UPDATE SET last_number = invoice_sequences.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, ownerID, prefix).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}
