package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implements QuotationRepository (usable with pool or tx).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository builds the adapter. Pass a pool or tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

// Create persists the quotation header.
func (r *QuotationRepo) Create(quotation *entity.Quotation) error {
	if quotation.ID == "" {
		quotation.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quotations (id, owner_id, customer_id, number, date, valid_until, net_total, tax_total, grand_total, status, notes, invoice_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		quotation.ID, quotation.OwnerID, quotation.CustomerID, quotation.Number,
		quotation.Date, quotation.ValidUntil,
		quotation.NetTotal, quotation.TaxTotal, quotation.GrandTotal,
		quotation.Status, nullIfEmpty(quotation.Notes), nullIfEmpty(quotation.InvoiceID),
		quotation.CreatedAt, quotation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// CreateItem persists one quotation line.
func (r *QuotationRepo) CreateItem(item *entity.QuotationItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quotation_items (id, quotation_id, product_id, quantity, unit_price, tax_rate, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuotationID, item.ProductID, item.Quantity, item.UnitPrice,
		item.TaxRate, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert quotation item: %w", err)
	}
	return nil
}

// GetByID returns a quotation by ID.
func (r *QuotationRepo) GetByID(id string) (*entity.Quotation, error) {
	query := `
		SELECT id, owner_id, customer_id, number, date, valid_until,
		       net_total, tax_total, grand_total, status, notes, invoice_id,
		       created_at, updated_at
		FROM quotations WHERE id = $1`
	var qt entity.Quotation
	var notes, invoiceID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&qt.ID, &qt.OwnerID, &qt.CustomerID, &qt.Number,
		&qt.Date, &qt.ValidUntil,
		&qt.NetTotal, &qt.TaxTotal, &qt.GrandTotal,
		&qt.Status, &notes, &invoiceID,
		&qt.CreatedAt, &qt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	if notes != nil {
		qt.Notes = *notes
	}
	if invoiceID != nil {
		qt.InvoiceID = *invoiceID
	}
	return &qt, nil
}

// GetItemsByQuotationID returns every line of a quotation.
func (r *QuotationRepo) GetItemsByQuotationID(quotationID string) ([]*entity.QuotationItem, error) {
	query := `
		SELECT id, quotation_id, product_id, quantity, unit_price, tax_rate, subtotal
		FROM quotation_items WHERE quotation_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("list quotation items: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuotationItem
	for rows.Next() {
		var it entity.QuotationItem
		if err := rows.Scan(&it.ID, &it.QuotationID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TaxRate, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan quotation item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByOwner lists the quotations of an owner, optionally filtered by status.
func (r *QuotationRepo) ListByOwner(ownerID string, status string, limit, offset int) ([]*entity.Quotation, error) {
	query := `
		SELECT id, owner_id, customer_id, number, date, valid_until,
		       net_total, tax_total, grand_total, status, notes, invoice_id,
		       created_at, updated_at
		FROM quotations WHERE owner_id = $1`
	args := []any{ownerID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		var qt entity.Quotation
		var notes, invoiceID *string
		if err := rows.Scan(&qt.ID, &qt.OwnerID, &qt.CustomerID, &qt.Number,
			&qt.Date, &qt.ValidUntil,
			&qt.NetTotal, &qt.TaxTotal, &qt.GrandTotal,
			&qt.Status, &notes, &invoiceID,
			&qt.CreatedAt, &qt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		if notes != nil {
			qt.Notes = *notes
		}
		if invoiceID != nil {
			qt.InvoiceID = *invoiceID
		}
		list = append(list, &qt)
	}
	return list, rows.Err()
}

// UpdateStatus moves a quotation through its lifecycle. invoiceID is stored
// only when non-empty (the CONVERTED transition).
func (r *QuotationRepo) UpdateStatus(id, status, invoiceID string) error {
	query := `
		UPDATE quotations
		SET status = $2, invoice_id = COALESCE($3, invoice_id), updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, nullIfEmpty(invoiceID))
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	return nil
}
