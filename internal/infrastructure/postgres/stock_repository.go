package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implements StockRepository over PostgreSQL (usable with pool or tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository builds the stock adapter. Pass a pool or tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get returns the current stock of a product for an owner.
func (r *StockRepo) Get(productID, ownerID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, owner_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND owner_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, ownerID).Scan(
		&s.ProductID, &s.OwnerID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, OwnerID: ownerID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserts or updates the stock quantity (per product and owner).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, owner_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, owner_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.OwnerID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ReserveAndDecrement atomically subtracts quantity from stock, but only when
// enough is available. A single conditional UPDATE does the check and the
// write in one statement, so two concurrent sales can never both succeed on
// the same last units. Zero rows updated means the row is missing, belongs to
// another owner, or holds less than requested; all three surface as
// ErrInsufficientStock. Returns the remaining quantity after the decrement.
func (r *StockRepo) ReserveAndDecrement(productID string, quantity decimal.Decimal, ownerID string) (decimal.Decimal, error) {
	query := `
		UPDATE stock
		SET quantity = quantity - $2, updated_at = now()
		WHERE product_id = $1 AND owner_id = $3 AND quantity >= $2
		RETURNING quantity`
	var remaining decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID, quantity, ownerID).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		if isTransient(err) {
			return decimal.Zero, fmt.Errorf("reserve stock: %w: %w", domain.ErrStorageUnavailable, err)
		}
		return decimal.Zero, fmt.Errorf("reserve stock: %w", err)
	}
	return remaining, nil
}

// GetForUpdate returns the stock row locked FOR UPDATE. Used by the stock-in
// path, which reads the quantity to recompute the average cost before writing.
func (r *StockRepo) GetForUpdate(productID, ownerID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, owner_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND owner_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, ownerID).Scan(
		&s.ProductID, &s.OwnerID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, OwnerID: ownerID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// ListByOwner returns the stock rows of an owner, newest first.
func (r *StockRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, owner_id, quantity, updated_at
		FROM stock WHERE owner_id = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.OwnerID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
