package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implements CustomerRepository over PostgreSQL (usable with pool or tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the customer adapter. Pass a pool or tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persists a new customer.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, owner_id, name, tax_id, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.OwnerID, customer.Name, nullIfEmpty(customer.TaxID),
		nullIfEmpty(customer.Email), nullIfEmpty(customer.Phone), nullIfEmpty(customer.Address),
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID returns a customer by ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `
		SELECT id, owner_id, name, tax_id, email, phone, address, created_at, updated_at
		FROM customers WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByOwnerAndTaxID returns a customer by owner and tax ID.
func (r *CustomerRepo) GetByOwnerAndTaxID(ownerID, taxID string) (*entity.Customer, error) {
	query := `
		SELECT id, owner_id, name, tax_id, email, phone, address, created_at, updated_at
		FROM customers WHERE owner_id = $1 AND tax_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, ownerID, taxID))
}

func (r *CustomerRepo) scanOne(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var taxID, email, phone, address *string
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &taxID, &email, &phone, &address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if taxID != nil {
		c.TaxID = *taxID
	}
	if email != nil {
		c.Email = *email
	}
	if phone != nil {
		c.Phone = *phone
	}
	if address != nil {
		c.Address = *address
	}
	return &c, nil
}

// ListByOwner lists the customers of an owner with pagination.
func (r *CustomerRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT id, owner_id, name, tax_id, email, phone, address, created_at, updated_at
		FROM customers WHERE owner_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		var taxID, email, phone, address *string
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &taxID, &email, &phone, &address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		if taxID != nil {
			c.TaxID = *taxID
		}
		if email != nil {
			c.Email = *email
		}
		if phone != nil {
			c.Phone = *phone
		}
		if address != nil {
			c.Address = *address
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update updates an existing customer.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, tax_id = $3, email = $4, phone = $5, address = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, nullIfEmpty(customer.TaxID), nullIfEmpty(customer.Email),
		nullIfEmpty(customer.Phone), nullIfEmpty(customer.Address), customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete removes a customer by ID.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
