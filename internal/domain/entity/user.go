package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin = "admin" // account owner: full access
	RoleStaff = "staff" // counter staff: sales and stock operations
)

// User represents a login of the suite. The account owner has OwnerID == ID;
// staff users share the owner's OwnerID so every row they touch stays scoped
// to the same business.
type User struct {
	ID           string
	OwnerID      string
	Email        string
	PasswordHash string // bcrypt hash, never plain after persisting
	Name         string
	BusinessName string // shown on invoices and PDFs
	Address      string
	Phone        string
	TaxID        string // GSTIN of the business
	Role         string // admin, staff
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
