package entity

import "time"

// Customer represents a buyer in the customer directory.
type Customer struct {
	ID        string
	OwnerID   string
	Name      string
	TaxID     string // GSTIN or PAN; optional for walk-in customers
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
