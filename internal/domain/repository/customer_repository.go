package repository

import "github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"

// CustomerRepository defines the persistence port for Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByOwnerAndTaxID(ownerID, taxID string) (*entity.Customer, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
