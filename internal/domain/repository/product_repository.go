package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
)

// ProductRepository defines the persistence port for Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByOwnerAndSKU(ownerID, sku string) (*entity.Product, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateCost rewrites only the weighted average cost (used inside stock-in transactions).
	UpdateCost(id string, cost decimal.Decimal) error
	Delete(id string) error
}
