package repository

import (
	"time"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
)

// StockMovementRepository defines the persistence port for the movement history.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID, ownerID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
