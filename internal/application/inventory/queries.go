package inventory

import (
	"time"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/dto"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

// StockQueryUseCase read-only views over the ledger and its history.
type StockQueryUseCase struct {
	stockRepo   repository.StockRepository
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewStockQueryUseCase builds the use case.
func NewStockQueryUseCase(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, movRepo: movRepo, productRepo: productRepo}
}

// GetStock returns the current quantity on hand of one product.
// Missing ledger rows read as zero, same as the storage layer reports them.
func (uc *StockQueryUseCase) GetStock(ownerID, productID string) (*dto.StockResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	stock, err := uc.stockRepo.Get(productID, ownerID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ProductID: stock.ProductID,
		Quantity:  stock.Quantity,
		UpdatedAt: stock.UpdatedAt,
	}, nil
}

// ListStock lists quantities on hand across the account.
func (uc *StockQueryUseCase) ListStock(ownerID string, limit, offset int) ([]*dto.StockResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.stockRepo.ListByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, &dto.StockResponse{
			ProductID: s.ProductID,
			Quantity:  s.Quantity,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return out, nil
}

// ListMovements returns the movement history of one product in a date range.
func (uc *StockQueryUseCase) ListMovements(ownerID, productID string, from, to *time.Time, limit, offset int) ([]*dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.movRepo.ListByProduct(productID, ownerID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, &dto.MovementResponse{
			ID:          m.ID,
			ReferenceID: m.ReferenceID,
			ProductID:   m.ProductID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			UnitCost:    m.UnitCost,
			TotalCost:   m.TotalCost,
			Date:        m.Date,
		})
	}
	return out, nil
}
