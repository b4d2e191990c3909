package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/dto"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

// Allowed GST rates (as fractions).
var validTaxRates = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromFloat(0.05),
	decimal.NewFromFloat(0.12),
	decimal.NewFromFloat(0.18),
	decimal.NewFromFloat(0.28),
}

// ProductUseCase catalog use cases.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create creates a product. SKU must be unique within the account; cost
// starts at zero and only changes through stock-in movements.
func (uc *ProductUseCase) Create(ownerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !isValidTaxRate(in.TaxRate) {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByOwnerAndSKU(ownerID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Cost:         decimal.Zero,
		TaxRate:      in.TaxRate,
		Unit:         in.Unit,
		ReorderLevel: in.ReorderLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lists the account's products.
func (uc *ProductUseCase) List(ownerID string, limit, offset int) ([]*dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// GetByID returns one product, refusing foreign-owner rows.
func (uc *ProductUseCase) GetByID(ownerID, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil || p == nil {
		return nil, domain.ErrNotFound
	}
	if p.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(p), nil
}

// Update modifies the product's editable fields (never cost).
func (uc *ProductUseCase) Update(ownerID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil || p == nil {
		return nil, domain.ErrNotFound
	}
	if p.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.TaxRate != nil {
		if !isValidTaxRate(*in.TaxRate) {
			return nil, domain.ErrInvalidInput
		}
		p.TaxRate = *in.TaxRate
	}
	if in.Unit != "" {
		p.Unit = in.Unit
	}
	if in.ReorderLevel != nil {
		p.ReorderLevel = *in.ReorderLevel
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete removes a product. Movement history keeps its rows; the FK on
// stock cascades the quantity row away.
func (uc *ProductUseCase) Delete(ownerID, id string) error {
	p, err := uc.repo.GetByID(id)
	if err != nil || p == nil {
		return domain.ErrNotFound
	}
	if p.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func isValidTaxRate(rate decimal.Decimal) bool {
	for _, r := range validTaxRates {
		if rate.Equal(r) {
			return true
		}
	}
	return false
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Cost:         p.Cost,
		TaxRate:      p.TaxRate,
		Unit:         p.Unit,
		ReorderLevel: p.ReorderLevel,
	}
}
