package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/dto"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
	domaininv "github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/inventory"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

// RegisterMovementUseCase records stock movements transactionally
// (IN, OUT, ADJUSTMENT) with Commit/Rollback handled by the TxRunner.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	ledger      *StockLedger
	productRepo repository.ProductRepository
}

// NewRegisterMovementUseCase builds the use case.
func NewRegisterMovementUseCase(txRunner TxRunner, ledger *StockLedger, productRepo repository.ProductRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, ledger: ledger, productRepo: productRepo}
}

// MovementInput input for registering one stock movement.
// IN requires UnitCost; OUT and negative ADJUSTMENT go through the ledger's
// conditional decrement and can never drive the quantity below zero.
type MovementInput struct {
	OwnerID   string
	UserID    string
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
}

// RegisterMovementFromRequest adapts the HTTP request to RegisterMovement.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, ownerID, userID string, in dto.RegisterMovementRequest) error {
	input := MovementInput{
		OwnerID:   ownerID,
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
	}
	return uc.RegisterMovement(ctx, input)
}

// RegisterMovement starts a transaction, applies the movement by type and
// commits, or rolls everything back on any error.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) error {
	switch input.Type {
	case entity.MovementTypeIN:
		if input.ProductID == "" || !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if input.UnitCost == nil || input.UnitCost.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeOUT:
		if input.ProductID == "" || !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		if input.ProductID == "" || input.Quantity.IsZero() {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}

	// Product must exist and belong to the caller's account
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	if product.OwnerID != input.OwnerID {
		return domain.ErrForbidden
	}

	now := time.Now()
	refID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		switch input.Type {
		case entity.MovementTypeIN:
			return uc.doIN(movRepo, stockRepo, productRepo, product, input, now, refID)
		case entity.MovementTypeOUT:
			_, err := uc.ledger.RegisterSaleInTx(stockRepo, movRepo, product, input.Quantity, input.OwnerID, input.UserID, now, refID)
			return err
		case entity.MovementTypeADJUSTMENT:
			return uc.doADJUSTMENT(movRepo, stockRepo, product, input, now, refID)
		}
		return domain.ErrInvalidInput
	})
}

// doIN: locks the row, recalculates the weighted average cost, adds stock and
// records the movement. The lock is only needed here because costing reads the
// quantity before writing it.
func (uc *RegisterMovementUseCase) doIN(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	input MovementInput,
	now time.Time, refID string,
) error {
	stock, err := stockRepo.GetForUpdate(input.ProductID, input.OwnerID)
	if err != nil {
		return err
	}
	unitCost := *input.UnitCost
	newCost := domaininv.AverageCost(stock.Quantity, product.Cost, input.Quantity, unitCost)

	if err := productRepo.UpdateCost(input.ProductID, newCost); err != nil {
		return err
	}
	stock.Quantity = stock.Quantity.Add(input.Quantity)
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ReferenceID: refID,
		ProductID:   input.ProductID,
		OwnerID:     input.OwnerID,
		Type:        entity.MovementTypeIN,
		Quantity:    input.Quantity,
		UnitCost:    unitCost,
		TotalCost:   input.Quantity.Mul(unitCost),
		Date:        now,
		CreatedAt:   now,
		CreatedBy:   input.UserID,
	}
	return movRepo.Create(mov)
}

// doADJUSTMENT: positive deltas add stock; negative deltas go through the
// conditional decrement so a correction can never leave the ledger negative.
func (uc *RegisterMovementUseCase) doADJUSTMENT(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	product *entity.Product,
	input MovementInput,
	now time.Time, refID string,
) error {
	if input.Quantity.GreaterThan(decimal.Zero) {
		stock, err := stockRepo.GetForUpdate(input.ProductID, input.OwnerID)
		if err != nil {
			return err
		}
		stock.Quantity = stock.Quantity.Add(input.Quantity)
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
	} else {
		if _, err := stockRepo.ReserveAndDecrement(input.ProductID, input.Quantity.Neg(), input.OwnerID); err != nil {
			return err
		}
	}
	mov := &entity.StockMovement{
		ReferenceID: refID,
		ProductID:   input.ProductID,
		OwnerID:     input.OwnerID,
		Type:        entity.MovementTypeADJUSTMENT,
		Quantity:    input.Quantity,
		UnitCost:    product.Cost,
		TotalCost:   input.Quantity.Mul(product.Cost),
		Date:        now,
		CreatedAt:   now,
		CreatedBy:   input.UserID,
	}
	return movRepo.Create(mov)
}
