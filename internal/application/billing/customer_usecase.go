package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/dto"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

// CustomerUseCase use cases for the customer directory.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create creates a new customer. TaxID is optional (walk-in customers), but
// when present it must be unique within the account.
func (uc *CustomerUseCase) Create(ownerID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxID != "" {
		existing, _ := uc.repo.GetByOwnerAndTaxID(ownerID, in.TaxID)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lists the account's customers.
func (uc *CustomerUseCase) List(ownerID string, limit, offset int) ([]*dto.CustomerResponse, error) {
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
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// GetByID returns one customer, refusing foreign-owner rows.
func (uc *CustomerUseCase) GetByID(ownerID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil || c == nil {
		return nil, domain.ErrNotFound
	}
	if c.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return toCustomerResponse(c), nil
}

// Update modifies the customer's editable fields.
func (uc *CustomerUseCase) Update(ownerID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil || c == nil {
		return nil, domain.ErrNotFound
	}
	if c.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	if in.Name != "" {
		c.Name = in.Name
	}
	if in.TaxID != "" {
		c.TaxID = in.TaxID
	}
	if in.Email != "" {
		c.Email = in.Email
	}
	if in.Phone != "" {
		c.Phone = in.Phone
	}
	if in.Address != "" {
		c.Address = in.Address
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:      c.ID,
		OwnerID: c.OwnerID,
		Name:    c.Name,
		TaxID:   c.TaxID,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}
