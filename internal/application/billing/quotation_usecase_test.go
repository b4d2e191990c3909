package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/billing"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/dto"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
)

type fakeQuotationRepo struct {
	quotations map[string]*entity.Quotation
	items      []*entity.QuotationItem
	updateErr  error // injected UpdateStatus failure
}

func newFakeQuotationRepo() *fakeQuotationRepo {
	return &fakeQuotationRepo{quotations: make(map[string]*entity.Quotation)}
}

func (f *fakeQuotationRepo) Create(q *entity.Quotation) error {
	f.quotations[q.ID] = q
	return nil
}

func (f *fakeQuotationRepo) CreateItem(item *entity.QuotationItem) error {
	f.items = append(f.items, item)
	return nil
}

func (f *fakeQuotationRepo) GetByID(id string) (*entity.Quotation, error) {
	return f.quotations[id], nil
}

func (f *fakeQuotationRepo) GetItemsByQuotationID(quotationID string) ([]*entity.QuotationItem, error) {
	var out []*entity.QuotationItem
	for _, it := range f.items {
		if it.QuotationID == quotationID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeQuotationRepo) ListByOwner(ownerID, status string, limit, offset int) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	for _, q := range f.quotations {
		if q.OwnerID != ownerID {
			continue
		}
		if status != "" && q.Status != status {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (f *fakeQuotationRepo) UpdateStatus(id, status, invoiceID string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	q, ok := f.quotations[id]
	if !ok {
		return domain.ErrNotFound
	}
	q.Status = status
	if invoiceID != "" {
		q.InvoiceID = invoiceID
	}
	return nil
}

type quotationState struct {
	status    string
	invoiceID string
}

func (f *fakeQuotationRepo) snapshotStatuses() map[string]quotationState {
	out := make(map[string]quotationState, len(f.quotations))
	for id, q := range f.quotations {
		out[id] = quotationState{q.Status, q.InvoiceID}
	}
	return out
}

func (f *fakeQuotationRepo) restoreStatuses(snap map[string]quotationState) {
	for id, st := range snap {
		if q, ok := f.quotations[id]; ok {
			q.Status = st.status
			q.InvoiceID = st.invoiceID
		}
	}
}

type quotationFixture struct {
	*fixture
	qRepo *fakeQuotationRepo
	uc    *billing.QuotationUseCase
}

func newQuotationFixture(t *testing.T) *quotationFixture {
	t.Helper()
	fx := newFixture(t)
	qRepo := fx.qRepo // same instance the tx runner binds, as in the real wiring
	custRepo := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		custID: {ID: custID, OwnerID: ownerID, Name: "Sharma General Store"},
	}}
	prodRepo := &fakeProductRepo{products: map[string]*entity.Product{
		prodTea: {
			ID: prodTea, OwnerID: ownerID, Name: "Assam Tea 250g",
			Price: decimal.NewFromInt(180), Cost: decimal.NewFromInt(120),
			TaxRate: decimal.NewFromFloat(0.05),
		},
	}}
	uc := billing.NewQuotationUseCase(qRepo, custRepo, prodRepo, fx.uc)
	return &quotationFixture{fixture: fx, qRepo: qRepo, uc: uc}
}

func (fx *quotationFixture) createDraft(t *testing.T) *dto.QuotationResponse {
	t.Helper()
	out, err := fx.uc.Create(context.Background(), ownerID, dto.CreateQuotationRequest{
		CustomerID: custID,
		Items: []dto.QuotationItemRequest{
			{ProductID: prodTea, Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────

func TestQuotation_CreateDraft(t *testing.T) {
	fx := newQuotationFixture(t)
	out := fx.createDraft(t)

	assert.Equal(t, entity.QuotationStatusDraft, out.Status)
	// 3 * 180 = 540 net; 540 * 0.05 = 27 tax
	assert.True(t, out.NetTotal.Equal(decimal.NewFromInt(540)), "net, got %s", out.NetTotal)
	assert.True(t, out.TaxTotal.Equal(decimal.NewFromInt(27)), "tax, got %s", out.TaxTotal)
	assert.True(t, out.GrandTotal.Equal(decimal.NewFromInt(567)))
	assert.Len(t, out.Items, 1)

	// A quotation never touches stock
	assert.Len(t, fx.movRepo.movements, 0)
}

func TestQuotation_StatusLifecycle(t *testing.T) {
	fx := newQuotationFixture(t)
	out := fx.createDraft(t)
	ctx := context.Background()

	require.NoError(t, fx.uc.UpdateStatus(ctx, ownerID, out.ID, entity.QuotationStatusSent))
	require.NoError(t, fx.uc.UpdateStatus(ctx, ownerID, out.ID, entity.QuotationStatusAccepted))

	got, err := fx.uc.GetByID(ctx, ownerID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationStatusAccepted, got.Status)
}

func TestQuotation_UpdateStatus_RejectsReservedStates(t *testing.T) {
	fx := newQuotationFixture(t)
	out := fx.createDraft(t)
	ctx := context.Background()

	// CONVERTED and EXPIRED are never set through UpdateStatus
	assert.ErrorIs(t, fx.uc.UpdateStatus(ctx, ownerID, out.ID, entity.QuotationStatusConverted), domain.ErrInvalidInput)
	assert.ErrorIs(t, fx.uc.UpdateStatus(ctx, ownerID, out.ID, entity.QuotationStatusExpired), domain.ErrInvalidInput)
	assert.ErrorIs(t, fx.uc.UpdateStatus(ctx, ownerID, out.ID, "WHATEVER"), domain.ErrInvalidInput)
}

func TestQuotation_UpdateStatus_FrozenOnceConverted(t *testing.T) {
	fx := newQuotationFixture(t)
	out := fx.createDraft(t)
	fx.qRepo.quotations[out.ID].Status = entity.QuotationStatusConverted

	err := fx.uc.UpdateStatus(context.Background(), ownerID, out.ID, entity.QuotationStatusSent)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestQuotation_UpdateStatus_OwnerIsolation(t *testing.T) {
	fx := newQuotationFixture(t)
	out := fx.createDraft(t)

	err := fx.uc.UpdateStatus(context.Background(), "owner-2", out.ID, entity.QuotationStatusSent)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestQuotation_Convert_HappyPath(t *testing.T) {
	fx := newQuotationFixture(t)
	fx.stockRepo.set(prodTea, ownerID, decimal.NewFromInt(10))
	out := fx.createDraft(t)
	ctx := context.Background()
	require.NoError(t, fx.uc.UpdateStatus(ctx, ownerID, out.ID, entity.QuotationStatusSent))
	require.NoError(t, fx.uc.UpdateStatus(ctx, ownerID, out.ID, entity.QuotationStatusAccepted))

	inv, err := fx.uc.ConvertToInvoice(ctx, ownerID, userID, out.ID, "INV")
	require.NoError(t, err)
	require.NotNil(t, inv)

	// Invoice carries the quotation's priced lines
	assert.True(t, inv.NetTotal.Equal(decimal.NewFromInt(540)))
	assert.Equal(t, entity.InvoiceStatusIssued, inv.Status)

	// Stock moved on conversion, not before
	tea, _ := fx.stockRepo.Get(prodTea, ownerID)
	assert.True(t, tea.Quantity.Equal(decimal.NewFromInt(7)))

	// Quotation points at the invoice and is frozen
	q, _ := fx.uc.GetByID(ctx, ownerID, out.ID)
	assert.Equal(t, entity.QuotationStatusConverted, q.Status)
	assert.Equal(t, inv.ID, q.InvoiceID)
}

func TestQuotation_Convert_RequiresAccepted(t *testing.T) {
	fx := newQuotationFixture(t)
	fx.stockRepo.set(prodTea, ownerID, decimal.NewFromInt(10))
	out := fx.createDraft(t)

	_, err := fx.uc.ConvertToInvoice(context.Background(), ownerID, userID, out.ID, "INV")
	assert.ErrorIs(t, err, domain.ErrConflict, "a DRAFT quotation cannot convert")

	tea, _ := fx.stockRepo.Get(prodTea, ownerID)
	assert.True(t, tea.Quantity.Equal(decimal.NewFromInt(10)), "stock must be untouched")
}

func TestQuotation_Convert_ExpiredIsFrozen(t *testing.T) {
	fx := newQuotationFixture(t)
	fx.stockRepo.set(prodTea, ownerID, decimal.NewFromInt(10))
	out := fx.createDraft(t)
	ctx := context.Background()
	require.NoError(t, fx.uc.UpdateStatus(ctx, ownerID, out.ID, entity.QuotationStatusAccepted))
	fx.qRepo.quotations[out.ID].ValidUntil = time.Now().AddDate(0, 0, -1)

	_, err := fx.uc.ConvertToInvoice(ctx, ownerID, userID, out.ID, "INV")
	assert.ErrorIs(t, err, domain.ErrConflict)

	q, _ := fx.qRepo.GetByID(out.ID)
	assert.Equal(t, entity.QuotationStatusExpired, q.Status, "lapsed validity marks the quotation EXPIRED")
}

func TestQuotation_Convert_StatusWriteFailureRollsBackInvoice(t *testing.T) {
	fx := newQuotationFixture(t)
	fx.stockRepo.set(prodTea, ownerID, decimal.NewFromInt(10))
	out := fx.createDraft(t)
	ctx := context.Background()
	require.NoError(t, fx.uc.UpdateStatus(ctx, ownerID, out.ID, entity.QuotationStatusAccepted))

	// The CONVERTED mark fails inside the transaction: the invoice and the
	// decrements must roll back with it, never commit on their own.
	fx.qRepo.updateErr = errors.New("connection reset")
	_, err := fx.uc.ConvertToInvoice(ctx, ownerID, userID, out.ID, "INV")
	require.Error(t, err)

	assert.Equal(t, 0, fx.invRepo.invoiceCount(), "no half-converted invoice may survive")
	assert.Len(t, fx.movRepo.movements, 0)
	tea, _ := fx.stockRepo.Get(prodTea, ownerID)
	assert.True(t, tea.Quantity.Equal(decimal.NewFromInt(10)))

	// Quotation still ACCEPTED: the retry below succeeds exactly once
	fx.qRepo.updateErr = nil
	inv, err := fx.uc.ConvertToInvoice(ctx, ownerID, userID, out.ID, "INV")
	require.NoError(t, err)
	assert.Equal(t, 1, fx.invRepo.invoiceCount())
	tea, _ = fx.stockRepo.Get(prodTea, ownerID)
	assert.True(t, tea.Quantity.Equal(decimal.NewFromInt(7)), "one round of decrements, not two")
	q, _ := fx.qRepo.GetByID(out.ID)
	assert.Equal(t, entity.QuotationStatusConverted, q.Status)
	assert.Equal(t, inv.ID, q.InvoiceID)
}

func TestQuotation_Convert_ShortStockKeepsQuotationAccepted(t *testing.T) {
	fx := newQuotationFixture(t)
	fx.stockRepo.set(prodTea, ownerID, decimal.NewFromInt(1)) // quotation asks for 3
	out := fx.createDraft(t)
	ctx := context.Background()
	require.NoError(t, fx.uc.UpdateStatus(ctx, ownerID, out.ID, entity.QuotationStatusAccepted))

	_, err := fx.uc.ConvertToInvoice(ctx, ownerID, userID, out.ID, "INV")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	q, _ := fx.qRepo.GetByID(out.ID)
	assert.Equal(t, entity.QuotationStatusAccepted, q.Status,
		"a failed conversion leaves the quotation ready to retry")
	assert.Equal(t, 0, fx.invRepo.invoiceCount())
}
