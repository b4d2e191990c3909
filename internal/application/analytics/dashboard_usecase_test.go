package analytics_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/analytics"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeAnalyticsRepo serves canned metrics. When barrier is set, every query
// blocks until all three dashboard queries have arrived, so a sequential
// caller trips the timeout instead of hanging the suite.
type fakeAnalyticsRepo struct {
	mu      sync.Mutex
	arrived int
	barrier chan struct{}

	metricsErr error
	topErr     error
}

const dashboardQueries = 3

func (f *fakeAnalyticsRepo) await() error {
	if f.barrier == nil {
		return nil
	}
	f.mu.Lock()
	f.arrived++
	if f.arrived == dashboardQueries {
		close(f.barrier)
	}
	f.mu.Unlock()
	select {
	case <-f.barrier:
		return nil
	case <-time.After(2 * time.Second):
		return errors.New("dashboard queries did not overlap")
	}
}

func (f *fakeAnalyticsRepo) GetSalesMetrics(ctx context.Context, ownerID string, start, end time.Time) (*repository.SalesMetricsResult, error) {
	if err := f.await(); err != nil {
		return nil, err
	}
	if f.metricsErr != nil {
		return nil, f.metricsErr
	}
	// Results derived from the window, so the test can tell the today
	// query from the month query by what lands in each DTO field.
	hours := int64(end.Sub(start) / time.Hour)
	return &repository.SalesMetricsResult{
		InvoiceCount: hours,
		GrandTotal:   decimal.NewFromInt(hours * 100),
		TotalMargin:  decimal.NewFromInt(hours * 10),
	}, nil
}

func (f *fakeAnalyticsRepo) GetTopProducts(ctx context.Context, ownerID string, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	if err := f.await(); err != nil {
		return nil, err
	}
	if f.topErr != nil {
		return nil, f.topErr
	}
	return []repository.TopProductResult{
		{ProductID: "p1", SKU: "TEA-250", Name: "Assam Tea 250g", UnitsSold: decimal.NewFromInt(90), Revenue: decimal.NewFromInt(16200)},
	}, nil
}

func (f *fakeAnalyticsRepo) GetSalesByCustomer(ctx context.Context, ownerID string, start, end time.Time, limit int) ([]repository.CustomerSalesResult, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepo) GetLowStock(ctx context.Context, ownerID string) ([]repository.LowStockResult, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_GetSummary(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := analytics.NewDashboardUseCase(repo)

	out, err := uc.GetSummary(context.Background(), "owner-1")
	require.NoError(t, err)

	// Mirror the use case's windows: today spans 23h, the current month
	// spans from day 1 at 00:00 through the end of today.
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	todayHours := int64(todayEnd.Sub(todayStart) / time.Hour)
	monthHours := int64(todayEnd.Sub(monthStart) / time.Hour)

	assert.Equal(t, todayHours, out.TodayInvoices)
	assert.True(t, out.TodaySales.Equal(decimal.NewFromInt(todayHours*100)))
	assert.True(t, out.TodayMargin.Equal(decimal.NewFromInt(todayHours*10)))
	assert.Equal(t, monthHours, out.MonthInvoices)
	assert.True(t, out.MonthSales.Equal(decimal.NewFromInt(monthHours*100)))
	require.Len(t, out.TopProducts, 1)
	assert.Equal(t, "TEA-250", out.TopProducts[0].SKU)
}

func TestDashboard_QueriesRunInParallel(t *testing.T) {
	repo := &fakeAnalyticsRepo{barrier: make(chan struct{})}
	uc := analytics.NewDashboardUseCase(repo)

	// Each query blocks until all three are in flight; a sequential
	// implementation never gets past the first one.
	out, err := uc.GetSummary(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, out.TopProducts, 1)
}

func TestDashboard_QueryErrorPropagates(t *testing.T) {
	repo := &fakeAnalyticsRepo{metricsErr: errors.New("connection reset")}
	uc := analytics.NewDashboardUseCase(repo)

	_, err := uc.GetSummary(context.Background(), "owner-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
