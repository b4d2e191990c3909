// Package analytics contains the read-only reporting use cases: the home
// dashboard and the period sales report.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/dto"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

const dashboardTopProducts = 5 // rows in the best-sellers widget

// DashboardUseCase builds the today + current-month summary.
//
// Data source: AnalyticsRepository (read-only queries). It never touches the
// invoice tables directly.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary builds the DashboardSummaryDTO for the account.
//
// Three queries in parallel:
//  1. GetSalesMetrics(today)   → TodaySales + TodayMargin
//  2. GetSalesMetrics(month)   → MonthSales + MonthMargin
//  3. GetTopProducts(month, 5) → TopProducts
func (uc *DashboardUseCase) GetSummary(ctx context.Context, ownerID string) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// Today: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Current month: day 1 at 00:00 – today at 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	// ── Goroutines for the 3 DB queries ───────────────────────────────────────
	type metricsResult struct {
		metrics *repository.SalesMetricsResult
		err     error
	}
	type topProductsResult struct {
		products []repository.TopProductResult
		err      error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	topCh := make(chan topProductsResult, 1)

	go func() {
		m, err := uc.analyticsRepo.GetSalesMetrics(ctx, ownerID, todayStart, todayEnd)
		todayCh <- metricsResult{m, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.GetSalesMetrics(ctx, ownerID, monthStart, monthEnd)
		monthCh <- metricsResult{m, err}
	}()
	go func() {
		p, err := uc.analyticsRepo.GetTopProducts(ctx, ownerID, monthStart, monthEnd, dashboardTopProducts)
		topCh <- topProductsResult{p, err}
	}()

	todayRes := <-todayCh
	monthRes := <-monthCh
	topRes := <-topCh

	if todayRes.err != nil {
		return nil, fmt.Errorf("dashboard: today metrics: %w", todayRes.err)
	}
	if monthRes.err != nil {
		return nil, fmt.Errorf("dashboard: month metrics: %w", monthRes.err)
	}
	if topRes.err != nil {
		return nil, fmt.Errorf("dashboard: top products: %w", topRes.err)
	}
	today, month, top := todayRes.metrics, monthRes.metrics, topRes.products

	summary := &dto.DashboardSummaryDTO{
		TodaySales:    today.GrandTotal,
		TodayInvoices: today.InvoiceCount,
		TodayMargin:   today.TotalMargin,
		MonthSales:    month.GrandTotal,
		MonthInvoices: month.InvoiceCount,
		MonthMargin:   month.TotalMargin,
		TopProducts:   make([]dto.TopProductDTO, 0, len(top)),
	}
	for _, t := range top {
		summary.TopProducts = append(summary.TopProducts, dto.TopProductDTO{
			ProductID: t.ProductID,
			SKU:       t.SKU,
			Name:      t.Name,
			UnitsSold: t.UnitsSold,
			Revenue:   t.Revenue,
			Margin:    t.Margin,
		})
	}
	return summary, nil
}
