package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/dto"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

const reportTopProducts = 10

// SalesReportUseCase builds the period sales report and the low-stock list.
type SalesReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewSalesReportUseCase builds the use case.
func NewSalesReportUseCase(analyticsRepo repository.AnalyticsRepository) *SalesReportUseCase {
	return &SalesReportUseCase{analyticsRepo: analyticsRepo}
}

// GetSalesReport aggregates issued invoices between startDate and endDate
// (inclusive, whole days).
func (uc *SalesReportUseCase) GetSalesReport(ctx context.Context, ownerID string, startDate, endDate time.Time) (*dto.SalesReportDTO, error) {
	if endDate.Before(startDate) {
		return nil, domain.ErrInvalidInput
	}
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, endDate.Location()).Add(24*time.Hour - time.Nanosecond)

	metrics, err := uc.analyticsRepo.GetSalesMetrics(ctx, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales report: metrics: %w", err)
	}
	top, err := uc.analyticsRepo.GetTopProducts(ctx, ownerID, start, end, reportTopProducts)
	if err != nil {
		return nil, fmt.Errorf("sales report: top products: %w", err)
	}
	byCustomer, err := uc.analyticsRepo.GetSalesByCustomer(ctx, ownerID, start, end, reportTopProducts)
	if err != nil {
		return nil, fmt.Errorf("sales report: by customer: %w", err)
	}

	report := &dto.SalesReportDTO{
		StartDate:    start.Format("2006-01-02"),
		EndDate:      endDate.Format("2006-01-02"),
		InvoiceCount: metrics.InvoiceCount,
		NetTotal:     metrics.NetTotal,
		TaxTotal:     metrics.TaxTotal,
		GrandTotal:   metrics.GrandTotal,
		TotalCOGS:    metrics.TotalCOGS,
		TotalMargin:  metrics.TotalMargin,
		TopProducts:  make([]dto.TopProductDTO, 0, len(top)),
		ByCustomer:   make([]dto.CustomerSalesDTO, 0, len(byCustomer)),
	}
	for _, t := range top {
		report.TopProducts = append(report.TopProducts, dto.TopProductDTO{
			ProductID: t.ProductID,
			SKU:       t.SKU,
			Name:      t.Name,
			UnitsSold: t.UnitsSold,
			Revenue:   t.Revenue,
			Margin:    t.Margin,
		})
	}
	for _, c := range byCustomer {
		report.ByCustomer = append(report.ByCustomer, dto.CustomerSalesDTO{
			CustomerID:   c.CustomerID,
			CustomerName: c.CustomerName,
			InvoiceCount: c.InvoiceCount,
			Revenue:      c.Revenue,
		})
	}
	return report, nil
}

// GetLowStock lists products at or below their reorder level.
func (uc *SalesReportUseCase) GetLowStock(ctx context.Context, ownerID string) ([]dto.LowStockDTO, error) {
	rows, err := uc.analyticsRepo.GetLowStock(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("low stock report: %w", err)
	}
	out := make([]dto.LowStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockDTO{
			ProductID:    r.ProductID,
			SKU:          r.SKU,
			Name:         r.Name,
			Quantity:     r.Quantity,
			ReorderLevel: r.ReorderLevel,
		})
	}
	return out, nil
}
