package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesMetricsResult aggregates issued invoices over a period.
type SalesMetricsResult struct {
	InvoiceCount int64
	NetTotal     decimal.Decimal
	TaxTotal     decimal.Decimal
	GrandTotal   decimal.Decimal
	TotalCOGS    decimal.Decimal
	TotalMargin  decimal.Decimal
}

// TopProductResult one row of the best-sellers ranking.
type TopProductResult struct {
	ProductID string
	SKU       string
	Name      string
	UnitsSold decimal.Decimal
	Revenue   decimal.Decimal
	Margin    decimal.Decimal
}

// CustomerSalesResult one row of the sales-by-customer report.
type CustomerSalesResult struct {
	CustomerID   string
	CustomerName string
	InvoiceCount int64
	Revenue      decimal.Decimal
}

// LowStockResult one product at or below its reorder level.
type LowStockResult struct {
	ProductID    string
	SKU          string
	Name         string
	Quantity     decimal.Decimal
	ReorderLevel decimal.Decimal
}

// AnalyticsRepository read-only reporting queries over issued invoices and stock.
type AnalyticsRepository interface {
	GetSalesMetrics(ctx context.Context, ownerID string, startDate, endDate time.Time) (*SalesMetricsResult, error)
	GetTopProducts(ctx context.Context, ownerID string, startDate, endDate time.Time, limit int) ([]TopProductResult, error)
	GetSalesByCustomer(ctx context.Context, ownerID string, startDate, endDate time.Time, limit int) ([]CustomerSalesResult, error)
	GetLowStock(ctx context.Context, ownerID string) ([]LowStockResult, error)
}
