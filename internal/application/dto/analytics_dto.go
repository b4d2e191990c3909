package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO daily and month-to-date snapshot for the home screen.
type DashboardSummaryDTO struct {
	TodaySales    decimal.Decimal  `json:"today_sales"`
	TodayInvoices int64            `json:"today_invoices"`
	TodayMargin   decimal.Decimal  `json:"today_margin"`
	MonthSales    decimal.Decimal  `json:"month_sales"`
	MonthInvoices int64            `json:"month_invoices"`
	MonthMargin   decimal.Decimal  `json:"month_margin"`
	TopProducts   []TopProductDTO  `json:"top_products"`
}

// TopProductDTO one entry of the best-sellers widget.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitsSold decimal.Decimal `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
	Margin    decimal.Decimal `json:"margin"`
}

// SalesReportDTO aggregate report for an arbitrary period.
type SalesReportDTO struct {
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	InvoiceCount int64              `json:"invoice_count"`
	NetTotal     decimal.Decimal    `json:"net_total"`
	TaxTotal     decimal.Decimal    `json:"tax_total"`
	GrandTotal   decimal.Decimal    `json:"grand_total"`
	TotalCOGS    decimal.Decimal    `json:"total_cogs"`
	TotalMargin  decimal.Decimal    `json:"total_margin"`
	TopProducts  []TopProductDTO    `json:"top_products"`
	ByCustomer   []CustomerSalesDTO `json:"by_customer"`
}

// CustomerSalesDTO revenue grouped by customer.
type CustomerSalesDTO struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	InvoiceCount int64           `json:"invoice_count"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// LowStockDTO one product at or below its reorder level.
type LowStockDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}
