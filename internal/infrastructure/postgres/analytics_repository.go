package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo read-only reporting queries over invoices and stock.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository builds the analytics adapter.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesMetrics aggregates the issued invoices of a period: count, totals,
// COGS and margin. COGS uses the current average cost of each product.
// COALESCE keeps a period without sales at zero instead of NULL.
func (r *AnalyticsRepo) GetSalesMetrics(
	ctx context.Context,
	ownerID string,
	startDate, endDate time.Time,
) (*repository.SalesMetricsResult, error) {
	const query = `
	SELECT
	    COUNT(DISTINCT i.id)                                    AS invoice_count,
	    COALESCE(SUM(d.subtotal),                    0)         AS net_total,
	    COALESCE(SUM(d.subtotal * d.tax_rate),       0)         AS tax_total,
	    COALESCE(SUM(d.subtotal * (1 + d.tax_rate)), 0)         AS grand_total,
	    COALESCE(SUM(d.quantity * p.cost),           0)         AS total_cogs,
	    COALESCE(SUM(d.subtotal - d.quantity * p.cost), 0)      AS total_margin
	FROM invoices i
	JOIN invoice_details d ON d.invoice_id = i.id
	JOIN products        p ON p.id         = d.product_id
	WHERE i.owner_id = $1
	  AND i.date BETWEEN $2 AND $3
	  AND i.status = $4`

	var m repository.SalesMetricsResult
	err := r.pool.QueryRow(ctx, query, ownerID, startDate, endDate, entity.InvoiceStatusIssued).Scan(
		&m.InvoiceCount, &m.NetTotal, &m.TaxTotal, &m.GrandTotal, &m.TotalCOGS, &m.TotalMargin,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesMetrics: %w", err)
	}
	return &m, nil
}

// GetTopProducts returns the `limit` products with the highest revenue in the period.
func (r *AnalyticsRepo) GetTopProducts(
	ctx context.Context,
	ownerID string,
	startDate, endDate time.Time,
	limit int,
) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    p.id                                          AS product_id,
	    p.sku,
	    p.name,
	    SUM(d.quantity)                               AS units_sold,
	    SUM(d.subtotal)                               AS revenue,
	    SUM(d.subtotal - d.quantity * p.cost)         AS margin
	FROM invoice_details d
	JOIN invoices i ON i.id = d.invoice_id
	JOIN products p ON p.id = d.product_id
	WHERE i.owner_id = $1
	  AND i.date BETWEEN $2 AND $3
	  AND i.status = $4
	GROUP BY p.id, p.sku, p.name
	ORDER BY revenue DESC
	LIMIT $5`

	rows, err := r.pool.Query(ctx, query, ownerID, startDate, endDate, entity.InvoiceStatusIssued, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(
			&row.ProductID, &row.SKU, &row.Name,
			&row.UnitsSold, &row.Revenue, &row.Margin,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts rows: %w", err)
	}
	if results == nil {
		results = []repository.TopProductResult{}
	}
	return results, nil
}

// GetSalesByCustomer groups revenue by customer, highest first.
func (r *AnalyticsRepo) GetSalesByCustomer(
	ctx context.Context,
	ownerID string,
	startDate, endDate time.Time,
	limit int,
) ([]repository.CustomerSalesResult, error) {
	const query = `
	SELECT
	    c.id                    AS customer_id,
	    c.name                  AS customer_name,
	    COUNT(i.id)             AS invoice_count,
	    SUM(i.grand_total)      AS revenue
	FROM invoices i
	JOIN customers c ON c.id = i.customer_id
	WHERE i.owner_id = $1
	  AND i.date BETWEEN $2 AND $3
	  AND i.status = $4
	GROUP BY c.id, c.name
	ORDER BY revenue DESC
	LIMIT $5`

	rows, err := r.pool.Query(ctx, query, ownerID, startDate, endDate, entity.InvoiceStatusIssued, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesByCustomer: %w", err)
	}
	defer rows.Close()

	var results []repository.CustomerSalesResult
	for rows.Next() {
		var row repository.CustomerSalesResult
		if err := rows.Scan(&row.CustomerID, &row.CustomerName, &row.InvoiceCount, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetSalesByCustomer scan: %w", err)
		}
		results = append(results, row)
	}
	if results == nil {
		results = []repository.CustomerSalesResult{}
	}
	return results, rows.Err()
}

// GetLowStock returns products at or below their reorder level. Products with
// a zero reorder level are skipped (threshold disabled).
func (r *AnalyticsRepo) GetLowStock(ctx context.Context, ownerID string) ([]repository.LowStockResult, error) {
	const query = `
	SELECT
	    p.id                        AS product_id,
	    p.sku,
	    p.name,
	    COALESCE(s.quantity, 0)     AS quantity,
	    p.reorder_level
	FROM products p
	LEFT JOIN stock s ON s.product_id = p.id AND s.owner_id = p.owner_id
	WHERE p.owner_id = $1
	  AND p.reorder_level > 0
	  AND COALESCE(s.quantity, 0) <= p.reorder_level
	ORDER BY COALESCE(s.quantity, 0) / p.reorder_level ASC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetLowStock: %w", err)
	}
	defer rows.Close()

	var results []repository.LowStockResult
	for rows.Next() {
		var row repository.LowStockResult
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.Name, &row.Quantity, &row.ReorderLevel); err != nil {
			return nil, fmt.Errorf("analytics.GetLowStock scan: %w", err)
		}
		results = append(results, row)
	}
	if results == nil {
		results = []repository.LowStockResult{}
	}
	return results, rows.Err()
}
