package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/analytics"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/auth"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/billing"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/inventory"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/usecase"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	StockQueries     *inventory.StockQueryUseCase
	CustomerUC       *billing.CustomerUseCase
	CreateInvoice    *billing.CreateInvoiceUseCase
	InvoicePDF       *billing.PDFUseCase
	QuotationUC      *billing.QuotationUseCase
	DashboardUC      *analytics.DashboardUseCase
	SalesReportUC    *analytics.SalesReportUseCase
	JWTSecret        string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protected; delete is admin only)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Stock ledger (protected)
	stock := protected.Group("/stock")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.StockQueries)
	stock.Post("/movements", inventoryHandler.RegisterMovement)
	stock.Get("/", inventoryHandler.ListStock)
	stock.Get("/:productId", inventoryHandler.GetStock)
	stock.Get("/:productId/movements", inventoryHandler.ListMovements)

	// Customers (protected)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Invoices (protected)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Quotations (protected)
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Put("/:id/status", quotationHandler.UpdateStatus)
	quotations.Post("/:id/convert", quotationHandler.Convert)

	// Reports (protected)
	reports := protected.Group("/reports")
	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC, deps.SalesReportUC)
	reports.Get("/dashboard", analyticsHandler.Dashboard)
	reports.Get("/sales", analyticsHandler.SalesReport)
	reports.Get("/low-stock", analyticsHandler.LowStock)
}
