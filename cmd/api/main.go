package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/Patel-Pritam/mahadev-trader-suite/internal/application/analytics"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/auth"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/billing"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/inventory"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/usecase"
	infrapdf "github.com/Patel-Pritam/mahadev-trader-suite/internal/infrastructure/pdf"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/infrastructure/postgres"
	httpRouter "github.com/Patel-Pritam/mahadev-trader-suite/internal/interfaces/http"
	"github.com/Patel-Pritam/mahadev-trader-suite/pkg/config"
	"github.com/Patel-Pritam/mahadev-trader-suite/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	// Repositories (pool-bound; tx-bound copies come from the TxRunner)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Use cases
	ledger := inventory.NewStockLedger(stockRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, ledger, productRepo)
	stockQueriesUC := inventory.NewStockQueryUseCase(stockRepo, movementRepo, productRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(txRunner, ledger, customerRepo, productRepo, invoiceRepo)
	quotationUC := billing.NewQuotationUseCase(quotationRepo, customerRepo, productRepo, createInvoiceUC)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	salesReportUC := appanalytics.NewSalesReportUseCase(analyticsRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, userRepo, customerRepo, productRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mahadev Trader Suite API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		StockQueries:     stockQueriesUC,
		CustomerUC:       customerUC,
		CreateInvoice:    createInvoiceUC,
		InvoicePDF:       invoicePDFUC,
		QuotationUC:      quotationUC,
		DashboardUC:      dashboardUC,
		SalesReportUC:    salesReportUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
