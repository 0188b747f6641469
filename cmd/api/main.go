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

	"github.com/snowva/business-hub/internal/application/auth"
	"github.com/snowva/business-hub/internal/application/billing"
	"github.com/snowva/business-hub/internal/application/reports"
	"github.com/snowva/business-hub/internal/application/usecase"
	infrapdf "github.com/snowva/business-hub/internal/infrastructure/pdf"
	"github.com/snowva/business-hub/internal/infrastructure/postgres"
	httpRouter "github.com/snowva/business-hub/internal/interfaces/http"
	"github.com/snowva/business-hub/pkg/config"
	"github.com/snowva/business-hub/pkg/logger"
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

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	company := billing.CompanyInfo{
		Name:      cfg.Company.Name,
		VATNumber: cfg.Company.VATNumber,
		Email:     cfg.Company.Email,
		Phone:     cfg.Company.Phone,
		Address:   cfg.Company.Address,
		BankName:  cfg.Company.BankName,
		BankAcc:   cfg.Company.BankAcc,
		BankCode:  cfg.Company.BankCode,
	}

	customerUC := usecase.NewCustomerUseCase(customerRepo, productRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	quoteUC := billing.NewQuoteUseCase(quoteRepo, customerRepo, productRepo, txRunner)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, customerRepo, productRepo, txRunner)
	paymentUC := billing.NewPaymentUseCase(paymentRepo, invoiceRepo, customerRepo, txRunner)
	statementUC := billing.NewStatementUseCase(customerRepo, invoiceRepo, paymentRepo)

	pdfGenerator := infrapdf.NewMarotoGenerator()
	documentUC := billing.NewDocumentUseCase(
		invoiceRepo, customerRepo, statementUC, pdfGenerator, pdfGenerator, company,
	)

	agingUC := reports.NewAgingUseCase(invoiceRepo, customerRepo)
	dashboardUC := reports.NewDashboardUseCase(invoiceRepo, quoteRepo, paymentRepo, customerRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Snowva Business Hub API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		ProductUC:   productUC,
		QuoteUC:     quoteUC,
		InvoiceUC:   invoiceUC,
		PaymentUC:   paymentUC,
		StatementUC: statementUC,
		DocumentUC:  documentUC,
		AgingUC:     agingUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
