package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/snowva/business-hub/internal/application/auth"
	"github.com/snowva/business-hub/internal/application/billing"
	"github.com/snowva/business-hub/internal/application/reports"
	"github.com/snowva/business-hub/internal/application/usecase"
	"github.com/snowva/business-hub/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CustomerUC  *usecase.CustomerUseCase
	ProductUC   *usecase.ProductUseCase
	QuoteUC     *billing.QuoteUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PaymentUC   *billing.PaymentUseCase
	StatementUC *billing.StatementUseCase
	DocumentUC  *billing.DocumentUseCase
	AgingUC     *reports.AgingUseCase
	DashboardUC *reports.DashboardUseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.StatementUC, deps.DocumentUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)
	customers.Post("/:id/addresses", customerHandler.AddAddress)
	customers.Put("/:id/addresses/:addressID", customerHandler.UpdateAddress)
	customers.Delete("/:id/addresses/:addressID", customerHandler.DeleteAddress)
	customers.Post("/:id/prices", customerHandler.SetPrice)
	customers.Delete("/:id/prices/:priceID", customerHandler.DeletePrice)
	customers.Get("/:id/statement", customerHandler.Statement)
	customers.Get("/:id/statement/pdf", customerHandler.StatementPDF)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Post("/:id/prices", productHandler.AddPrice)

	// Quotes
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.Get)
	quotes.Put("/:id", quoteHandler.Update)
	quotes.Post("/:id/send", quoteHandler.Send)
	quotes.Post("/:id/accept", quoteHandler.Accept)
	quotes.Post("/:id/reject", quoteHandler.Reject)
	quotes.Post("/:id/convert", quoteHandler.Convert)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DocumentUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Post("/:id/finalize", invoiceHandler.Finalize)
	invoices.Post("/:id/void", adminOnly, invoiceHandler.Void)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Payments
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/", paymentHandler.List)
	payments.Get("/:id", paymentHandler.Get)
	payments.Delete("/:id", adminOnly, paymentHandler.Delete)

	// Reports
	reportGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.AgingUC, deps.DashboardUC)
	reportGroup.Get("/aging", reportHandler.Aging)
	reportGroup.Get("/dashboard", reportHandler.Dashboard)
}
