package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowva/business-hub/internal/application/auth"
	"github.com/snowva/business-hub/internal/application/billing"
	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/application/reports"
	"github.com/snowva/business-hub/internal/application/usecase"
	"github.com/snowva/business-hub/internal/domain/entity"
	apphttp "github.com/snowva/business-hub/internal/interfaces/http"
	"github.com/snowva/business-hub/internal/testutil"
)

// buildAPI wires the full router over the in-memory store, mirroring
// the wiring in cmd/api. PDF generation is not exercised here.
func buildAPI(s *testutil.Store) *fiber.App {
	repos := s.Repos()
	tx := &testutil.TxRunner{S: s}

	statementUC := billing.NewStatementUseCase(repos.Customers, repos.Invoices, repos.Payments)
	deps := apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		CustomerUC:  usecase.NewCustomerUseCase(repos.Customers, repos.Products),
		ProductUC:   usecase.NewProductUseCase(repos.Products),
		QuoteUC:     billing.NewQuoteUseCase(repos.Quotes, repos.Customers, repos.Products, tx),
		InvoiceUC:   billing.NewInvoiceUseCase(repos.Invoices, repos.Customers, repos.Products, tx),
		PaymentUC:   billing.NewPaymentUseCase(repos.Payments, repos.Invoices, repos.Customers, tx),
		StatementUC: statementUC,
		AgingUC:     reports.NewAgingUseCase(repos.Invoices, repos.Customers),
		DashboardUC: reports.NewDashboardUseCase(repos.Invoices, repos.Quotes, repos.Payments, repos.Customers),
		JWTSecret:   testJWTSecret,
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return app
}

func seedCatalogue(s *testutil.Store) {
	now := time.Now().UTC()
	s.Customers["cust-1"] = &entity.Customer{
		ID: "cust-1", Name: "Kloof Trading", Type: entity.CustomerTypeRetail,
		BillingMode: entity.BillingModeSelf, PaymentTermsDays: 30,
	}
	s.Products["prod-1"] = &entity.Product{
		ID: "prod-1", Code: "SNOWVA", Name: "Snowva", Active: true, CreatedAt: now,
	}
	s.ListPrices = append(s.ListPrices, entity.ListPrice{
		ID: "lp-1", ProductID: "prod-1", PriceType: entity.CustomerTypeRetail,
		UnitPrice:     decimal.RequireFromString("760"),
		EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeInvoice(t *testing.T, resp *http.Response) dto.InvoiceResponse {
	t.Helper()
	var out dto.InvoiceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestInvoiceLifecycleOverHTTP(t *testing.T) {
	s := testutil.NewStore()
	seedCatalogue(s)
	app := buildAPI(s)
	token := tokenForRole(t, "staff")

	// Draft from the catalogue price.
	resp := doJSON(t, app, http.MethodPost, "/api/invoices", token, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		IssueDate:  "2025-02-01",
		Items: []dto.DocumentItemRequest{
			{ProductID: "prod-1", Quantity: decimal.RequireFromString("2")},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	inv := decodeInvoice(t, resp)
	assert.Equal(t, "draft", inv.Status)
	assert.Empty(t, inv.Number)
	assert.Equal(t, "1520", inv.Total.String())
	assert.Equal(t, "2025-03-03", inv.DueDate)

	// Finalize assigns the number.
	resp = doJSON(t, app, http.MethodPost, "/api/invoices/"+inv.ID+"/finalize", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	finalized := decodeInvoice(t, resp)
	assert.Equal(t, "INV-000001", finalized.Number)
	assert.Equal(t, "finalized", finalized.Status)

	// Editing a finalized invoice is a conflict.
	resp = doJSON(t, app, http.MethodPut, "/api/invoices/"+inv.ID, token, dto.UpdateInvoiceRequest{
		Items: []dto.DocumentItemRequest{
			{ProductID: "prod-1", Quantity: decimal.RequireFromString("3")},
		},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// A partial payment moves the status along.
	resp = doJSON(t, app, http.MethodPost, "/api/payments", token, dto.CreatePaymentRequest{
		CustomerID: "cust-1",
		Amount:     decimal.RequireFromString("520"),
		Method:     "eft",
		Allocations: []dto.AllocationRequest{
			{InvoiceID: inv.ID, Amount: decimal.RequireFromString("520")},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/invoices/"+inv.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	paid := decodeInvoice(t, resp)
	assert.Equal(t, "partially_paid", paid.Status)
	assert.Equal(t, "520", paid.AmountPaid.String())
	assert.Equal(t, "1000", paid.Balance.String())
}

func TestInvoiceVoidRequiresAdmin(t *testing.T) {
	s := testutil.NewStore()
	seedCatalogue(s)
	app := buildAPI(s)
	staff := tokenForRole(t, "staff")
	admin := tokenForRole(t, "admin")

	resp := doJSON(t, app, http.MethodPost, "/api/invoices", staff, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Items: []dto.DocumentItemRequest{
			{ProductID: "prod-1", Quantity: decimal.RequireFromString("1")},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	inv := decodeInvoice(t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/invoices/"+inv.ID+"/void", staff, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/invoices/"+inv.ID+"/void", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	voided := decodeInvoice(t, resp)
	assert.Equal(t, "void", voided.Status)
}

func TestInvoiceValidationOverHTTP(t *testing.T) {
	s := testutil.NewStore()
	seedCatalogue(s)
	app := buildAPI(s)
	token := tokenForRole(t, "staff")

	// No items.
	resp := doJSON(t, app, http.MethodPost, "/api/invoices", token, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown customer.
	resp = doJSON(t, app, http.MethodPost, "/api/invoices", token, dto.CreateInvoiceRequest{
		CustomerID: "nope",
		Items: []dto.DocumentItemRequest{
			{ProductID: "prod-1", Quantity: decimal.RequireFromString("1")},
		},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// No token at all.
	resp = doJSON(t, app, http.MethodGet, "/api/invoices", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
