package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/domain"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/testutil"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedStore returns a store with a retail customer, a branch billing
// through it, and one product with a retail list price of 760.
func seedStore() *testutil.Store {
	s := testutil.NewStore()
	s.Customers["cust-1"] = &entity.Customer{
		ID:               "cust-1",
		Name:             "Kloof Trading",
		Type:             entity.CustomerTypeRetail,
		BillingMode:      entity.BillingModeSelf,
		PaymentTermsDays: 30,
	}
	s.Customers["branch-1"] = &entity.Customer{
		ID:               "branch-1",
		Name:             "Kloof Trading Umhlanga",
		Type:             entity.CustomerTypeRetail,
		ParentCompanyID:  "cust-1",
		BillingMode:      entity.BillingModeParent,
		PaymentTermsDays: 7,
	}
	s.Products["prod-1"] = &entity.Product{
		ID:     "prod-1",
		Code:   "SNOWVA",
		Name:   "Snowva",
		Active: true,
	}
	s.ListPrices = append(s.ListPrices, entity.ListPrice{
		ID:            "lp-1",
		ProductID:     "prod-1",
		PriceType:     entity.PriceTypeRetail,
		UnitPrice:     dec("760"),
		EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	return s
}

func newQuoteUseCase(s *testutil.Store) *QuoteUseCase {
	repos := s.Repos()
	return NewQuoteUseCase(repos.Quotes, repos.Customers, repos.Products, &testutil.TxRunner{S: s})
}

func TestQuoteCreateResolvesPricesAndNumbers(t *testing.T) {
	s := seedStore()
	uc := newQuoteUseCase(s)

	resp, err := uc.Create(context.Background(), dto.CreateQuoteRequest{
		CustomerID: "cust-1",
		IssueDate:  "2025-03-10",
		Items: []dto.DocumentItemRequest{
			{ProductID: "prod-1", Quantity: dec("2")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "QUO-000001", resp.Number)
	assert.Equal(t, entity.QuoteStatusDraft, resp.Status)
	assert.Equal(t, "2025-04-09", resp.ValidUntil)
	assert.True(t, resp.Subtotal.Equal(dec("1520")), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(dec("1520")))
	assert.True(t, resp.VATAmount.Equal(dec("198.26")), "vat %s", resp.VATAmount)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(dec("760")))
	assert.Equal(t, "Snowva", resp.Items[0].Description)
}

func TestQuoteCreateExplicitPriceWins(t *testing.T) {
	s := seedStore()
	uc := newQuoteUseCase(s)

	price := dec("700")
	resp, err := uc.Create(context.Background(), dto.CreateQuoteRequest{
		CustomerID: "cust-1",
		Items: []dto.DocumentItemRequest{
			{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: &price},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec("700")))
}

func TestQuoteCreateUnknownCustomer(t *testing.T) {
	uc := newQuoteUseCase(seedStore())

	_, err := uc.Create(context.Background(), dto.CreateQuoteRequest{
		CustomerID: "nope",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuoteCreateNoPriceForProduct(t *testing.T) {
	s := seedStore()
	s.Products["prod-2"] = &entity.Product{ID: "prod-2", Code: "NEW", Name: "New thing", Active: true}
	uc := newQuoteUseCase(s)

	_, err := uc.Create(context.Background(), dto.CreateQuoteRequest{
		CustomerID: "cust-1",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-2", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNoPrice)
}

func TestQuoteUpdateOnlyWhileDraft(t *testing.T) {
	s := seedStore()
	uc := newQuoteUseCase(s)

	resp, err := uc.Create(context.Background(), dto.CreateQuoteRequest{
		CustomerID: "cust-1",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("1")}},
	})
	require.NoError(t, err)

	_, err = uc.Send(context.Background(), resp.ID)
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), resp.ID, dto.UpdateQuoteRequest{
		Items: []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("3")}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestQuoteAcceptExpired(t *testing.T) {
	s := seedStore()
	uc := newQuoteUseCase(s)

	resp, err := uc.Create(context.Background(), dto.CreateQuoteRequest{
		CustomerID: "cust-1",
		IssueDate:  "2024-01-10",
		ValidUntil: "2024-02-09",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("1")}},
	})
	require.NoError(t, err)

	_, err = uc.Accept(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestQuoteRejectAfterAcceptConflict(t *testing.T) {
	s := seedStore()
	uc := newQuoteUseCase(s)

	resp, err := uc.Create(context.Background(), dto.CreateQuoteRequest{
		CustomerID: "cust-1",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("1")}},
	})
	require.NoError(t, err)

	_, err = uc.Accept(context.Background(), resp.ID)
	require.NoError(t, err)

	_, err = uc.Reject(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestQuoteConvertBillsToParent(t *testing.T) {
	s := seedStore()
	uc := newQuoteUseCase(s)

	quote, err := uc.Create(context.Background(), dto.CreateQuoteRequest{
		CustomerID: "branch-1",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("2")}},
	})
	require.NoError(t, err)
	_, err = uc.Accept(context.Background(), quote.ID)
	require.NoError(t, err)

	invoice, err := uc.Convert(context.Background(), quote.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusDraft, invoice.Status)
	assert.Empty(t, invoice.Number)
	assert.Equal(t, "branch-1", invoice.CustomerID)
	assert.Equal(t, "cust-1", invoice.BillToCustomerID)
	assert.True(t, invoice.Total.Equal(dec("1520")))
	require.Len(t, invoice.Items, 1)

	// due date follows the parent's terms, not the branch's
	issue, _ := time.Parse(dto.DateLayout, invoice.IssueDate)
	due, _ := time.Parse(dto.DateLayout, invoice.DueDate)
	assert.Equal(t, 30*24*time.Hour, due.Sub(issue))

	stored, err := uc.Get(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusInvoiced, stored.Status)
	assert.Equal(t, invoice.ID, stored.InvoiceID)

	// a quote converts once
	_, err = uc.Convert(context.Background(), quote.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
