package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/testutil"
)

func newDashboard(s *testutil.Store) *DashboardUseCase {
	repos := s.Repos()
	return NewDashboardUseCase(repos.Invoices, repos.Quotes, repos.Payments, repos.Customers)
}

func TestDashboardSummary(t *testing.T) {
	s := seedBook()
	addInvoice(s, "a1", "acme", date(2025, 3, 1), "1000", "") // issued 2025-02-01, overdue at 2025-03-11
	addInvoice(s, "z1", "zola", date(2025, 4, 10), "700", "") // issued 2025-03-10, current
	s.Invoices["dr"] = &entity.Invoice{
		ID: "dr", CustomerID: "acme", BillToCustomerID: "acme",
		IssueDate: date(2025, 3, 5), Status: entity.InvoiceStatusDraft, Total: dec("99"),
	}
	s.Quotes["q1"] = &entity.Quote{ID: "q1", Status: entity.QuoteStatusDraft}
	s.Quotes["q2"] = &entity.Quote{ID: "q2", Status: entity.QuoteStatusSent}
	s.Payments["p1"] = &entity.Payment{
		ID: "p1", CustomerID: "acme", PaymentDate: date(2025, 3, 2),
		Amount: dec("400"), Method: entity.PaymentMethodEFT,
	}

	uc := newDashboard(s)
	resp, err := uc.Summary(context.Background(), "2025-03-01", "2025-03-11")
	require.NoError(t, err)

	// only z1 was issued inside the window; the draft never counts
	assert.True(t, resp.InvoicedTotal.Equal(dec("700")), "invoiced %s", resp.InvoicedTotal)
	assert.True(t, resp.PaymentsReceived.Equal(dec("400")))
	assert.True(t, resp.OutstandingTotal.Equal(dec("1700")))
	assert.True(t, resp.OverdueTotal.Equal(dec("1000")))
	assert.Equal(t, 1, resp.DraftInvoices)
	assert.Equal(t, 1, resp.DraftQuotes)

	require.Len(t, resp.TopCustomers, 2)
	assert.Equal(t, "Acme Hardware", resp.TopCustomers[0].CustomerName)
	assert.True(t, resp.TopCustomers[0].Outstanding.Equal(dec("1000")))
}

func TestDashboardRejectsInvertedWindow(t *testing.T) {
	uc := newDashboard(seedBook())
	_, err := uc.Summary(context.Background(), "2025-04-01", "2025-03-01")
	assert.Error(t, err)
}
