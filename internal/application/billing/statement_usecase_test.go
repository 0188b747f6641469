package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbilling "github.com/snowva/business-hub/internal/domain/billing"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/testutil"
)

func newStatementUseCase(s *testutil.Store) *StatementUseCase {
	repos := s.Repos()
	return NewStatementUseCase(repos.Customers, repos.Invoices, repos.Payments)
}

func TestStatementRunningBalance(t *testing.T) {
	s := seedStore()
	// before the window: one invoice and a partial payment
	s.Invoices["inv-0"] = &entity.Invoice{
		ID: "inv-0", Number: "INV-000001", CustomerID: "cust-1", BillToCustomerID: "cust-1",
		IssueDate: date(2025, 1, 15), DueDate: date(2025, 2, 14),
		Status: entity.InvoiceStatusPartiallyPaid, Total: dec("1000"),
	}
	s.Payments["pay-0"] = &entity.Payment{
		ID: "pay-0", CustomerID: "cust-1", PaymentDate: date(2025, 1, 20),
		Amount: dec("400"), Method: entity.PaymentMethodEFT,
	}
	// inside the window
	s.Invoices["inv-1"] = &entity.Invoice{
		ID: "inv-1", Number: "INV-000002", CustomerID: "cust-1", BillToCustomerID: "cust-1",
		IssueDate: date(2025, 2, 10), DueDate: date(2025, 3, 12),
		Status: entity.InvoiceStatusFinalized, Total: dec("500"),
	}
	s.Payments["pay-1"] = &entity.Payment{
		ID: "pay-1", CustomerID: "cust-1", PaymentDate: date(2025, 2, 20),
		Amount: dec("600"), Method: entity.PaymentMethodEFT, Reference: "FNB-88",
	}

	uc := newStatementUseCase(s)
	resp, err := uc.Get(context.Background(), "cust-1", "2025-02-01", "2025-02-28")
	require.NoError(t, err)

	assert.True(t, resp.OpeningBalance.Equal(dec("600")), "opening %s", resp.OpeningBalance)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, domainbilling.EntryInvoice, resp.Lines[0].Kind)
	assert.True(t, resp.Lines[0].Balance.Equal(dec("1100")))
	assert.Equal(t, "FNB-88", resp.Lines[1].Reference)
	assert.True(t, resp.Lines[1].Balance.Equal(dec("500")))
	assert.True(t, resp.ClosingBalance.Equal(dec("500")))
}

func TestStatementExcludesDraftsAndVoids(t *testing.T) {
	s := seedStore()
	s.Invoices["inv-d"] = &entity.Invoice{
		ID: "inv-d", CustomerID: "cust-1", BillToCustomerID: "cust-1",
		IssueDate: date(2025, 2, 5), Status: entity.InvoiceStatusDraft, Total: dec("999"),
	}
	s.Invoices["inv-v"] = &entity.Invoice{
		ID: "inv-v", Number: "INV-000009", CustomerID: "cust-1", BillToCustomerID: "cust-1",
		IssueDate: date(2025, 2, 6), Status: entity.InvoiceStatusVoid, Total: dec("999"),
	}

	uc := newStatementUseCase(s)
	resp, err := uc.Get(context.Background(), "cust-1", "2025-02-01", "2025-02-28")
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
	assert.True(t, resp.ClosingBalance.IsZero())
}

func TestStatementForBranchRollsUpToParent(t *testing.T) {
	s := seedStore()
	s.Invoices["inv-1"] = &entity.Invoice{
		ID: "inv-1", Number: "INV-000003", CustomerID: "branch-1", BillToCustomerID: "cust-1",
		IssueDate: date(2025, 2, 10), DueDate: date(2025, 3, 12),
		Status: entity.InvoiceStatusFinalized, Total: dec("760"),
	}

	uc := newStatementUseCase(s)
	resp, err := uc.Get(context.Background(), "branch-1", "2025-02-01", "2025-02-28")
	require.NoError(t, err)

	// rendered for the parent account, naming the branch on the line
	assert.Equal(t, "cust-1", resp.CustomerID)
	assert.Equal(t, "Kloof Trading", resp.CustomerName)
	require.Len(t, resp.Lines, 1)
	assert.Contains(t, resp.Lines[0].Detail, "Kloof Trading Umhlanga")
	assert.True(t, resp.ClosingBalance.Equal(dec("760")))
}

func TestStatementRejectsInvertedWindow(t *testing.T) {
	uc := newStatementUseCase(seedStore())
	_, err := uc.Get(context.Background(), "cust-1", "2025-03-01", "2025-02-01")
	assert.Error(t, err)
}
