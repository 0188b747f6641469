package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/domain"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/testutil"
)

func newPaymentUseCase(s *testutil.Store) *PaymentUseCase {
	repos := s.Repos()
	return NewPaymentUseCase(repos.Payments, repos.Invoices, repos.Customers, &testutil.TxRunner{S: s})
}

// finalizedInvoice seeds a finalized invoice for cust-1 and returns its id.
func finalizedInvoice(t *testing.T, s *testutil.Store, total string) string {
	t.Helper()
	uc := newInvoiceUseCase(s)
	price := dec(total)
	draft, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: &price}},
	})
	require.NoError(t, err)
	_, err = uc.Finalize(context.Background(), draft.ID)
	require.NoError(t, err)
	return draft.ID
}

func TestPaymentAllocationsDriveInvoiceStatus(t *testing.T) {
	s := seedStore()
	invoiceID := finalizedInvoice(t, s, "1000")
	uc := newPaymentUseCase(s)

	resp, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		CustomerID: "cust-1",
		Amount:     dec("600"),
		Method:     entity.PaymentMethodEFT,
		Reference:  "FNB-10021",
		Allocations: []dto.AllocationRequest{
			{InvoiceID: invoiceID, Amount: dec("600")},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Allocated.Equal(dec("600")))
	assert.True(t, resp.Unallocated.IsZero())
	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, s.Invoices[invoiceID].Status)

	_, err = uc.Create(context.Background(), dto.CreatePaymentRequest{
		CustomerID: "cust-1",
		Amount:     dec("400"),
		Method:     entity.PaymentMethodEFT,
		Allocations: []dto.AllocationRequest{
			{InvoiceID: invoiceID, Amount: dec("400")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, s.Invoices[invoiceID].Status)
}

func TestPaymentOverAllocationRejected(t *testing.T) {
	s := seedStore()
	invoiceID := finalizedInvoice(t, s, "1000")
	uc := newPaymentUseCase(s)

	_, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		CustomerID: "cust-1",
		Amount:     dec("2000"),
		Method:     entity.PaymentMethodEFT,
		Allocations: []dto.AllocationRequest{
			{InvoiceID: invoiceID, Amount: dec("1200")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrOverAllocation)

	// rejected before any allocation is written
	assert.Empty(t, s.Allocations)
	assert.Equal(t, entity.InvoiceStatusFinalized, s.Invoices[invoiceID].Status)
}

func TestPaymentAllocationSumCannotExceedAmount(t *testing.T) {
	s := seedStore()
	a := finalizedInvoice(t, s, "500")
	b := finalizedInvoice(t, s, "500")
	uc := newPaymentUseCase(s)

	_, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		CustomerID: "cust-1",
		Amount:     dec("600"),
		Method:     entity.PaymentMethodEFT,
		Allocations: []dto.AllocationRequest{
			{InvoiceID: a, Amount: dec("500")},
			{InvoiceID: b, Amount: dec("500")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrOverAllocation)
}

func TestPaymentCannotAllocateToDraftOrForeignInvoice(t *testing.T) {
	s := seedStore()
	invUC := newInvoiceUseCase(s)
	draft, err := invUC.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("1")}},
	})
	require.NoError(t, err)
	uc := newPaymentUseCase(s)

	_, err = uc.Create(context.Background(), dto.CreatePaymentRequest{
		CustomerID: "cust-1",
		Amount:     dec("100"),
		Method:     entity.PaymentMethodCash,
		Allocations: []dto.AllocationRequest{
			{InvoiceID: draft.ID, Amount: dec("100")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// an unrelated account cannot settle cust-1's invoices
	s.Customers["other-1"] = &entity.Customer{
		ID:          "other-1",
		Name:        "Berea Hardware",
		Type:        entity.CustomerTypeRetail,
		BillingMode: entity.BillingModeSelf,
	}
	invoiceID := finalizedInvoice(t, s, "100")
	_, err = uc.Create(context.Background(), dto.CreatePaymentRequest{
		CustomerID: "other-1",
		Amount:     dec("100"),
		Method:     entity.PaymentMethodCash,
		Allocations: []dto.AllocationRequest{
			{InvoiceID: invoiceID, Amount: dec("100")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPaymentFromBranchLandsOnParentAccount(t *testing.T) {
	s := seedStore()
	invoiceID := finalizedInvoice(t, s, "1000")
	uc := newPaymentUseCase(s)

	// branch-1 bills through cust-1, so its money belongs to that account
	// and may settle invoices raised against it.
	resp, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		CustomerID:  "branch-1",
		Amount:      dec("500"),
		PaymentDate: "2025-03-15",
		Method:      entity.PaymentMethodEFT,
		Reference:   "FNB-77",
		Allocations: []dto.AllocationRequest{
			{InvoiceID: invoiceID, Amount: dec("500")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "cust-1", resp.CustomerID)
	assert.Equal(t, "cust-1", s.Payments[resp.ID].CustomerID)
	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, s.Invoices[invoiceID].Status)

	// the credit shows up on the account statement, whether it is
	// requested for the branch or for head office directly
	stmt, err := newStatementUseCase(s).Get(context.Background(), "branch-1", "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	var credited bool
	for _, line := range stmt.Lines {
		if line.Reference == "FNB-77" && line.Credit.Equal(dec("500")) {
			credited = true
		}
	}
	assert.True(t, credited, "branch payment missing from statement")
}

func TestPaymentsCannotJointlyOverpayInvoice(t *testing.T) {
	s := seedStore()
	invoiceID := finalizedInvoice(t, s, "1000")
	uc := newPaymentUseCase(s)

	_, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		CustomerID: "cust-1",
		Amount:     dec("600"),
		Method:     entity.PaymentMethodEFT,
		Allocations: []dto.AllocationRequest{
			{InvoiceID: invoiceID, Amount: dec("600")},
		},
	})
	require.NoError(t, err)

	// the second payment sees the balance left by the first, not the
	// original total
	_, err = uc.Create(context.Background(), dto.CreatePaymentRequest{
		CustomerID: "cust-1",
		Amount:     dec("600"),
		Method:     entity.PaymentMethodEFT,
		Allocations: []dto.AllocationRequest{
			{InvoiceID: invoiceID, Amount: dec("600")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrOverAllocation)
	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, s.Invoices[invoiceID].Status)
}

func TestPaymentUnallocatedRemainderIsCredit(t *testing.T) {
	s := seedStore()
	uc := newPaymentUseCase(s)

	resp, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		CustomerID: "cust-1",
		Amount:     dec("250"),
		Method:     entity.PaymentMethodCard,
	})
	require.NoError(t, err)
	assert.True(t, resp.Allocated.IsZero())
	assert.True(t, resp.Unallocated.Equal(dec("250")))
}

func TestPaymentDeleteReversesInvoiceStatus(t *testing.T) {
	s := seedStore()
	invoiceID := finalizedInvoice(t, s, "1000")
	uc := newPaymentUseCase(s)

	resp, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		CustomerID: "cust-1",
		Amount:     dec("1000"),
		Method:     entity.PaymentMethodEFT,
		Allocations: []dto.AllocationRequest{
			{InvoiceID: invoiceID, Amount: dec("1000")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, entity.InvoiceStatusPaid, s.Invoices[invoiceID].Status)

	require.NoError(t, uc.Delete(context.Background(), resp.ID))
	assert.Equal(t, entity.InvoiceStatusFinalized, s.Invoices[invoiceID].Status)
	assert.Empty(t, s.Allocations)

	assert.ErrorIs(t, uc.Delete(context.Background(), resp.ID), domain.ErrNotFound)
}
