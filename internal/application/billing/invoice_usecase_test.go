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

func newInvoiceUseCase(s *testutil.Store) *InvoiceUseCase {
	repos := s.Repos()
	return NewInvoiceUseCase(repos.Invoices, repos.Customers, repos.Products, &testutil.TxRunner{S: s})
}

func TestInvoiceCreateDraftWithChargesAndDiscount(t *testing.T) {
	s := seedStore()
	uc := newInvoiceUseCase(s)

	resp, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID:     "cust-1",
		IssueDate:      "2025-03-10",
		PONumber:       "PO-9912",
		DiscountAmount: dec("100"),
		ShippingAmount: dec("150"),
		Items: []dto.DocumentItemRequest{
			{ProductID: "prod-1", Quantity: dec("2")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusDraft, resp.Status)
	assert.Empty(t, resp.Number)
	assert.Equal(t, "2025-04-09", resp.DueDate)
	assert.True(t, resp.Subtotal.Equal(dec("1520")))
	assert.True(t, resp.Total.Equal(dec("1570")), "total %s", resp.Total)
	assert.True(t, resp.AmountPaid.IsZero())
}

func TestInvoiceCreateUsesCustomerOverride(t *testing.T) {
	s := seedStore()
	s.Overrides = append(s.Overrides, entity.CustomerPrice{
		ID:            "ov-1",
		CustomerID:    "cust-1",
		ProductID:     "prod-1",
		UnitPrice:     dec("720"),
		EffectiveFrom: date(2024, 6, 1),
	})
	uc := newInvoiceUseCase(s)

	resp, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		IssueDate:  "2025-03-10",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("1")}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec("720")))
}

func TestInvoiceFinalizeAssignsNumber(t *testing.T) {
	s := seedStore()
	uc := newInvoiceUseCase(s)

	draft, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("1")}},
	})
	require.NoError(t, err)

	resp, err := uc.Finalize(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", resp.Number)
	assert.Equal(t, entity.InvoiceStatusFinalized, resp.Status)

	// immutable once finalized
	_, err = uc.Update(context.Background(), draft.ID, dto.UpdateInvoiceRequest{
		Items: []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("5")}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Finalize(context.Background(), draft.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestInvoiceFinalizeZeroTotalSettlesImmediately(t *testing.T) {
	s := seedStore()
	uc := newInvoiceUseCase(s)

	free := dec("0")
	draft, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: &free}},
	})
	require.NoError(t, err)

	resp, err := uc.Finalize(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, resp.Status)
	assert.True(t, resp.Balance.IsZero())
}

func TestInvoiceUpdateRepricesLines(t *testing.T) {
	s := seedStore()
	uc := newInvoiceUseCase(s)

	draft, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("1")}},
	})
	require.NoError(t, err)

	resp, err := uc.Update(context.Background(), draft.ID, dto.UpdateInvoiceRequest{
		Items: []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("4")}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec("3040")))
	require.Len(t, resp.Items, 1)
}

func TestInvoiceVoidBlockedByAllocations(t *testing.T) {
	s := seedStore()
	uc := newInvoiceUseCase(s)

	draft, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("1")}},
	})
	require.NoError(t, err)
	_, err = uc.Finalize(context.Background(), draft.ID)
	require.NoError(t, err)

	s.Allocations = append(s.Allocations, entity.Allocation{
		ID: "al-1", PaymentID: "pay-1", InvoiceID: draft.ID, Amount: dec("100"),
	})
	_, err = uc.Void(context.Background(), draft.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	s.Allocations = nil
	resp, err := uc.Void(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusVoid, resp.Status)
	assert.True(t, resp.Balance.IsZero())
}

func TestInvoiceGetReportsBalance(t *testing.T) {
	s := seedStore()
	uc := newInvoiceUseCase(s)

	draft, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Items:      []dto.DocumentItemRequest{{ProductID: "prod-1", Quantity: dec("2")}},
	})
	require.NoError(t, err)
	_, err = uc.Finalize(context.Background(), draft.ID)
	require.NoError(t, err)

	s.Allocations = append(s.Allocations, entity.Allocation{
		ID: "al-1", PaymentID: "pay-1", InvoiceID: draft.ID, Amount: dec("520"),
	})

	resp, err := uc.Get(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.True(t, resp.AmountPaid.Equal(dec("520")))
	assert.True(t, resp.Balance.Equal(dec("1000")))
}
