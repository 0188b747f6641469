package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/snowva/business-hub/internal/domain/billing"
	"github.com/snowva/business-hub/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestComputeTotals(t *testing.T) {
	lines := []entity.LineItem{
		{LineTotal: dec("900.00")},  // 2 x 450
		{LineTotal: dec("599.00")},
	}
	got := billing.ComputeTotals(lines, dec("99.00"), dec("120.00"))

	assert.True(t, got.Subtotal.Equal(dec("1499.00")), "subtotal %s", got.Subtotal)
	assert.True(t, got.Total.Equal(dec("1520.00")), "total %s", got.Total)
	// VAT inclusive at 15%: 1520 * 15/115 = 198.26
	assert.True(t, got.VATAmount.Equal(dec("198.26")), "vat %s", got.VATAmount)
}

func TestComputeTotals_Empty(t *testing.T) {
	got := billing.ComputeTotals(nil, decimal.Zero, decimal.Zero)
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.Total.IsZero())
	assert.True(t, got.VATAmount.IsZero())
}

func TestLineTotal_RoundsToCents(t *testing.T) {
	got := billing.LineTotal(dec("3"), dec("33.333"))
	assert.True(t, got.Equal(dec("100.00")), "got %s", got)
}

func TestStatusForAllocation(t *testing.T) {
	total := dec("1000.00")

	cases := []struct {
		name      string
		status    string
		allocated decimal.Decimal
		want      string
	}{
		{"no allocations stays finalized", entity.InvoiceStatusFinalized, decimal.Zero, entity.InvoiceStatusFinalized},
		{"partial allocation", entity.InvoiceStatusFinalized, dec("400.00"), entity.InvoiceStatusPartiallyPaid},
		{"full allocation", entity.InvoiceStatusPartiallyPaid, dec("1000.00"), entity.InvoiceStatusPaid},
		{"payment removed rolls back", entity.InvoiceStatusPaid, decimal.Zero, entity.InvoiceStatusFinalized},
		{"draft untouched", entity.InvoiceStatusDraft, dec("400.00"), entity.InvoiceStatusDraft},
		{"void untouched", entity.InvoiceStatusVoid, dec("400.00"), entity.InvoiceStatusVoid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, billing.StatusForAllocation(tc.status, total, tc.allocated))
		})
	}
}

// A zero-total invoice is considered settled as soon as it is finalized.
func TestStatusForAllocation_ZeroTotal(t *testing.T) {
	got := billing.StatusForAllocation(entity.InvoiceStatusFinalized, decimal.Zero, decimal.Zero)
	assert.Equal(t, entity.InvoiceStatusPaid, got)
}
