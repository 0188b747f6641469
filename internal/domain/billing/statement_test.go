package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowva/business-hub/internal/domain/billing"
)

func TestFoldStatement_RunningBalance(t *testing.T) {
	lines := []billing.StatementLine{
		{Date: date(2024, 3, 10), Kind: billing.EntryPayment, Reference: "EFT-881", Credit: dec("500.00")},
		{Date: date(2024, 3, 1), Kind: billing.EntryInvoice, Reference: "INV-000101", Debit: dec("1200.00")},
		{Date: date(2024, 3, 20), Kind: billing.EntryInvoice, Reference: "INV-000107", Debit: dec("300.00")},
	}

	folded, closing := billing.FoldStatement(dec("150.00"), lines)
	require.Len(t, folded, 3)

	// Chronological order
	assert.Equal(t, "INV-000101", folded[0].Reference)
	assert.Equal(t, "EFT-881", folded[1].Reference)
	assert.Equal(t, "INV-000107", folded[2].Reference)

	// Running balances: 150 + 1200 = 1350; - 500 = 850; + 300 = 1150
	assert.True(t, folded[0].Balance.Equal(dec("1350.00")))
	assert.True(t, folded[1].Balance.Equal(dec("850.00")))
	assert.True(t, folded[2].Balance.Equal(dec("1150.00")))
	assert.True(t, closing.Equal(dec("1150.00")))
}

// Same-day activity lists the invoice before the payment that settles it.
func TestFoldStatement_SameDayOrder(t *testing.T) {
	day := date(2024, 4, 2)
	lines := []billing.StatementLine{
		{Date: day, Kind: billing.EntryPayment, Reference: "CASH-1", Credit: dec("200.00")},
		{Date: day, Kind: billing.EntryInvoice, Reference: "INV-000200", Debit: dec("200.00")},
	}

	folded, closing := billing.FoldStatement(decimal.Zero, lines)
	assert.Equal(t, billing.EntryInvoice, folded[0].Kind)
	assert.True(t, closing.IsZero())
}

func TestFoldStatement_Empty(t *testing.T) {
	folded, closing := billing.FoldStatement(dec("75.00"), nil)
	assert.Empty(t, folded)
	assert.True(t, closing.Equal(dec("75.00")))
}
