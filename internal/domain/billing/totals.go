package billing

import (
	"github.com/shopspring/decimal"

	"github.com/snowva/business-hub/internal/domain/entity"
)

// VATRate is the South African VAT rate. Prices are VAT inclusive; the
// VAT amount on documents is informational, derived as total * 15/115.
var VATRate = decimal.NewFromFloat(0.15)

var one = decimal.NewFromInt(1)

// LineTotal computes quantity * unit price, rounded to cents.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// Totals are the derived money fields of a quote or invoice.
type Totals struct {
	Subtotal  decimal.Decimal
	VATAmount decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals derives document totals from its lines plus any
// document-level discount and shipping charge.
//
//	Subtotal = sum(line totals)
//	Total    = Subtotal - discount + shipping
//	VAT      = Total * rate/(1+rate)   (inclusive)
func ComputeTotals(lines []entity.LineItem, discount, shipping decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal)
	}
	total := subtotal.Sub(discount).Add(shipping)
	vat := total.Mul(VATRate).Div(one.Add(VATRate)).Round(2)
	return Totals{Subtotal: subtotal, VATAmount: vat, Total: total}
}

// Balance is the amount still owed on an invoice.
func Balance(total, allocated decimal.Decimal) decimal.Decimal {
	return total.Sub(allocated)
}

// StatusForAllocation derives an invoice's payment status from its total
// and the sum already allocated to it. Draft and void invoices keep their
// status; a zero-total invoice is paid the moment it is finalized.
func StatusForAllocation(status string, total, allocated decimal.Decimal) string {
	if status == entity.InvoiceStatusDraft || status == entity.InvoiceStatusVoid {
		return status
	}
	switch {
	case allocated.GreaterThanOrEqual(total):
		return entity.InvoiceStatusPaid
	case allocated.GreaterThan(decimal.Zero):
		return entity.InvoiceStatusPartiallyPaid
	default:
		return entity.InvoiceStatusFinalized
	}
}
