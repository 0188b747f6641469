package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Statement entry kinds.
const (
	EntryInvoice = "invoice"
	EntryPayment = "payment"
)

// StatementLine is one movement on a customer statement. Debit increases
// what the customer owes (an invoice), Credit decreases it (a payment).
type StatementLine struct {
	Date      time.Time
	Kind      string // invoice | payment
	Reference string // document number or payment reference
	Detail    string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Balance   decimal.Decimal // running balance after this line
}

// FoldStatement orders lines chronologically (stable on equal dates:
// invoices before payments, then by reference) and assigns running
// balances starting from the opening balance. Returns the ordered lines
// and the closing balance.
func FoldStatement(opening decimal.Decimal, lines []StatementLine) ([]StatementLine, decimal.Decimal) {
	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].Date.Equal(lines[j].Date) {
			return lines[i].Date.Before(lines[j].Date)
		}
		if lines[i].Kind != lines[j].Kind {
			return lines[i].Kind == EntryInvoice
		}
		return lines[i].Reference < lines[j].Reference
	})

	balance := opening
	for i := range lines {
		balance = balance.Add(lines[i].Debit).Sub(lines[i].Credit)
		lines[i].Balance = balance
	}
	return lines, balance
}
