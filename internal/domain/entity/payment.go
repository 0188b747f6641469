package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods.
const (
	PaymentMethodEFT   = "eft"
	PaymentMethodCard  = "card"
	PaymentMethodCash  = "cash"
	PaymentMethodOther = "other"
)

// Payment is money received from a customer. The unallocated remainder
// (Amount minus the sum of allocations) is credit on the account.
type Payment struct {
	ID          string
	CustomerID  string
	PaymentDate time.Time
	Amount      decimal.Decimal
	Method      string
	Reference   string
	Notes       string
	CreatedAt   time.Time
}

// Allocation applies part of a payment to one invoice.
type Allocation struct {
	ID        string
	PaymentID string
	InvoiceID string
	Amount    decimal.Decimal
}
