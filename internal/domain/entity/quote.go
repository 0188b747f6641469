package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote lifecycle. Accepted quotes can be converted once; conversion
// stamps the quote "invoiced" and records the created invoice's ID.
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
	QuoteStatusInvoiced = "invoiced"
)

// Quote is the header of a customer quotation.
type Quote struct {
	ID         string
	Number     string // QUO-000123
	CustomerID string
	IssueDate  time.Time
	ValidUntil time.Time
	Status     string
	Subtotal   decimal.Decimal
	VATAmount  decimal.Decimal
	Total      decimal.Decimal
	Notes      string
	InvoiceID  string // set once converted
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
