package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice lifecycle. Draft invoices are editable; finalizing locks the
// lines and assigns the number. partially_paid and paid are derived from
// payment allocations. Void invoices keep their number but carry no value.
const (
	InvoiceStatusDraft         = "draft"
	InvoiceStatusFinalized     = "finalized"
	InvoiceStatusPartiallyPaid = "partially_paid"
	InvoiceStatusPaid          = "paid"
	InvoiceStatusVoid          = "void"
)

// Invoice is the header of a customer invoice.
type Invoice struct {
	ID               string
	Number           string // INV-000123, assigned on finalize
	CustomerID       string
	BillToCustomerID string // parent account when the customer bills through head office
	IssueDate        time.Time
	DueDate          time.Time // issue date + bill-to account's payment terms
	Status           string
	PONumber         string
	Subtotal         decimal.Decimal // sum of line totals
	VATAmount        decimal.Decimal // informational; prices are VAT inclusive
	DiscountAmount   decimal.Decimal
	ShippingAmount   decimal.Decimal // courier charge
	Total            decimal.Decimal // subtotal - discount + shipping
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LineItem is one line of a quote or an invoice. ParentID refers to the
// owning document.
type LineItem struct {
	ID          string
	ParentID    string
	ProductID   string
	Description string // product name snapshot at document time
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}
