package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer types. Retail customers buy at trade prices; consumers at
// consumer prices. The type keys list-price resolution.
const (
	CustomerTypeConsumer = "consumer"
	CustomerTypeRetail   = "retail"
)

// Billing modes. A branch with BillingModeParent is invoiced and
// statemented through its head office account.
const (
	BillingModeSelf   = "self"
	BillingModeParent = "parent"
)

// Address types.
const (
	AddressTypeBilling  = "billing"
	AddressTypeShipping = "shipping"
)

// Customer represents a customer account.
type Customer struct {
	ID               string
	Name             string
	Type             string // consumer | retail
	Email            string
	Phone            string
	VATNumber        string
	ParentCompanyID  string // head office account; empty for standalone customers
	BillingMode      string // self | parent
	PaymentTermsDays int    // due date offset for invoices, 0 = due on issue
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BillsToParent reports whether invoices for this customer land on the
// parent account.
func (c *Customer) BillsToParent() bool {
	return c.BillingMode == BillingModeParent && c.ParentCompanyID != ""
}

// Address is a postal address attached to a customer. At most one address
// per (customer, type) may be primary.
type Address struct {
	ID         string
	CustomerID string
	Type       string // billing | shipping
	Line1      string
	Line2      string
	City       string
	Province   string
	PostalCode string
	Country    string
	IsPrimary  bool
}

// CustomerPrice is a per-customer override of a product's list price.
// The override in force at a date is the one with the latest EffectiveFrom
// not after that date. History is append-only.
type CustomerPrice struct {
	ID            string
	CustomerID    string
	ProductID     string
	UnitPrice     decimal.Decimal
	EffectiveFrom time.Time
	CreatedAt     time.Time
}
