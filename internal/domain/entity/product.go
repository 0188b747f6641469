package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// List price types; they mirror the customer types.
const (
	PriceTypeConsumer = "consumer"
	PriceTypeRetail   = "retail"
)

// Product represents a catalogue item.
type Product struct {
	ID          string
	Code        string // unique short code, e.g. "SNWV"
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListPrice is one time-dated entry in a product's price history.
// Prices are VAT inclusive. History is append-only; repricing a product
// means appending a new entry with a later EffectiveFrom.
type ListPrice struct {
	ID            string
	ProductID     string
	PriceType     string // consumer | retail
	UnitPrice     decimal.Decimal
	EffectiveFrom time.Time
	CreatedAt     time.Time
}
