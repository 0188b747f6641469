// Package money formats rand amounts for documents. Amounts are kept as
// shopspring decimals everywhere; formatting happens only at the edge
// (PDFs, statements).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var za = message.NewPrinter(language.MustParse("en-ZA"))

// FormatZAR renders an amount as "R 1 234,56" using the en-ZA locale.
func FormatZAR(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return za.Sprintf("R %v", number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatPlain renders an amount with two decimals and no currency symbol,
// for CSV-ish output and references.
func FormatPlain(amount decimal.Decimal) string {
	return amount.Round(2).StringFixed(2)
}
