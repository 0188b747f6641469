package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Aging bucket indexes. Current means not yet due at the cut-off date.
const (
	BucketCurrent = iota
	Bucket30      // 1-30 days overdue
	Bucket60      // 31-60
	Bucket90      // 61-90
	Bucket120     // 91-120
	Bucket120Plus // over 120
	bucketCount
)

// BucketLabels in bucket-index order, as shown on the aging report.
var BucketLabels = [bucketCount]string{"Current", "30 Days", "60 Days", "90 Days", "120 Days", "120+ Days"}

// BucketFor places an outstanding balance into its aging bucket given the
// invoice due date and the report cut-off date.
func BucketFor(dueDate, asOf time.Time) int {
	overdue := daysBetween(dueDate, asOf)
	switch {
	case overdue <= 0:
		return BucketCurrent
	case overdue <= 30:
		return Bucket30
	case overdue <= 60:
		return Bucket60
	case overdue <= 90:
		return Bucket90
	case overdue <= 120:
		return Bucket120
	default:
		return Bucket120Plus
	}
}

// daysBetween counts whole calendar days from a to b, ignoring clock time.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// AgingRow is one customer's bucketed outstanding balances.
type AgingRow struct {
	CustomerID   string
	CustomerName string
	Buckets      [bucketCount]decimal.Decimal
	Total        decimal.Decimal
}

// Add accumulates an outstanding balance into the row.
func (r *AgingRow) Add(bucket int, amount decimal.Decimal) {
	r.Buckets[bucket] = r.Buckets[bucket].Add(amount)
	r.Total = r.Total.Add(amount)
}

// NewAgingRow builds an empty row with zeroed buckets (decimal zero, not
// the decimal.Decimal zero value, so JSON marshals as "0").
func NewAgingRow(customerID, name string) AgingRow {
	r := AgingRow{CustomerID: customerID, CustomerName: name, Total: decimal.Zero}
	for i := range r.Buckets {
		r.Buckets[i] = decimal.Zero
	}
	return r
}
