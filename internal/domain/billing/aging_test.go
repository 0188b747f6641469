package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/snowva/business-hub/internal/domain/billing"
)

func TestBucketFor(t *testing.T) {
	asOf := date(2024, 8, 31)

	cases := []struct {
		name string
		due  time.Time
		want int
	}{
		{"due in the future", date(2024, 9, 15), billing.BucketCurrent},
		{"due today", asOf, billing.BucketCurrent},
		{"one day overdue", date(2024, 8, 30), billing.Bucket30},
		{"thirty days overdue", date(2024, 8, 1), billing.Bucket30},
		{"thirty one days overdue", date(2024, 7, 31), billing.Bucket60},
		{"sixty one days overdue", date(2024, 7, 1), billing.Bucket90},
		{"ninety one days overdue", date(2024, 6, 1), billing.Bucket120},
		{"far overdue", date(2023, 12, 1), billing.Bucket120Plus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, billing.BucketFor(tc.due, asOf))
		})
	}
}

// Clock time on either date must not shift the bucket.
func TestBucketFor_IgnoresClockTime(t *testing.T) {
	due := time.Date(2024, 8, 1, 23, 59, 0, 0, time.UTC)
	asOf := time.Date(2024, 8, 31, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, billing.Bucket30, billing.BucketFor(due, asOf))
}

func TestAgingRow_Add(t *testing.T) {
	row := billing.NewAgingRow("cust_yuppiechef", "Yuppiechef")
	row.Add(billing.BucketCurrent, dec("1000.00"))
	row.Add(billing.Bucket60, dec("250.00"))
	row.Add(billing.Bucket60, dec("250.00"))

	assert.True(t, row.Buckets[billing.BucketCurrent].Equal(dec("1000.00")))
	assert.True(t, row.Buckets[billing.Bucket60].Equal(dec("500.00")))
	assert.True(t, row.Total.Equal(dec("1500.00")))
}
