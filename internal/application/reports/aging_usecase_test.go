package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/testutil"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedBook() *testutil.Store {
	s := testutil.NewStore()
	s.Customers["acme"] = &entity.Customer{ID: "acme", Name: "Acme Hardware", Type: entity.CustomerTypeRetail}
	s.Customers["zola"] = &entity.Customer{ID: "zola", Name: "Zola Gifts", Type: entity.CustomerTypeRetail}
	return s
}

func addInvoice(s *testutil.Store, id, account string, due time.Time, total, allocated string) {
	status := entity.InvoiceStatusFinalized
	if allocated != "" && allocated != "0" {
		status = entity.InvoiceStatusPartiallyPaid
	}
	s.Invoices[id] = &entity.Invoice{
		ID: id, Number: "INV-" + id, CustomerID: account, BillToCustomerID: account,
		IssueDate: due.AddDate(0, -1, 0), DueDate: due,
		Status: status, Total: dec(total),
	}
	if status == entity.InvoiceStatusPartiallyPaid {
		s.Allocations = append(s.Allocations, entity.Allocation{
			ID: "al-" + id, PaymentID: "pay-" + id, InvoiceID: id, Amount: dec(allocated),
		})
	}
}

func TestAgingReportBucketsByDaysOverdue(t *testing.T) {
	s := seedBook()
	addInvoice(s, "a1", "acme", date(2025, 3, 20), "1000", "")  // not yet due
	addInvoice(s, "a2", "acme", date(2025, 2, 20), "500", "")   // 19 days overdue
	addInvoice(s, "a3", "acme", date(2024, 10, 1), "300", "")   // over 120 days
	addInvoice(s, "z1", "zola", date(2025, 1, 10), "800", "300") // 58 days overdue, 500 open

	uc := NewAgingUseCase(s.Repos().Invoices, s.Repos().Customers)
	resp, err := uc.Report(context.Background(), "2025-03-11")
	require.NoError(t, err)

	require.Len(t, resp.Rows, 2)
	acme := resp.Rows[0]
	assert.Equal(t, "Acme Hardware", acme.CustomerName)
	assert.True(t, acme.Current.Equal(dec("1000")))
	assert.True(t, acme.Days30.Equal(dec("500")))
	assert.True(t, acme.Days120Plus.Equal(dec("300")))
	assert.True(t, acme.Total.Equal(dec("1800")))

	zola := resp.Rows[1]
	assert.True(t, zola.Days60.Equal(dec("500")))
	assert.True(t, zola.Total.Equal(dec("500")))

	assert.True(t, resp.Totals.Total.Equal(dec("2300")))
	assert.True(t, resp.Totals.Days30.Equal(dec("500")))
}

func TestAgingReportSkipsSettledInvoices(t *testing.T) {
	s := seedBook()
	addInvoice(s, "a1", "acme", date(2025, 1, 1), "400", "")
	s.Invoices["a1"].Status = entity.InvoiceStatusPaid

	uc := NewAgingUseCase(s.Repos().Invoices, s.Repos().Customers)
	resp, err := uc.Report(context.Background(), "2025-03-11")
	require.NoError(t, err)
	assert.Empty(t, resp.Rows)
	assert.True(t, resp.Totals.Total.IsZero())
}

func TestAgingReportBadDate(t *testing.T) {
	s := seedBook()
	uc := NewAgingUseCase(s.Repos().Invoices, s.Repos().Customers)
	_, err := uc.Report(context.Background(), "11-03-2025")
	assert.Error(t, err)
}
