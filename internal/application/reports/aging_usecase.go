package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/domain"
	"github.com/snowva/business-hub/internal/domain/billing"
	"github.com/snowva/business-hub/internal/domain/repository"
)

// AgingUseCase produces the accounts receivable age analysis. Balances
// are grouped per bill-to account, so branch invoices age under their
// parent company.
type AgingUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
}

// NewAgingUseCase builds the use case.
func NewAgingUseCase(invoiceRepo repository.InvoiceRepository, customerRepo repository.CustomerRepository) *AgingUseCase {
	return &AgingUseCase{invoiceRepo: invoiceRepo, customerRepo: customerRepo}
}

// Report buckets every open invoice balance by days overdue at the
// cut-off date. Fully paid and void invoices never appear.
func (uc *AgingUseCase) Report(ctx context.Context, asOfStr string) (*dto.AgingReportResponse, error) {
	asOf, err := dto.ParseDate(asOfStr)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	rows, err := uc.openBalances(ctx, asOf)
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].CustomerName < rows[j].CustomerName })

	totals := billing.NewAgingRow("", "")
	out := make([]dto.AgingRowResponse, 0, len(rows))
	for _, row := range rows {
		for b := billing.BucketCurrent; b <= billing.Bucket120Plus; b++ {
			totals.Add(b, row.Buckets[b])
		}
		out = append(out, toAgingRowResponse(row))
	}
	return &dto.AgingReportResponse{
		AsOf:   asOf.Format(dto.DateLayout),
		Rows:   out,
		Totals: toAgingRowResponse(totals),
	}, nil
}

// openBalances returns one aging row per bill-to account with an open
// balance at the cut-off date.
func (uc *AgingUseCase) openBalances(ctx context.Context, asOf time.Time) ([]billing.AgingRow, error) {
	invoices, err := uc.invoiceRepo.ListOutstanding(ctx, asOf)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
	}
	allocated, err := uc.invoiceRepo.AllocatedAmounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	byAccount := make(map[string]*billing.AgingRow)
	order := make([]string, 0)
	for _, inv := range invoices {
		balance := billing.Balance(inv.Total, allocated[inv.ID])
		if balance.LessThanOrEqual(decimal.Zero) {
			continue
		}
		row, ok := byAccount[inv.BillToCustomerID]
		if !ok {
			name := ""
			if c, err := uc.customerRepo.GetByID(ctx, inv.BillToCustomerID); err == nil && c != nil {
				name = c.Name
			}
			r := billing.NewAgingRow(inv.BillToCustomerID, name)
			row = &r
			byAccount[inv.BillToCustomerID] = row
			order = append(order, inv.BillToCustomerID)
		}
		row.Add(billing.BucketFor(inv.DueDate, asOf), balance)
	}

	rows := make([]billing.AgingRow, 0, len(order))
	for _, id := range order {
		rows = append(rows, *byAccount[id])
	}
	return rows, nil
}

func toAgingRowResponse(r billing.AgingRow) dto.AgingRowResponse {
	return dto.AgingRowResponse{
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		Current:      r.Buckets[billing.BucketCurrent],
		Days30:       r.Buckets[billing.Bucket30],
		Days60:       r.Buckets[billing.Bucket60],
		Days90:       r.Buckets[billing.Bucket90],
		Days120:      r.Buckets[billing.Bucket120],
		Days120Plus:  r.Buckets[billing.Bucket120Plus],
		Total:        r.Total,
	}
}
