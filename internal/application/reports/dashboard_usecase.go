package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/domain"
	"github.com/snowva/business-hub/internal/domain/billing"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/domain/repository"
)

const topCustomerCount = 5

// DashboardUseCase aggregates the landing page numbers: period
// turnover, cash received, open book and the largest debtors.
type DashboardUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	quoteRepo    repository.QuoteRepository
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(
	invoiceRepo repository.InvoiceRepository,
	quoteRepo repository.QuoteRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		invoiceRepo:  invoiceRepo,
		quoteRepo:    quoteRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
	}
}

// Summary returns the dashboard for the inclusive window [from, to].
// The window defaults to the last 30 days ending today.
func (uc *DashboardUseCase) Summary(ctx context.Context, fromStr, toStr string) (*dto.DashboardResponse, error) {
	to, err := dto.ParseDate(toStr)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if to.IsZero() {
		now := time.Now().UTC()
		to = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	from, err := dto.ParseDate(fromStr)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if from.After(to) {
		return nil, domain.ErrInvalidInput
	}

	invoiced := decimal.Zero
	invoices, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		if inv.Status == entity.InvoiceStatusDraft || inv.Status == entity.InvoiceStatusVoid {
			continue
		}
		invoiced = invoiced.Add(inv.Total)
	}

	received := decimal.Zero
	payments, err := uc.paymentRepo.ListByCustomerBetween(ctx, "", from, to)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		received = received.Add(p.Amount)
	}

	outstanding, overdue, top, err := uc.openBook(ctx, to)
	if err != nil {
		return nil, err
	}

	draftInvoices, err := uc.invoiceRepo.CountByStatus(ctx, entity.InvoiceStatusDraft)
	if err != nil {
		return nil, err
	}
	draftQuotes, err := uc.quoteRepo.CountByStatus(ctx, entity.QuoteStatusDraft)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		From:             from.Format(dto.DateLayout),
		To:               to.Format(dto.DateLayout),
		InvoicedTotal:    invoiced,
		PaymentsReceived: received,
		OutstandingTotal: outstanding,
		OverdueTotal:     overdue,
		DraftInvoices:    draftInvoices,
		DraftQuotes:      draftQuotes,
		TopCustomers:     top,
	}, nil
}

// openBook totals open invoice balances at asOf and ranks the bill-to
// accounts carrying them.
func (uc *DashboardUseCase) openBook(ctx context.Context, asOf time.Time) (outstanding, overdue decimal.Decimal, top []dto.CustomerBalanceResponse, err error) {
	outstanding, overdue = decimal.Zero, decimal.Zero
	invoices, err := uc.invoiceRepo.ListOutstanding(ctx, asOf)
	if err != nil {
		return outstanding, overdue, nil, err
	}
	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
	}
	allocated, err := uc.invoiceRepo.AllocatedAmounts(ctx, ids)
	if err != nil {
		return outstanding, overdue, nil, err
	}

	perAccount := make(map[string]decimal.Decimal)
	for _, inv := range invoices {
		balance := billing.Balance(inv.Total, allocated[inv.ID])
		if balance.LessThanOrEqual(decimal.Zero) {
			continue
		}
		outstanding = outstanding.Add(balance)
		if billing.BucketFor(inv.DueDate, asOf) != billing.BucketCurrent {
			overdue = overdue.Add(balance)
		}
		perAccount[inv.BillToCustomerID] = perAccount[inv.BillToCustomerID].Add(balance)
	}

	top = make([]dto.CustomerBalanceResponse, 0, len(perAccount))
	for id, balance := range perAccount {
		name := ""
		if c, err := uc.customerRepo.GetByID(ctx, id); err == nil && c != nil {
			name = c.Name
		}
		top = append(top, dto.CustomerBalanceResponse{CustomerID: id, CustomerName: name, Outstanding: balance})
	}
	sort.Slice(top, func(i, j int) bool {
		if !top[i].Outstanding.Equal(top[j].Outstanding) {
			return top[i].Outstanding.GreaterThan(top[j].Outstanding)
		}
		return top[i].CustomerName < top[j].CustomerName
	})
	if len(top) > topCustomerCount {
		top = top[:topCustomerCount]
	}
	return outstanding, overdue, top, nil
}
