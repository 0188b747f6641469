package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/domain"
	domainbilling "github.com/snowva/business-hub/internal/domain/billing"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/domain/repository"
)

// StatementUseCase builds account statements. A statement is always
// rendered for the bill-to account, so branch activity rolls up into
// the parent company.
type StatementUseCase struct {
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
}

// NewStatementUseCase builds the use case.
func NewStatementUseCase(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *StatementUseCase {
	return &StatementUseCase{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
	}
}

// statementData is the assembled statement before presentation.
type statementData struct {
	Account *entity.Customer
	From    time.Time
	To      time.Time
	Opening decimal.Decimal
	Lines   []domainbilling.StatementLine
	Closing decimal.Decimal
}

// Get returns the statement for the given customer's bill-to account,
// covering the inclusive date window [from, to].
func (uc *StatementUseCase) Get(ctx context.Context, customerID, fromStr, toStr string) (*dto.StatementResponse, error) {
	data, err := uc.build(ctx, customerID, fromStr, toStr)
	if err != nil {
		return nil, err
	}
	lines := make([]dto.StatementLineResponse, 0, len(data.Lines))
	for _, l := range data.Lines {
		lines = append(lines, dto.StatementLineResponse{
			Date:      l.Date.Format(dto.DateLayout),
			Kind:      l.Kind,
			Reference: l.Reference,
			Detail:    l.Detail,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Balance:   l.Balance,
		})
	}
	return &dto.StatementResponse{
		CustomerID:     data.Account.ID,
		CustomerName:   data.Account.Name,
		From:           data.From.Format(dto.DateLayout),
		To:             data.To.Format(dto.DateLayout),
		OpeningBalance: data.Opening,
		Lines:          lines,
		ClosingBalance: data.Closing,
	}, nil
}

func (uc *StatementUseCase) build(ctx context.Context, customerID, fromStr, toStr string) (*statementData, error) {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	account, err := resolveBillTo(ctx, uc.customerRepo, customer)
	if err != nil {
		return nil, err
	}

	to, err := dto.ParseDate(toStr)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if to.IsZero() {
		to = todayUTC()
	}
	from, err := dto.ParseDate(fromStr)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if from.IsZero() {
		from = to.AddDate(0, -1, 0)
	}
	if from.After(to) {
		return nil, domain.ErrInvalidInput
	}

	opening, err := uc.openingBalance(ctx, account.ID, from)
	if err != nil {
		return nil, err
	}

	invoices, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{
		BillToCustomerID: account.ID,
		From:             from,
		To:               to,
	})
	if err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.ListByCustomerBetween(ctx, account.ID, from, to)
	if err != nil {
		return nil, err
	}

	lines := make([]domainbilling.StatementLine, 0, len(invoices)+len(payments))
	for _, inv := range invoices {
		if inv.Status == entity.InvoiceStatusDraft || inv.Status == entity.InvoiceStatusVoid {
			continue
		}
		detail := "Tax invoice"
		if inv.CustomerID != account.ID {
			if branch, err := uc.customerRepo.GetByID(ctx, inv.CustomerID); err == nil && branch != nil {
				detail = fmt.Sprintf("Tax invoice (%s)", branch.Name)
			}
		}
		lines = append(lines, domainbilling.StatementLine{
			Date:      inv.IssueDate,
			Kind:      domainbilling.EntryInvoice,
			Reference: inv.Number,
			Detail:    detail,
			Debit:     inv.Total,
		})
	}
	for _, p := range payments {
		ref := p.Reference
		if ref == "" {
			ref = p.Method
		}
		lines = append(lines, domainbilling.StatementLine{
			Date:      p.PaymentDate,
			Kind:      domainbilling.EntryPayment,
			Reference: ref,
			Detail:    fmt.Sprintf("Payment received (%s)", p.Method),
			Credit:    p.Amount,
		})
	}

	folded, closing := domainbilling.FoldStatement(opening, lines)
	return &statementData{
		Account: account,
		From:    from,
		To:      to,
		Opening: opening,
		Lines:   folded,
		Closing: closing,
	}, nil
}

// openingBalance sums activity strictly before the window start.
func (uc *StatementUseCase) openingBalance(ctx context.Context, accountID string, from time.Time) (decimal.Decimal, error) {
	cutoff := from.AddDate(0, 0, -1)
	invoices, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{
		BillToCustomerID: accountID,
		To:               cutoff,
	})
	if err != nil {
		return decimal.Zero, err
	}
	balance := decimal.Zero
	for _, inv := range invoices {
		if inv.Status == entity.InvoiceStatusDraft || inv.Status == entity.InvoiceStatusVoid {
			continue
		}
		balance = balance.Add(inv.Total)
	}
	payments, err := uc.paymentRepo.ListByCustomerBetween(ctx, accountID, time.Time{}, cutoff)
	if err != nil {
		return decimal.Zero, err
	}
	for _, p := range payments {
		balance = balance.Sub(p.Amount)
	}
	return balance, nil
}
