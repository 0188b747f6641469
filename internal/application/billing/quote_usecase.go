package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/domain"
	domainbilling "github.com/snowva/business-hub/internal/domain/billing"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/domain/repository"
)

// Default quote validity window.
const defaultQuoteValidityDays = 30

// QuoteUseCase quotations: create, edit while draft, send, accept or
// reject, and convert an accepted quote into a draft invoice.
type QuoteUseCase struct {
	quoteRepo    repository.QuoteRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	txRunner     TxRunner
}

// NewQuoteUseCase builds the use case.
func NewQuoteUseCase(
	quoteRepo repository.QuoteRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	txRunner TxRunner,
) *QuoteUseCase {
	return &QuoteUseCase{
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		txRunner:     txRunner,
	}
}

// Create captures a draft quote. Lines are priced through the customer's
// overrides and list prices unless the request names explicit prices.
func (uc *QuoteUseCase) Create(ctx context.Context, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	issueDate, err := dto.ParseDate(in.IssueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if issueDate.IsZero() {
		issueDate = todayUTC()
	}
	validUntil, err := dto.ParseDate(in.ValidUntil)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if validUntil.IsZero() {
		validUntil = issueDate.AddDate(0, 0, defaultQuoteValidityDays)
	}
	if validUntil.Before(issueDate) {
		return nil, domain.ErrInvalidInput
	}

	lines, err := buildLines(ctx, uc.customerRepo, uc.productRepo, customer, in.Items, issueDate)
	if err != nil {
		return nil, err
	}
	totals := domainbilling.ComputeTotals(lines, decimal.Zero, decimal.Zero)

	now := time.Now().UTC()
	quote := &entity.Quote{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		IssueDate:  issueDate,
		ValidUntil: validUntil,
		Status:     entity.QuoteStatusDraft,
		Subtotal:   totals.Subtotal,
		VATAmount:  totals.VATAmount,
		Total:      totals.Total,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(repos repository.Set) error {
		seq, err := repos.Quotes.NextNumber(ctx)
		if err != nil {
			return err
		}
		quote.Number = fmt.Sprintf("QUO-%06d", seq)
		if err := repos.Quotes.Create(ctx, quote); err != nil {
			return err
		}
		for i := range lines {
			lines[i].ParentID = quote.ID
			if err := repos.Quotes.CreateLine(ctx, &lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, lines), nil
}

// Update rewrites a draft quote's lines, validity and notes.
func (uc *QuoteUseCase) Update(ctx context.Context, id string, in dto.UpdateQuoteRequest) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if quote.Status != entity.QuoteStatusDraft {
		return nil, domain.ErrConflict
	}
	customer, err := uc.customerRepo.GetByID(ctx, quote.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}

	if in.ValidUntil != "" {
		validUntil, err := dto.ParseDate(in.ValidUntil)
		if err != nil || validUntil.Before(quote.IssueDate) {
			return nil, domain.ErrInvalidInput
		}
		quote.ValidUntil = validUntil
	}
	quote.Notes = in.Notes

	lines, err := buildLines(ctx, uc.customerRepo, uc.productRepo, customer, in.Items, quote.IssueDate)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].ParentID = quote.ID
	}
	totals := domainbilling.ComputeTotals(lines, decimal.Zero, decimal.Zero)
	quote.Subtotal = totals.Subtotal
	quote.VATAmount = totals.VATAmount
	quote.Total = totals.Total
	quote.UpdatedAt = time.Now().UTC()

	err = uc.txRunner.Run(ctx, func(repos repository.Set) error {
		if err := repos.Quotes.ReplaceLines(ctx, quote.ID, lines); err != nil {
			return err
		}
		return repos.Quotes.Update(ctx, quote)
	})
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, lines), nil
}

// Get returns a quote with its lines.
func (uc *QuoteUseCase) Get(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.quoteRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, lines), nil
}

// List pages quotes with optional customer and status filters.
func (uc *QuoteUseCase) List(ctx context.Context, customerID, status string, page dto.PageRequest) ([]*dto.QuoteResponse, error) {
	page.DefaultPage()
	list, err := uc.quoteRepo.List(ctx, customerID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, toQuoteResponse(q, nil))
	}
	return out, nil
}

// Send marks a draft quote as sent to the customer.
func (uc *QuoteUseCase) Send(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	return uc.transition(ctx, id, entity.QuoteStatusSent, entity.QuoteStatusDraft)
}

// Accept marks a sent quote accepted. Expired quotes cannot be accepted.
func (uc *QuoteUseCase) Accept(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if quote.ValidUntil.Before(todayUTC()) {
		return nil, domain.ErrConflict
	}
	return uc.transition(ctx, id, entity.QuoteStatusAccepted, entity.QuoteStatusDraft, entity.QuoteStatusSent)
}

// Reject marks a draft or sent quote rejected.
func (uc *QuoteUseCase) Reject(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	return uc.transition(ctx, id, entity.QuoteStatusRejected, entity.QuoteStatusDraft, entity.QuoteStatusSent)
}

func (uc *QuoteUseCase) transition(ctx context.Context, id, to string, from ...string) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	allowed := false
	for _, s := range from {
		if quote.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domain.ErrConflict
	}
	quote.Status = to
	quote.UpdatedAt = time.Now().UTC()
	if err := uc.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, nil), nil
}

// Convert turns an accepted quote into a draft invoice, copying its
// lines, and stamps the quote invoiced. One transaction: both documents
// change together or not at all.
func (uc *QuoteUseCase) Convert(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	quote, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if quote.Status != entity.QuoteStatusAccepted {
		return nil, domain.ErrConflict
	}
	customer, err := uc.customerRepo.GetByID(ctx, quote.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	billTo, err := resolveBillTo(ctx, uc.customerRepo, customer)
	if err != nil {
		return nil, err
	}
	quoteLines, err := uc.quoteRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	issueDate := todayUTC()
	invoice := &entity.Invoice{
		ID:               uuid.New().String(),
		CustomerID:       customer.ID,
		BillToCustomerID: billTo.ID,
		IssueDate:        issueDate,
		DueDate:          issueDate.AddDate(0, 0, billTo.PaymentTermsDays),
		Status:           entity.InvoiceStatusDraft,
		Subtotal:         quote.Subtotal,
		VATAmount:        quote.VATAmount,
		DiscountAmount:   decimal.Zero,
		ShippingAmount:   decimal.Zero,
		Total:            quote.Total,
		Notes:            fmt.Sprintf("Converted from quote %s", quote.Number),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	invLines := make([]entity.LineItem, len(quoteLines))
	for i, l := range quoteLines {
		invLines[i] = entity.LineItem{
			ID:          uuid.New().String(),
			ParentID:    invoice.ID,
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		}
	}

	err = uc.txRunner.Run(ctx, func(repos repository.Set) error {
		if err := repos.Invoices.Create(ctx, invoice); err != nil {
			return err
		}
		for i := range invLines {
			if err := repos.Invoices.CreateLine(ctx, &invLines[i]); err != nil {
				return err
			}
		}
		quote.Status = entity.QuoteStatusInvoiced
		quote.InvoiceID = invoice.ID
		quote.UpdatedAt = now
		return repos.Quotes.Update(ctx, quote)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, invLines, decimal.Zero), nil
}

func toQuoteResponse(q *entity.Quote, lines []entity.LineItem) *dto.QuoteResponse {
	return &dto.QuoteResponse{
		ID:         q.ID,
		Number:     q.Number,
		CustomerID: q.CustomerID,
		IssueDate:  q.IssueDate.Format(dto.DateLayout),
		ValidUntil: q.ValidUntil.Format(dto.DateLayout),
		Status:     q.Status,
		Subtotal:   q.Subtotal,
		VATAmount:  q.VATAmount,
		Total:      q.Total,
		Notes:      q.Notes,
		InvoiceID:  q.InvoiceID,
		Items:      toLineResponses(lines),
	}
}

// todayUTC returns midnight UTC of the current day.
func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
