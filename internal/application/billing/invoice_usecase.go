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

// InvoiceUseCase invoices: draft lifecycle, finalize, void, and listing
// with derived balances.
type InvoiceUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	txRunner     TxRunner
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	txRunner TxRunner,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		txRunner:     txRunner,
	}
}

// resolveBillTo returns the account an invoice is raised against: the
// parent company when the customer bills through head office.
func resolveBillTo(ctx context.Context, repo repository.CustomerRepository, c *entity.Customer) (*entity.Customer, error) {
	if !c.BillsToParent() {
		return c, nil
	}
	parent, err := repo.GetByID(ctx, c.ParentCompanyID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}
	return parent, nil
}

// Create captures a draft invoice. The number is assigned on finalize;
// the due date follows the bill-to account's payment terms.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	billTo, err := resolveBillTo(ctx, uc.customerRepo, customer)
	if err != nil {
		return nil, err
	}
	if in.DiscountAmount.LessThan(decimal.Zero) || in.ShippingAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	issueDate, err := dto.ParseDate(in.IssueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if issueDate.IsZero() {
		issueDate = todayUTC()
	}

	lines, err := buildLines(ctx, uc.customerRepo, uc.productRepo, customer, in.Items, issueDate)
	if err != nil {
		return nil, err
	}
	totals := domainbilling.ComputeTotals(lines, in.DiscountAmount, in.ShippingAmount)
	if totals.Total.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	invoice := &entity.Invoice{
		ID:               uuid.New().String(),
		CustomerID:       customer.ID,
		BillToCustomerID: billTo.ID,
		IssueDate:        issueDate,
		DueDate:          issueDate.AddDate(0, 0, billTo.PaymentTermsDays),
		Status:           entity.InvoiceStatusDraft,
		PONumber:         in.PONumber,
		Subtotal:         totals.Subtotal,
		VATAmount:        totals.VATAmount,
		DiscountAmount:   in.DiscountAmount,
		ShippingAmount:   in.ShippingAmount,
		Total:            totals.Total,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.txRunner.Run(ctx, func(repos repository.Set) error {
		if err := repos.Invoices.Create(ctx, invoice); err != nil {
			return err
		}
		for i := range lines {
			lines[i].ParentID = invoice.ID
			if err := repos.Invoices.CreateLine(ctx, &lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, lines, decimal.Zero), nil
}

// Update rewrites a draft invoice. Finalized invoices are immutable.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.Status != entity.InvoiceStatusDraft {
		return nil, domain.ErrConflict
	}
	customer, err := uc.customerRepo.GetByID(ctx, invoice.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.DiscountAmount.LessThan(decimal.Zero) || in.ShippingAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	lines, err := buildLines(ctx, uc.customerRepo, uc.productRepo, customer, in.Items, invoice.IssueDate)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].ParentID = invoice.ID
	}
	totals := domainbilling.ComputeTotals(lines, in.DiscountAmount, in.ShippingAmount)
	if totals.Total.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	invoice.PONumber = in.PONumber
	invoice.DiscountAmount = in.DiscountAmount
	invoice.ShippingAmount = in.ShippingAmount
	invoice.Notes = in.Notes
	invoice.Subtotal = totals.Subtotal
	invoice.VATAmount = totals.VATAmount
	invoice.Total = totals.Total
	invoice.UpdatedAt = time.Now().UTC()

	err = uc.txRunner.Run(ctx, func(repos repository.Set) error {
		if err := repos.Invoices.ReplaceLines(ctx, invoice.ID, lines); err != nil {
			return err
		}
		return repos.Invoices.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, lines, decimal.Zero), nil
}

// Finalize assigns the invoice number and locks the document. A
// zero-total invoice settles immediately.
func (uc *InvoiceUseCase) Finalize(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.Status != entity.InvoiceStatusDraft {
		return nil, domain.ErrConflict
	}

	err = uc.txRunner.Run(ctx, func(repos repository.Set) error {
		seq, err := repos.Invoices.NextNumber(ctx)
		if err != nil {
			return err
		}
		invoice.Number = fmt.Sprintf("INV-%06d", seq)
		invoice.Status = entity.InvoiceStatusFinalized
		if invoice.Total.IsZero() {
			invoice.Status = entity.InvoiceStatusPaid
		}
		invoice.UpdatedAt = time.Now().UTC()
		return repos.Invoices.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	lines, err := uc.invoiceRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, lines, decimal.Zero), nil
}

// Void cancels an invoice. Only allowed while nothing is allocated
// against it; reverse the payments first otherwise.
func (uc *InvoiceUseCase) Void(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.Status == entity.InvoiceStatusVoid {
		return nil, domain.ErrConflict
	}
	allocated, err := uc.invoiceRepo.AllocatedAmount(ctx, id)
	if err != nil {
		return nil, err
	}
	if allocated.GreaterThan(decimal.Zero) {
		return nil, domain.ErrConflict
	}
	invoice.Status = entity.InvoiceStatusVoid
	invoice.UpdatedAt = time.Now().UTC()
	if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, nil, decimal.Zero), nil
}

// Get returns an invoice with lines and derived payment state.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	allocated, err := uc.invoiceRepo.AllocatedAmount(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, lines, allocated), nil
}

// List pages invoices with computed balances.
func (uc *InvoiceUseCase) List(ctx context.Context, f repository.InvoiceFilter) ([]*dto.InvoiceResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, err := uc.invoiceRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, inv := range list {
		ids = append(ids, inv.ID)
	}
	allocated, err := uc.invoiceRepo.AllocatedAmounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv, nil, allocated[inv.ID]))
	}
	return out, nil
}

func toInvoiceResponse(inv *entity.Invoice, lines []entity.LineItem, allocated decimal.Decimal) *dto.InvoiceResponse {
	balance := domainbilling.Balance(inv.Total, allocated)
	if inv.Status == entity.InvoiceStatusDraft || inv.Status == entity.InvoiceStatusVoid {
		balance = decimal.Zero
	}
	return &dto.InvoiceResponse{
		ID:               inv.ID,
		Number:           inv.Number,
		CustomerID:       inv.CustomerID,
		BillToCustomerID: inv.BillToCustomerID,
		IssueDate:        inv.IssueDate.Format(dto.DateLayout),
		DueDate:          inv.DueDate.Format(dto.DateLayout),
		Status:           inv.Status,
		PONumber:         inv.PONumber,
		Subtotal:         inv.Subtotal,
		VATAmount:        inv.VATAmount,
		DiscountAmount:   inv.DiscountAmount,
		ShippingAmount:   inv.ShippingAmount,
		Total:            inv.Total,
		AmountPaid:       allocated,
		Balance:          balance,
		Notes:            inv.Notes,
		Items:            toLineResponses(lines),
	}
}
