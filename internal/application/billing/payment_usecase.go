package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/domain"
	domainbilling "github.com/snowva/business-hub/internal/domain/billing"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/domain/repository"
)

// PaymentUseCase records payments against a bill-to account and keeps
// invoice statuses in step with their allocations.
type PaymentUseCase struct {
	paymentRepo  repository.PaymentRepository
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	txRunner     TxRunner
}

// NewPaymentUseCase builds the use case.
func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	txRunner TxRunner,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo:  paymentRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		txRunner:     txRunner,
	}
}

// Create records a payment and applies its allocations atomically.
// The payment lands on the bill-to account: paying in a branch's name
// credits the head office it bills through, so the money shows up on
// the same statement as the invoices it settles. Every allocation must
// target a payable invoice on that account, stay within the invoice
// balance, and the allocation sum must not exceed the payment amount.
func (uc *PaymentUseCase) Create(ctx context.Context, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
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
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	paymentDate, err := dto.ParseDate(in.PaymentDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if paymentDate.IsZero() {
		paymentDate = todayUTC()
	}

	payment := &entity.Payment{
		ID:          uuid.New().String(),
		CustomerID:  billTo.ID,
		PaymentDate: paymentDate,
		Amount:      in.Amount,
		Method:      in.Method,
		Reference:   in.Reference,
		Notes:       in.Notes,
		CreatedAt:   time.Now().UTC(),
	}

	allocs := make([]entity.Allocation, 0, len(in.Allocations))
	err = uc.txRunner.Run(ctx, func(repos repository.Set) error {
		if err := repos.Payments.Create(ctx, payment); err != nil {
			return err
		}
		allocatedSum := decimal.Zero
		seen := make(map[string]bool, len(in.Allocations))
		for _, a := range in.Allocations {
			if a.Amount.LessThanOrEqual(decimal.Zero) || seen[a.InvoiceID] {
				return domain.ErrInvalidInput
			}
			seen[a.InvoiceID] = true
			// Lock the row so concurrent payments cannot both read the
			// same allocated total and jointly overshoot the invoice.
			invoice, err := repos.Invoices.GetByIDForUpdate(ctx, a.InvoiceID)
			if err != nil {
				return err
			}
			if invoice == nil {
				return domain.ErrNotFound
			}
			if invoice.BillToCustomerID != billTo.ID {
				return domain.ErrInvalidInput
			}
			if invoice.Status == entity.InvoiceStatusDraft || invoice.Status == entity.InvoiceStatusVoid {
				return domain.ErrConflict
			}
			already, err := repos.Invoices.AllocatedAmount(ctx, invoice.ID)
			if err != nil {
				return err
			}
			if a.Amount.GreaterThan(invoice.Total.Sub(already)) {
				return domain.ErrOverAllocation
			}
			alloc := entity.Allocation{
				ID:        uuid.New().String(),
				PaymentID: payment.ID,
				InvoiceID: invoice.ID,
				Amount:    a.Amount,
			}
			if err := repos.Payments.CreateAllocation(ctx, &alloc); err != nil {
				return err
			}
			allocs = append(allocs, alloc)
			allocatedSum = allocatedSum.Add(a.Amount)

			next := domainbilling.StatusForAllocation(invoice.Status, invoice.Total, already.Add(a.Amount))
			if next != invoice.Status {
				if err := repos.Invoices.UpdateStatus(ctx, invoice.ID, next); err != nil {
					return err
				}
			}
		}
		if allocatedSum.GreaterThan(payment.Amount) {
			return domain.ErrOverAllocation
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, payment, allocs)
}

// Get returns a payment with its allocations.
func (uc *PaymentUseCase) Get(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	allocs, err := uc.paymentRepo.ListAllocations(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, payment, allocs)
}

// List pages payments, optionally for one account.
func (uc *PaymentUseCase) List(ctx context.Context, customerID string, page dto.PageRequest) ([]*dto.PaymentResponse, error) {
	page.DefaultPage()
	list, err := uc.paymentRepo.List(ctx, customerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		allocs, err := uc.paymentRepo.ListAllocations(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		resp, err := uc.toResponse(ctx, p, allocs)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Delete reverses a payment. Allocations are removed and the affected
// invoices drop back to the status their remaining allocations imply.
func (uc *PaymentUseCase) Delete(ctx context.Context, id string) error {
	payment, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotFound
	}
	allocs, err := uc.paymentRepo.ListAllocations(ctx, id)
	if err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(repos repository.Set) error {
		if err := repos.Payments.Delete(ctx, id); err != nil {
			return err
		}
		for _, a := range allocs {
			invoice, err := repos.Invoices.GetByIDForUpdate(ctx, a.InvoiceID)
			if err != nil {
				return err
			}
			if invoice == nil {
				continue
			}
			remaining, err := repos.Invoices.AllocatedAmount(ctx, invoice.ID)
			if err != nil {
				return err
			}
			next := domainbilling.StatusForAllocation(invoice.Status, invoice.Total, remaining)
			if next != invoice.Status {
				if err := repos.Invoices.UpdateStatus(ctx, invoice.ID, next); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (uc *PaymentUseCase) toResponse(ctx context.Context, p *entity.Payment, allocs []entity.Allocation) (*dto.PaymentResponse, error) {
	allocated := decimal.Zero
	out := make([]dto.AllocationResponse, 0, len(allocs))
	for _, a := range allocs {
		allocated = allocated.Add(a.Amount)
		number := ""
		if invoice, err := uc.invoiceRepo.GetByID(ctx, a.InvoiceID); err == nil && invoice != nil {
			number = invoice.Number
		}
		out = append(out, dto.AllocationResponse{
			InvoiceID:     a.InvoiceID,
			InvoiceNumber: number,
			Amount:        a.Amount,
		})
	}
	return &dto.PaymentResponse{
		ID:          p.ID,
		CustomerID:  p.CustomerID,
		PaymentDate: p.PaymentDate.Format(dto.DateLayout),
		Amount:      p.Amount,
		Method:      p.Method,
		Reference:   p.Reference,
		Notes:       p.Notes,
		Allocated:   allocated,
		Unallocated: p.Amount.Sub(allocated),
		Allocations: out,
	}, nil
}
