// Package testutil provides in-memory repository implementations for
// use case tests. State lives in an exported Store so tests can seed
// and inspect it directly.
package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/domain/repository"
)

// Store is shared in-memory state for the fake repositories.
type Store struct {
	Customers    map[string]*entity.Customer
	Addresses    map[string]*entity.Address
	Overrides    []entity.CustomerPrice
	Products     map[string]*entity.Product
	ListPrices   []entity.ListPrice
	Quotes       map[string]*entity.Quote
	QuoteLines   map[string][]entity.LineItem
	Invoices     map[string]*entity.Invoice
	InvoiceLines map[string][]entity.LineItem
	Payments     map[string]*entity.Payment
	Allocations  []entity.Allocation
	Users        map[string]*entity.User
	QuoteSeq     int64
	InvoiceSeq   int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		Customers:    make(map[string]*entity.Customer),
		Addresses:    make(map[string]*entity.Address),
		Products:     make(map[string]*entity.Product),
		Quotes:       make(map[string]*entity.Quote),
		QuoteLines:   make(map[string][]entity.LineItem),
		Invoices:     make(map[string]*entity.Invoice),
		InvoiceLines: make(map[string][]entity.LineItem),
		Payments:     make(map[string]*entity.Payment),
		Users:        make(map[string]*entity.User),
	}
}

// Repos binds every fake repository to the store.
func (s *Store) Repos() repository.Set {
	return repository.Set{
		Customers: &customerRepo{s},
		Products:  &productRepo{s},
		Quotes:    &quoteRepo{s},
		Invoices:  &invoiceRepo{s},
		Payments:  &paymentRepo{s},
		Users:     &userRepo{s},
	}
}

// TxRunner satisfies the billing TxRunner port without a database.
type TxRunner struct{ S *Store }

func (r *TxRunner) Run(_ context.Context, fn func(repos repository.Set) error) error {
	return fn(r.S.Repos())
}

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	cp := *c
	r.s.Customers[c.ID] = &cp
	return nil
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.s.Customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *customerRepo) FindDuplicate(_ context.Context, name, email string) (*entity.Customer, error) {
	for _, c := range r.s.Customers {
		if strings.EqualFold(c.Name, name) && strings.EqualFold(c.Email, email) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *customerRepo) List(_ context.Context, custType string, limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.s.Customers))
	for _, c := range r.s.Customers {
		if custType != "" && c.Type != custType {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *customerRepo) ListBranches(_ context.Context, parentID string) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.Customers {
		if c.ParentCompanyID == parentID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *customerRepo) Update(_ context.Context, c *entity.Customer) error {
	cp := *c
	r.s.Customers[c.ID] = &cp
	return nil
}

func (r *customerRepo) Delete(_ context.Context, id string) error {
	delete(r.s.Customers, id)
	return nil
}

func (r *customerRepo) CreateAddress(_ context.Context, a *entity.Address) error {
	cp := *a
	r.s.Addresses[a.ID] = &cp
	return nil
}

func (r *customerRepo) GetAddress(_ context.Context, id string) (*entity.Address, error) {
	a, ok := r.s.Addresses[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *customerRepo) ListAddresses(_ context.Context, customerID string) ([]entity.Address, error) {
	var out []entity.Address
	for _, a := range r.s.Addresses {
		if a.CustomerID == customerID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *customerRepo) UpdateAddress(_ context.Context, a *entity.Address) error {
	cp := *a
	r.s.Addresses[a.ID] = &cp
	return nil
}

func (r *customerRepo) DeleteAddress(_ context.Context, id string) error {
	delete(r.s.Addresses, id)
	return nil
}

func (r *customerRepo) ClearPrimary(_ context.Context, customerID, addrType string) error {
	for _, a := range r.s.Addresses {
		if a.CustomerID == customerID && a.Type == addrType {
			a.IsPrimary = false
		}
	}
	return nil
}

func (r *customerRepo) CreatePrice(_ context.Context, p *entity.CustomerPrice) error {
	r.s.Overrides = append(r.s.Overrides, *p)
	return nil
}

func (r *customerRepo) ListPrices(_ context.Context, customerID string) ([]entity.CustomerPrice, error) {
	var out []entity.CustomerPrice
	for _, p := range r.s.Overrides {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *customerRepo) ListPricesForProduct(_ context.Context, customerID, productID string) ([]entity.CustomerPrice, error) {
	var out []entity.CustomerPrice
	for _, p := range r.s.Overrides {
		if p.CustomerID == customerID && p.ProductID == productID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *customerRepo) DeletePrice(_ context.Context, id string) error {
	out := r.s.Overrides[:0]
	for _, p := range r.s.Overrides {
		if p.ID != id {
			out = append(out, p)
		}
	}
	r.s.Overrides = out
	return nil
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.Products[p.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.Products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range r.s.Products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) List(_ context.Context, activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.Products {
		if activeOnly && !p.Active {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.Products[p.ID] = &cp
	return nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	delete(r.s.Products, id)
	return nil
}

func (r *productRepo) CreateListPrice(_ context.Context, p *entity.ListPrice) error {
	r.s.ListPrices = append(r.s.ListPrices, *p)
	return nil
}

func (r *productRepo) ListPrices(_ context.Context, productID string) ([]entity.ListPrice, error) {
	var out []entity.ListPrice
	for _, p := range r.s.ListPrices {
		if p.ProductID == productID {
			out = append(out, p)
		}
	}
	return out, nil
}

type quoteRepo struct{ s *Store }

func (r *quoteRepo) Create(_ context.Context, q *entity.Quote) error {
	cp := *q
	r.s.Quotes[q.ID] = &cp
	return nil
}

func (r *quoteRepo) CreateLine(_ context.Context, l *entity.LineItem) error {
	r.s.QuoteLines[l.ParentID] = append(r.s.QuoteLines[l.ParentID], *l)
	return nil
}

func (r *quoteRepo) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	q, ok := r.s.Quotes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (r *quoteRepo) GetLines(_ context.Context, quoteID string) ([]entity.LineItem, error) {
	return append([]entity.LineItem(nil), r.s.QuoteLines[quoteID]...), nil
}

func (r *quoteRepo) List(_ context.Context, customerID, status string, limit, offset int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range r.s.Quotes {
		if customerID != "" && q.CustomerID != customerID {
			continue
		}
		if status != "" && q.Status != status {
			continue
		}
		cp := *q
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}

func (r *quoteRepo) Update(_ context.Context, q *entity.Quote) error {
	cp := *q
	r.s.Quotes[q.ID] = &cp
	return nil
}

func (r *quoteRepo) ReplaceLines(_ context.Context, quoteID string, lines []entity.LineItem) error {
	r.s.QuoteLines[quoteID] = append([]entity.LineItem(nil), lines...)
	return nil
}

func (r *quoteRepo) NextNumber(_ context.Context) (int64, error) {
	r.s.QuoteSeq++
	return r.s.QuoteSeq, nil
}

func (r *quoteRepo) CountByStatus(_ context.Context, status string) (int, error) {
	n := 0
	for _, q := range r.s.Quotes {
		if q.Status == status {
			n++
		}
	}
	return n, nil
}

type invoiceRepo struct{ s *Store }

func (r *invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	r.s.Invoices[inv.ID] = &cp
	return nil
}

func (r *invoiceRepo) CreateLine(_ context.Context, l *entity.LineItem) error {
	r.s.InvoiceLines[l.ParentID] = append(r.s.InvoiceLines[l.ParentID], *l)
	return nil
}

func (r *invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	inv, ok := r.s.Invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *invoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *invoiceRepo) GetLines(_ context.Context, invoiceID string) ([]entity.LineItem, error) {
	return append([]entity.LineItem(nil), r.s.InvoiceLines[invoiceID]...), nil
}

func (r *invoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.Invoices {
		if f.CustomerID != "" && inv.CustomerID != f.CustomerID {
			continue
		}
		if f.BillToCustomerID != "" && inv.BillToCustomerID != f.BillToCustomerID {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if !f.From.IsZero() && inv.IssueDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && inv.IssueDate.After(f.To) {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssueDate.Before(out[j].IssueDate) })
	return out, nil
}

func (r *invoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	r.s.Invoices[inv.ID] = &cp
	return nil
}

func (r *invoiceRepo) UpdateStatus(_ context.Context, id, status string) error {
	if inv, ok := r.s.Invoices[id]; ok {
		inv.Status = status
	}
	return nil
}

func (r *invoiceRepo) ReplaceLines(_ context.Context, invoiceID string, lines []entity.LineItem) error {
	r.s.InvoiceLines[invoiceID] = append([]entity.LineItem(nil), lines...)
	return nil
}

func (r *invoiceRepo) NextNumber(_ context.Context) (int64, error) {
	r.s.InvoiceSeq++
	return r.s.InvoiceSeq, nil
}

func (r *invoiceRepo) CountByStatus(_ context.Context, status string) (int, error) {
	n := 0
	for _, inv := range r.s.Invoices {
		if inv.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *invoiceRepo) AllocatedAmount(_ context.Context, invoiceID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, a := range r.s.Allocations {
		if a.InvoiceID == invoiceID {
			sum = sum.Add(a.Amount)
		}
	}
	return sum, nil
}

func (r *invoiceRepo) AllocatedAmounts(_ context.Context, invoiceIDs []string) (map[string]decimal.Decimal, error) {
	want := make(map[string]bool, len(invoiceIDs))
	for _, id := range invoiceIDs {
		want[id] = true
	}
	out := make(map[string]decimal.Decimal)
	for _, a := range r.s.Allocations {
		if want[a.InvoiceID] {
			out[a.InvoiceID] = out[a.InvoiceID].Add(a.Amount)
		}
	}
	return out, nil
}

func (r *invoiceRepo) ListOutstanding(_ context.Context, asOf time.Time) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.Invoices {
		if inv.Status != entity.InvoiceStatusFinalized && inv.Status != entity.InvoiceStatusPartiallyPaid {
			continue
		}
		if inv.IssueDate.After(asOf) {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

type paymentRepo struct{ s *Store }

func (r *paymentRepo) Create(_ context.Context, p *entity.Payment) error {
	cp := *p
	r.s.Payments[p.ID] = &cp
	return nil
}

func (r *paymentRepo) CreateAllocation(_ context.Context, a *entity.Allocation) error {
	r.s.Allocations = append(r.s.Allocations, *a)
	return nil
}

func (r *paymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	p, ok := r.s.Payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *paymentRepo) List(_ context.Context, customerID string, limit, offset int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.Payments {
		if customerID != "" && p.CustomerID != customerID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDate.After(out[j].PaymentDate) })
	return out, nil
}

func (r *paymentRepo) ListByCustomerBetween(_ context.Context, customerID string, from, to time.Time) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.Payments {
		if customerID != "" && p.CustomerID != customerID {
			continue
		}
		if !from.IsZero() && p.PaymentDate.Before(from) {
			continue
		}
		if !to.IsZero() && p.PaymentDate.After(to) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *paymentRepo) ListAllocations(_ context.Context, paymentID string) ([]entity.Allocation, error) {
	var out []entity.Allocation
	for _, a := range r.s.Allocations {
		if a.PaymentID == paymentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *paymentRepo) Delete(_ context.Context, id string) error {
	delete(r.s.Payments, id)
	out := r.s.Allocations[:0]
	for _, a := range r.s.Allocations {
		if a.PaymentID != id {
			out = append(out, a)
		}
	}
	r.s.Allocations = out
	return nil
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.s.Users[u.ID] = &cp
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.s.Users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.Users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
