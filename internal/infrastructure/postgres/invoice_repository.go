package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/snowva/business-hub/internal/domain"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, COALESCE(number, ''), customer_id, bill_to_customer_id, issue_date, due_date, status, po_number, subtotal, vat_amount, discount_amount, shipping_amount, total, notes, created_at, updated_at`

// InvoiceRepo implements the InvoiceRepository port on PostgreSQL
// (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the persistence adapter for invoices.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.CustomerID, &inv.BillToCustomerID,
		&inv.IssueDate, &inv.DueDate, &inv.Status, &inv.PONumber,
		&inv.Subtotal, &inv.VATAmount, &inv.DiscountAmount, &inv.ShippingAmount,
		&inv.Total, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, number, customer_id, bill_to_customer_id, issue_date, due_date, status, po_number, subtotal, vat_amount, discount_amount, shipping_amount, total, notes, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Number, inv.CustomerID, inv.BillToCustomerID,
		inv.IssueDate, inv.DueDate, inv.Status, inv.PONumber,
		inv.Subtotal, inv.VATAmount, inv.DiscountAmount, inv.ShippingAmount,
		inv.Total, inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) CreateLine(ctx context.Context, l *entity.LineItem) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, product_id, description, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, l.ID, l.ParentID, l.ProductID, l.Description, l.Quantity, l.UnitPrice, l.LineTotal)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice for update: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) GetLines(ctx context.Context, invoiceID string) ([]entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, product_id, description, quantity, unit_price, line_total
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY description`
	return queryLines(ctx, r.q, query, invoiceID)
}

func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	// Limit <= 0 means no paging, used by statements and reports.
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 = '' OR customer_id::text = $1)
		  AND ($2 = '' OR bill_to_customer_id::text = $2)
		  AND ($3 = '' OR status = $3)
		  AND ($4::date IS NULL OR issue_date >= $4)
		  AND ($5::date IS NULL OR issue_date <= $5)
		ORDER BY issue_date, created_at
		LIMIT NULLIF($6, 0) OFFSET $7`
	rows, err := r.q.Query(ctx, query,
		f.CustomerID, f.BillToCustomerID, f.Status,
		nullableDate(f.From), nullableDate(f.To),
		max(f.Limit, 0), max(f.Offset, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET number = NULLIF($2, ''), due_date = $3, status = $4, po_number = $5,
		    subtotal = $6, vat_amount = $7, discount_amount = $8, shipping_amount = $9,
		    total = $10, notes = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Number, inv.DueDate, inv.Status, inv.PONumber,
		inv.Subtotal, inv.VATAmount, inv.DiscountAmount, inv.ShippingAmount,
		inv.Total, inv.Notes, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) ReplaceLines(ctx context.Context, invoiceID string, lines []entity.LineItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}
	for i := range lines {
		if err := r.CreateLine(ctx, &lines[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *InvoiceRepo) NextNumber(ctx context.Context) (int64, error) {
	return nextCounter(ctx, r.q, "invoice_number")
}

func (r *InvoiceRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM invoices WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

func (r *InvoiceRepo) AllocatedAmount(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(sum(amount), 0) FROM allocations WHERE invoice_id = $1`,
		invoiceID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum allocations: %w", err)
	}
	return sum, nil
}

func (r *InvoiceRepo) AllocatedAmounts(ctx context.Context, invoiceIDs []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT invoice_id, sum(amount) FROM allocations WHERE invoice_id = ANY($1) GROUP BY invoice_id`,
		invoiceIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("sum allocations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var sum decimal.Decimal
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan allocation sum: %w", err)
		}
		out[id] = sum
	}
	return out, rows.Err()
}

func (r *InvoiceRepo) ListOutstanding(ctx context.Context, asOf time.Time) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE status IN ($1, $2) AND issue_date <= $3
		ORDER BY due_date`
	rows, err := r.q.Query(ctx, query, entity.InvoiceStatusFinalized, entity.InvoiceStatusPartiallyPaid, asOf)
	if err != nil {
		return nil, fmt.Errorf("list outstanding invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// nullableDate maps the zero time to NULL for optional date filters.
func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
