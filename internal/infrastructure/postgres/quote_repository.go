package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/snowva/business-hub/internal/domain"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

const quoteColumns = `id, number, customer_id, issue_date, valid_until, status, subtotal, vat_amount, total, notes, COALESCE(invoice_id::text, ''), created_at, updated_at`

// QuoteRepo implements the QuoteRepository port on PostgreSQL
// (usable with pool or tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository builds the persistence adapter for quotes.
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var q entity.Quote
	err := row.Scan(
		&q.ID, &q.Number, &q.CustomerID, &q.IssueDate, &q.ValidUntil, &q.Status,
		&q.Subtotal, &q.VATAmount, &q.Total, &q.Notes, &q.InvoiceID,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	query := `
		INSERT INTO quotes (id, number, customer_id, issue_date, valid_until, status, subtotal, vat_amount, total, notes, invoice_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, '')::uuid, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.Number, q.CustomerID, q.IssueDate, q.ValidUntil, q.Status,
		q.Subtotal, q.VATAmount, q.Total, q.Notes, q.InvoiceID, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

func (r *QuoteRepo) CreateLine(ctx context.Context, l *entity.LineItem) error {
	query := `
		INSERT INTO quote_lines (id, quote_id, product_id, description, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, l.ID, l.ParentID, l.ProductID, l.Description, l.Quantity, l.UnitPrice, l.LineTotal)
	if err != nil {
		return fmt.Errorf("insert quote line: %w", err)
	}
	return nil
}

func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`
	q, err := scanQuote(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

func (r *QuoteRepo) GetLines(ctx context.Context, quoteID string) ([]entity.LineItem, error) {
	query := `
		SELECT id, quote_id, product_id, description, quantity, unit_price, line_total
		FROM quote_lines WHERE quote_id = $1 ORDER BY description`
	return queryLines(ctx, r.q, query, quoteID)
}

func (r *QuoteRepo) List(ctx context.Context, customerID, status string, limit, offset int) ([]*entity.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes
		WHERE ($1 = '' OR customer_id::text = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY number DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, customerID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *QuoteRepo) Update(ctx context.Context, q *entity.Quote) error {
	query := `
		UPDATE quotes
		SET valid_until = $2, status = $3, subtotal = $4, vat_amount = $5, total = $6,
		    notes = $7, invoice_id = NULLIF($8, '')::uuid, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.ValidUntil, q.Status, q.Subtotal, q.VATAmount, q.Total,
		q.Notes, q.InvoiceID, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	return nil
}

func (r *QuoteRepo) ReplaceLines(ctx context.Context, quoteID string, lines []entity.LineItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM quote_lines WHERE quote_id = $1`, quoteID); err != nil {
		return fmt.Errorf("delete quote lines: %w", err)
	}
	for i := range lines {
		if err := r.CreateLine(ctx, &lines[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *QuoteRepo) NextNumber(ctx context.Context) (int64, error) {
	return nextCounter(ctx, r.q, "quote_number")
}

func (r *QuoteRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM quotes WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}
	return n, nil
}

// queryLines scans quote or invoice lines; both tables share the shape.
func queryLines(ctx context.Context, q Querier, query string, args ...any) ([]entity.LineItem, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}
	defer rows.Close()

	var out []entity.LineItem
	for rows.Next() {
		var l entity.LineItem
		if err := rows.Scan(&l.ID, &l.ParentID, &l.ProductID, &l.Description, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// nextCounter increments one named sequence row and returns the new value.
func nextCounter(ctx context.Context, q Querier, name string) (int64, error) {
	var value int64
	err := q.QueryRow(ctx,
		`UPDATE counters SET value = value + 1 WHERE name = $1 RETURNING value`,
		name,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next %s: %w", name, err)
	}
	return value, nil
}
