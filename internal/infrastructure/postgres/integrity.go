package postgres

import (
	"context"
	"fmt"
)

// IntegrityIssue is one failed consistency check.
type IntegrityIssue struct {
	Check  string
	Detail string
}

// IntegrityReport is the outcome of a full consistency scan.
type IntegrityReport struct {
	Checked int
	Issues  []IntegrityIssue
}

// Clean reports whether the scan found nothing wrong.
func (r *IntegrityReport) Clean() bool { return len(r.Issues) == 0 }

// IntegrityChecker scans the database for referential and accounting
// inconsistencies that the application invariants should make impossible.
// Used by the checkdata command; read only.
type IntegrityChecker struct {
	q Querier
}

// NewIntegrityChecker builds the checker.
func NewIntegrityChecker(q Querier) *IntegrityChecker {
	return &IntegrityChecker{q: q}
}

type integrityQuery struct {
	check string
	query string
}

var integrityQueries = []integrityQuery{
	{
		check: "branch_of_branch",
		query: `
			SELECT c.id || ' -> ' || p.id
			FROM customers c
			JOIN customers p ON p.id = c.parent_company_id
			WHERE p.parent_company_id IS NOT NULL`,
	},
	{
		check: "parent_billing_without_parent",
		query: `
			SELECT id::text
			FROM customers
			WHERE billing_mode = 'parent' AND parent_company_id IS NULL`,
	},
	{
		check: "finalized_invoice_without_number",
		query: `
			SELECT id::text
			FROM invoices
			WHERE status <> 'draft' AND number IS NULL`,
	},
	{
		check: "invoice_total_mismatch",
		query: `
			SELECT i.id::text
			FROM invoices i
			JOIN (
				SELECT invoice_id, sum(line_total) AS line_sum
				FROM invoice_lines GROUP BY invoice_id
			) l ON l.invoice_id = i.id
			WHERE i.subtotal <> l.line_sum`,
	},
	{
		check: "over_allocated_invoice",
		query: `
			SELECT i.id::text || ' allocated ' || a.alloc_sum || ' of ' || i.total
			FROM invoices i
			JOIN (
				SELECT invoice_id, sum(amount) AS alloc_sum
				FROM allocations GROUP BY invoice_id
			) a ON a.invoice_id = i.id
			WHERE a.alloc_sum > i.total`,
	},
	{
		check: "allocation_on_draft_or_void",
		query: `
			SELECT DISTINCT i.id::text
			FROM invoices i
			JOIN allocations a ON a.invoice_id = i.id
			WHERE i.status IN ('draft', 'void')`,
	},
	{
		check: "payment_under_allocated_status",
		query: `
			SELECT i.id::text
			FROM invoices i
			LEFT JOIN (
				SELECT invoice_id, sum(amount) AS alloc_sum
				FROM allocations GROUP BY invoice_id
			) a ON a.invoice_id = i.id
			WHERE (i.status = 'paid' AND COALESCE(a.alloc_sum, 0) < i.total AND i.total > 0)
			   OR (i.status = 'partially_paid' AND COALESCE(a.alloc_sum, 0) IN (0, i.total))`,
	},
	{
		check: "allocation_sum_exceeds_payment",
		query: `
			SELECT p.id::text
			FROM payments p
			JOIN (
				SELECT payment_id, sum(amount) AS alloc_sum
				FROM allocations GROUP BY payment_id
			) a ON a.payment_id = p.id
			WHERE a.alloc_sum > p.amount`,
	},
	{
		check: "invoiced_quote_without_invoice",
		query: `
			SELECT id::text
			FROM quotes
			WHERE status = 'invoiced' AND invoice_id IS NULL`,
	},
	{
		check: "product_without_list_price",
		query: `
			SELECT p.id::text || ' ' || p.code
			FROM products p
			WHERE p.active AND NOT EXISTS (
				SELECT 1 FROM list_prices lp WHERE lp.product_id = p.id
			)`,
	},
}

// Check runs every consistency query and collects offending rows.
func (c *IntegrityChecker) Check(ctx context.Context) (*IntegrityReport, error) {
	report := &IntegrityReport{}
	for _, iq := range integrityQueries {
		rows, err := c.q.Query(ctx, iq.query)
		if err != nil {
			return nil, fmt.Errorf("integrity check %s: %w", iq.check, err)
		}
		for rows.Next() {
			var detail string
			if err := rows.Scan(&detail); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan %s: %w", iq.check, err)
			}
			report.Issues = append(report.Issues, IntegrityIssue{Check: iq.check, Detail: detail})
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("integrity check %s: %w", iq.check, err)
		}
		report.Checked++
	}
	return report, nil
}
