package dto

import "github.com/shopspring/decimal"

// AgingRowResponse bucketed outstanding balances for one account.
type AgingRowResponse struct {
	CustomerID   string          `json:"customer_id,omitempty"`
	CustomerName string          `json:"customer_name,omitempty"`
	Current      decimal.Decimal `json:"current"`
	Days30       decimal.Decimal `json:"days_30"`
	Days60       decimal.Decimal `json:"days_60"`
	Days90       decimal.Decimal `json:"days_90"`
	Days120      decimal.Decimal `json:"days_120"`
	Days120Plus  decimal.Decimal `json:"days_120_plus"`
	Total        decimal.Decimal `json:"total"`
}

// AgingReportResponse GET /api/reports/aging.
type AgingReportResponse struct {
	AsOf   string             `json:"as_of"`
	Rows   []AgingRowResponse `json:"rows"`
	Totals AgingRowResponse   `json:"totals"`
}

// CustomerBalanceResponse one account's outstanding total, for the
// dashboard top list.
type CustomerBalanceResponse struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// DashboardResponse GET /api/reports/dashboard.
type DashboardResponse struct {
	From             string                    `json:"from"`
	To               string                    `json:"to"`
	InvoicedTotal    decimal.Decimal           `json:"invoiced_total"`
	PaymentsReceived decimal.Decimal           `json:"payments_received"`
	OutstandingTotal decimal.Decimal           `json:"outstanding_total"`
	OverdueTotal     decimal.Decimal           `json:"overdue_total"`
	DraftInvoices    int                       `json:"draft_invoices"`
	DraftQuotes      int                       `json:"draft_quotes"`
	TopCustomers     []CustomerBalanceResponse `json:"top_customers"`
}

// StatementLineResponse one movement on a statement.
type StatementLineResponse struct {
	Date      string          `json:"date"`
	Kind      string          `json:"kind"`
	Reference string          `json:"reference"`
	Detail    string          `json:"detail,omitempty"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"`
}

// StatementResponse GET /api/customers/:id/statement. The statement is
// rendered for the bill-to account: branch activity rolls up into the
// parent when the branch bills through head office.
type StatementResponse struct {
	CustomerID     string                  `json:"customer_id"`
	CustomerName   string                  `json:"customer_name"`
	From           string                  `json:"from"`
	To             string                  `json:"to"`
	OpeningBalance decimal.Decimal         `json:"opening_balance"`
	Lines          []StatementLineResponse `json:"lines"`
	ClosingBalance decimal.Decimal         `json:"closing_balance"`
}
