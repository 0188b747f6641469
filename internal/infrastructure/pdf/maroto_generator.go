// Package pdf renders tax invoices and account statements with Maroto v2.
//
// Invoice page layout (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Company name + VAT no  │  Invoice no + dates       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FROM: address / phone / email                              │
//	│  BILL TO: account name + VAT no + contact                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Description | Unit price | Line total         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Discount / Shipping / VAT / Total due   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: banking details + payment reference                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/snowva/business-hub/internal/application/billing"
	domainbilling "github.com/snowva/business-hub/internal/domain/billing"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/pkg/money"
)

const dateLayout = "02 Jan 2006"

var (
	colorPrimary = &props.Color{Red: 31, Green: 77, Blue: 58}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoGenerator renders both document kinds. Implements
// billing.InvoicePDFGenerator and billing.StatementPDFGenerator.
type MarotoGenerator struct{}

// NewMarotoGenerator builds the generator.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

var (
	_ appbilling.InvoicePDFGenerator   = (*MarotoGenerator)(nil)
	_ appbilling.StatementPDFGenerator = (*MarotoGenerator)(nil)
)

func newDocument(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

// GenerateInvoicePDF renders a tax invoice and returns its bytes.
func (g *MarotoGenerator) GenerateInvoicePDF(
	_ context.Context,
	data appbilling.InvoicePDFData,
) ([]byte, error) {
	m := newDocument("Tax Invoice "+data.Invoice.Number, data.Company.Name)

	m.AddRows(invoiceHeaderRow(data.Invoice, data.Company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(data.Company))
	m.AddRows(billToRow(data.Customer, data.BillTo))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(lineTableHeaderRow())
	for _, r := range lineTableRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(invoiceTotalsRow(data))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(bankingFooterRows(data.Company, data.Invoice.Number)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateStatementPDF renders an account statement and returns its bytes.
func (g *MarotoGenerator) GenerateStatementPDF(
	_ context.Context,
	data appbilling.StatementPDFData,
) ([]byte, error) {
	m := newDocument("Statement "+data.Account.Name, data.Company.Name)

	m.AddRows(statementHeaderRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(data.Company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(statementTableHeaderRow())
	m.AddRows(statementBalanceRow("Opening balance", data.From, data.Opening))
	for _, r := range statementLineRows(data.Lines) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(statementBalanceRow("Closing balance", data.To, data.Closing))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(bankingFooterRows(data.Company, data.Account.Name)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate statement pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── sections ──────────────────────────────────────────────────────────────────

func invoiceHeaderRow(invoice *entity.Invoice, company appbilling.CompanyInfo) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("VAT No: "+company.VATNumber, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Issued: "+invoice.IssueDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Due: "+invoice.DueDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

func statementHeaderRow(data appbilling.StatementPDFData) core.Row {
	period := data.From.Format(dateLayout) + " to " + data.To.Format(dateLayout)
	return row.New(20).Add(
		col.New(7).Add(
			text.New(data.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("VAT No: "+data.Company.VATNumber, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ACCOUNT STATEMENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(data.Account.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New(period, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func companyRow(company appbilling.CompanyInfo) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("FROM", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// billToRow shows the account being billed; when a branch order bills to
// head office the branch appears as the delivery reference.
func billToRow(customer, billTo *entity.Customer) core.Row {
	contact := fmt.Sprintf("VAT No: %s   |   Email: %s   |   Tel: %s",
		nonEmpty(billTo.VATNumber, "—"),
		nonEmpty(billTo.Email, "—"),
		nonEmpty(billTo.Phone, "—"),
	)
	cols := []core.Component{
		text.New("BILL TO", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(billTo.Name, props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 6,
		}),
		text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
	}
	if customer.ID != billTo.ID {
		cols = append(cols, text.New("Branch: "+customer.Name, props.Text{
			Size: 8, Top: 16, Color: colorGray,
		}))
		return row.New(20).Add(col.New(12).Add(cols...))
	}
	return row.New(16).Add(col.New(12).Add(cols...))
}

func lineTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Description", 6, align.Left),
		h("Unit price", 2, align.Right),
		h("Line total", 3, align.Right),
	)
}

func lineTableRows(lines []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				l.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money.FormatZAR(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				money.FormatZAR(l.LineTotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func invoiceTotalsRow(data appbilling.InvoicePDFData) core.Row {
	inv := data.Invoice
	type entry struct {
		label string
		value string
		grand bool
	}
	entries := []entry{
		{label: "Subtotal:", value: money.FormatZAR(inv.Subtotal)},
	}
	if !inv.DiscountAmount.IsZero() {
		entries = append(entries, entry{label: "Discount:", value: "-" + money.FormatZAR(inv.DiscountAmount)})
	}
	if !inv.ShippingAmount.IsZero() {
		entries = append(entries, entry{label: "Shipping:", value: money.FormatZAR(inv.ShippingAmount)})
	}
	entries = append(entries,
		entry{label: "Includes VAT (15%):", value: money.FormatZAR(inv.VATAmount)},
		entry{label: "TOTAL:", value: money.FormatZAR(inv.Total), grand: true},
	)
	if !data.AmountPaid.IsZero() {
		entries = append(entries,
			entry{label: "Paid:", value: money.FormatZAR(data.AmountPaid)},
			entry{label: "BALANCE DUE:", value: money.FormatZAR(data.Balance), grand: true},
		)
	}

	labels := make([]core.Component, 0, len(entries))
	values := make([]core.Component, 0, len(entries))
	top := 1.0
	for _, e := range entries {
		p := props.Text{Size: 9, Align: align.Right, Top: top, Right: 1}
		lp := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: top, Right: 2}
		if e.grand {
			p.Style = fontstyle.Bold
			p.Size = 10
			p.Color = colorPrimary
			lp.Size = 10
			lp.Color = colorPrimary
		}
		labels = append(labels, text.New(e.label, lp))
		values = append(values, text.New(e.value, p))
		top += 5
	}

	return row.New(top + 4).Add(
		col.New(4),
		col.New(4).Add(labels...),
		col.New(4).Add(values...),
	)
}

func statementTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Reference", 2, align.Left),
		h("Detail", 3, align.Left),
		h("Debit", 1, align.Right),
		h("Credit", 2, align.Right),
		h("Balance", 2, align.Right),
	)
}

func statementLineRows(lines []domainbilling.StatementLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		debit, credit := "", ""
		if !l.Debit.IsZero() {
			debit = money.FormatZAR(l.Debit)
		}
		if !l.Credit.IsZero() {
			credit = money.FormatZAR(l.Credit)
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(l.Date.Format(dateLayout), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Reference, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(l.Detail, props.Text{Size: 7.5, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(debit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(credit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.FormatZAR(l.Balance), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func statementBalanceRow(label string, date time.Time, amount decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(date.Format(dateLayout), props.Text{
			Size: 8, Top: 1, Left: 1, Style: fontstyle.Bold,
		})),
		col.New(8).Add(text.New(label, props.Text{
			Size: 8, Top: 1, Left: 1, Style: fontstyle.Bold,
		})),
		col.New(2).Add(text.New(money.FormatZAR(amount), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1, Style: fontstyle.Bold,
		})),
	)
}

func bankingFooterRows(company appbilling.CompanyInfo, reference string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("BANKING DETAILS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s   |   Account: %s   |   Branch code: %s",
				nonEmpty(company.BankName, "—"),
				nonEmpty(company.BankAcc, "—"),
				nonEmpty(company.BankCode, "—"),
			), props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New("Please use "+reference+" as your payment reference.", props.Text{
				Size: 7.5, Top: 5, Color: colorGray,
			}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
