package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainbilling "github.com/snowva/business-hub/internal/domain/billing"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction, with
// every repository bound to that transaction.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Set) error) error
}

// CompanyInfo is the issuing business's identity as printed on
// documents. Populated from configuration at wiring time.
type CompanyInfo struct {
	Name      string
	VATNumber string
	Email     string
	Phone     string
	Address   string
	BankName  string
	BankAcc   string
	BankCode  string
}

// InvoicePDFData is everything the invoice document renderer needs.
type InvoicePDFData struct {
	Company    CompanyInfo
	Invoice    *entity.Invoice
	Customer   *entity.Customer
	BillTo     *entity.Customer
	Lines      []entity.LineItem
	AmountPaid decimal.Decimal
	Balance    decimal.Decimal
}

// StatementPDFData is everything the statement renderer needs.
type StatementPDFData struct {
	Company CompanyInfo
	Account *entity.Customer
	From    time.Time
	To      time.Time
	Opening decimal.Decimal
	Lines   []domainbilling.StatementLine
	Closing decimal.Decimal
}

// InvoicePDFGenerator renders an invoice document.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, data InvoicePDFData) ([]byte, error)
}

// StatementPDFGenerator renders an account statement document.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, data StatementPDFData) ([]byte, error)
}
