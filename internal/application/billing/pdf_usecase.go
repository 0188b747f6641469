package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/domain"
	domainbilling "github.com/snowva/business-hub/internal/domain/billing"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/domain/repository"
)

// DocumentUseCase renders invoices and statements as PDF documents.
type DocumentUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	statements   *StatementUseCase
	invoicePDF   InvoicePDFGenerator
	statementPDF StatementPDFGenerator
	company      CompanyInfo
}

// NewDocumentUseCase builds the use case.
func NewDocumentUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	statements *StatementUseCase,
	invoicePDF InvoicePDFGenerator,
	statementPDF StatementPDFGenerator,
	company CompanyInfo,
) *DocumentUseCase {
	return &DocumentUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		statements:   statements,
		invoicePDF:   invoicePDF,
		statementPDF: statementPDF,
		company:      company,
	}
}

// InvoicePDF renders a finalized invoice. Drafts have no number yet
// and cannot be issued as documents.
func (uc *DocumentUseCase) InvoicePDF(ctx context.Context, id string) ([]byte, string, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if invoice == nil {
		return nil, "", domain.ErrNotFound
	}
	if invoice.Status == entity.InvoiceStatusDraft {
		return nil, "", domain.ErrConflict
	}
	lines, err := uc.invoiceRepo.GetLines(ctx, id)
	if err != nil {
		return nil, "", err
	}
	customer, err := uc.customerRepo.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, "", err
	}
	billTo := customer
	if invoice.BillToCustomerID != invoice.CustomerID {
		billTo, err = uc.customerRepo.GetByID(ctx, invoice.BillToCustomerID)
		if err != nil {
			return nil, "", err
		}
	}
	allocated, err := uc.invoiceRepo.AllocatedAmount(ctx, id)
	if err != nil {
		return nil, "", err
	}

	pdf, err := uc.invoicePDF.GenerateInvoicePDF(ctx, InvoicePDFData{
		Company:    uc.company,
		Invoice:    invoice,
		Customer:   customer,
		BillTo:     billTo,
		Lines:      lines,
		AmountPaid: allocated,
		Balance:    domainbilling.Balance(invoice.Total, allocated),
	})
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("invoice_%s.pdf", invoice.Number)
	return pdf, filename, nil
}

// StatementPDF renders an account statement for the customer's bill-to
// account over the given window.
func (uc *DocumentUseCase) StatementPDF(ctx context.Context, customerID, from, to string) ([]byte, string, error) {
	data, err := uc.statements.build(ctx, customerID, from, to)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.statementPDF.GenerateStatementPDF(ctx, StatementPDFData{
		Company: uc.company,
		Account: data.Account,
		From:    data.From,
		To:      data.To,
		Opening: data.Opening,
		Lines:   data.Lines,
		Closing: data.Closing,
	})
	if err != nil {
		return nil, "", err
	}
	name := strings.ReplaceAll(data.Account.Name, " ", "_")
	filename := fmt.Sprintf("statement_%s_%s.pdf", name, data.To.Format(dto.DateLayout))
	return pdf, filename, nil
}
