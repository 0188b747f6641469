package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/snowva/business-hub/internal/application/billing"
	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/domain/repository"
	"github.com/snowva/business-hub/pkg/validate"
)

// InvoiceHandler handles invoices, their lifecycle and their PDF
// rendition.
type InvoiceHandler struct {
	uc        *billing.InvoiceUseCase
	documents *billing.DocumentUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, documents *billing.DocumentUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, documents: documents}
}

// Create POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badInput(c, err.Error())
	}
	invoice, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// List GET /api/invoices?customer_id=...&bill_to=...&status=...&from=...&to=...
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badInput(c, "invalid paging parameters")
	}
	from, err := dto.ParseDate(c.Query("from"))
	if err != nil {
		return badInput(c, "from must be YYYY-MM-DD")
	}
	to, err := dto.ParseDate(c.Query("to"))
	if err != nil {
		return badInput(c, "to must be YYYY-MM-DD")
	}
	list, err := h.uc.List(c.Context(), repository.InvoiceFilter{
		CustomerID:       c.Query("customer_id"),
		BillToCustomerID: c.Query("bill_to"),
		Status:           c.Query("status"),
		From:             from,
		To:               to,
		Limit:            page.Limit,
		Offset:           page.Offset,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/invoices/:id
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	invoice, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(invoice)
}

// Update PUT /api/invoices/:id
// Drafts only; finalized invoices are immutable.
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badInput(c, err.Error())
	}
	invoice, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(invoice)
}

// Finalize POST /api/invoices/:id/finalize
// Assigns the invoice number and locks the document.
func (h *InvoiceHandler) Finalize(c *fiber.Ctx) error {
	invoice, err := h.uc.Finalize(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(invoice)
}

// Void POST /api/invoices/:id/void
func (h *InvoiceHandler) Void(c *fiber.Ctx) error {
	invoice, err := h.uc.Void(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(invoice)
}

// PDF GET /api/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.documents.InvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
