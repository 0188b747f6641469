package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/snowva/business-hub/internal/application/billing"
	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/pkg/validate"
)

// QuoteHandler handles quotes and their lifecycle transitions.
type QuoteHandler struct {
	uc *billing.QuoteUseCase
}

// NewQuoteHandler builds the handler.
func NewQuoteHandler(uc *billing.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Create POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badInput(c, err.Error())
	}
	quote, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quote)
}

// List GET /api/quotes?customer_id=...&status=draft&limit=20&offset=0
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badInput(c, "invalid paging parameters")
	}
	list, err := h.uc.List(c.Context(), c.Query("customer_id"), c.Query("status"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/quotes/:id
func (h *QuoteHandler) Get(c *fiber.Ctx) error {
	quote, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(quote)
}

// Update PUT /api/quotes/:id
func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badInput(c, err.Error())
	}
	quote, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(quote)
}

// Send POST /api/quotes/:id/send
func (h *QuoteHandler) Send(c *fiber.Ctx) error {
	quote, err := h.uc.Send(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(quote)
}

// Accept POST /api/quotes/:id/accept
func (h *QuoteHandler) Accept(c *fiber.Ctx) error {
	quote, err := h.uc.Accept(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(quote)
}

// Reject POST /api/quotes/:id/reject
func (h *QuoteHandler) Reject(c *fiber.Ctx) error {
	quote, err := h.uc.Reject(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(quote)
}

// Convert POST /api/quotes/:id/convert
// Creates a draft invoice from an accepted quote.
func (h *QuoteHandler) Convert(c *fiber.Ctx) error {
	invoice, err := h.uc.Convert(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}
