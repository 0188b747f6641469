package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/snowva/business-hub/internal/application/billing"
	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/pkg/validate"
)

// PaymentHandler handles payments and their invoice allocations.
type PaymentHandler struct {
	uc *billing.PaymentUseCase
}

// NewPaymentHandler builds the handler.
func NewPaymentHandler(uc *billing.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Create POST /api/payments
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badInput(c, err.Error())
	}
	payment, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// List GET /api/payments?customer_id=...&limit=20&offset=0
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badInput(c, "invalid paging parameters")
	}
	list, err := h.uc.List(c.Context(), c.Query("customer_id"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/payments/:id
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	payment, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(payment)
}

// Delete DELETE /api/payments/:id
// Removes the payment and rolls the affected invoices back.
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
