package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/snowva/business-hub/internal/application/billing"
	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/application/usecase"
	"github.com/snowva/business-hub/pkg/validate"
)

// CustomerHandler handles customer accounts, their addresses, their
// price overrides and their statements.
type CustomerHandler struct {
	uc         *usecase.CustomerUseCase
	statements *billing.StatementUseCase
	documents  *billing.DocumentUseCase
}

// NewCustomerHandler builds the handler.
func NewCustomerHandler(
	uc *usecase.CustomerUseCase,
	statements *billing.StatementUseCase,
	documents *billing.DocumentUseCase,
) *CustomerHandler {
	return &CustomerHandler{uc: uc, statements: statements, documents: documents}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badInput(c, err.Error())
	}
	customer, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List GET /api/customers?type=retail&limit=20&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badInput(c, "invalid paging parameters")
	}
	list, err := h.uc.List(c.Context(), c.Query("type"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/customers/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	customer, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(customer)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badInput(c, err.Error())
	}
	customer, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(customer)
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddAddress POST /api/customers/:id/addresses
func (h *CustomerHandler) AddAddress(c *fiber.Ctx) error {
	var in dto.AddressRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badInput(c, err.Error())
	}
	addr, err := h.uc.AddAddress(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(addr)
}

// UpdateAddress PUT /api/customers/:id/addresses/:addressID
func (h *CustomerHandler) UpdateAddress(c *fiber.Ctx) error {
	var in dto.AddressRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badInput(c, err.Error())
	}
	addr, err := h.uc.UpdateAddress(c.Context(), c.Params("id"), c.Params("addressID"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(addr)
}

// DeleteAddress DELETE /api/customers/:id/addresses/:addressID
func (h *CustomerHandler) DeleteAddress(c *fiber.Ctx) error {
	if err := h.uc.DeleteAddress(c.Context(), c.Params("id"), c.Params("addressID")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetPrice POST /api/customers/:id/prices
func (h *CustomerHandler) SetPrice(c *fiber.Ctx) error {
	var in dto.CustomerPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badInput(c, err.Error())
	}
	price, err := h.uc.SetPrice(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(price)
}

// DeletePrice DELETE /api/customers/:id/prices/:priceID
func (h *CustomerHandler) DeletePrice(c *fiber.Ctx) error {
	if err := h.uc.DeletePrice(c.Context(), c.Params("id"), c.Params("priceID")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Statement GET /api/customers/:id/statement?from=2025-01-01&to=2025-01-31
func (h *CustomerHandler) Statement(c *fiber.Ctx) error {
	st, err := h.statements.Get(c.Context(), c.Params("id"), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(st)
}

// StatementPDF GET /api/customers/:id/statement/pdf?from=...&to=...
func (h *CustomerHandler) StatementPDF(c *fiber.Ctx) error {
	data, filename, err := h.documents.StatementPDF(c.Context(), c.Params("id"), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
