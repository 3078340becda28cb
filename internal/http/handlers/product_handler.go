package handlers

import (
	"vitrina/internal/log"
	"vitrina/internal/pricing"
	"vitrina/internal/services"
	"vitrina/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

const goneMessage = "This item is no longer available"

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFoundPage(c, goneMessage)
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || !p.Active {
		return notFoundPage(c, goneMessage)
	}
	return render(c, "product", fiber.Map{"P": p, "S": pricing.Summarize(p)})
}

// GET /api/v1/products/:id
func (h *ProductHandler) Summary(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "product")
	}
	s, err := h.Catalog.Summary(id)
	if err != nil {
		return apiError(c, "product.summary.fail", err)
	}
	return c.JSON(s)
}

// POST /api/v1/products/:id/match with {"selection": {"Color": "Rojo", ...}}
func (h *ProductHandler) Match(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "product")
	}
	var body struct {
		Selection map[string]string `json:"selection"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "selection")
	}
	sel, err := h.Catalog.MatchSelection(id, body.Selection)
	if err != nil {
		return apiError(c, "product.match.fail", err)
	}
	return c.JSON(sel)
}
