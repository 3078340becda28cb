package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "vitrina/internal/log"
	"vitrina/internal/services"
	"vitrina/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

// GET /admin/inventory
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	rep, err := h.Inv.Report()
	if err != nil {
		return apiError(c, "admin.inventory.list.fail", err)
	}
	return c.JSON(rep)
}

// POST /admin/products/:id/stock with {"variant_id": "...", "qty": 3};
// variant_id is left out for simple products.
func (h *InventoryHandler) SetStock(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "product")
	}
	var in struct {
		VariantID string `json:"variant_id"`
		Qty       *int   `json:"qty"`
	}
	if err := c.BodyParser(&in); err != nil || in.Qty == nil || !validate.Stock(*in.Qty) {
		return badRequest(c, "qty")
	}
	if in.VariantID != "" {
		if _, ok := validate.ID(in.VariantID); !ok {
			return badRequest(c, "variant_id")
		}
	}
	if err := h.Inv.SetStock(pid, in.VariantID, *in.Qty); err != nil {
		return apiError(c, "admin.inventory.save.fail", err)
	}
	applog.Audit(c, "admin.inventory.save", map[string]any{"product": pid, "variant": in.VariantID, "qty": *in.Qty})
	return c.JSON(fiber.Map{"product_id": pid, "variant_id": in.VariantID, "qty": *in.Qty})
}
