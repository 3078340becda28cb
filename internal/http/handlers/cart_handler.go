package handlers

import (
	"errors"

	applog "vitrina/internal/log"
	"vitrina/internal/services"
	"vitrina/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

// POST /cart with productId, optional variantId, qty.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	variantID := ""
	if raw := c.FormValue("variantId"); raw != "" {
		if variantID, ok = validate.ID(raw); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "variantId"})
			return c.Status(fiber.StatusBadRequest).SendString("invalid variantId")
		}
	}
	qty := validate.Qty(c.FormValue("qty"))

	if _, err := h.Cart.Add(sid, productID, variantID, qty); err != nil {
		switch {
		case errors.Is(err, services.ErrVariantRequired):
			return c.Redirect("/product/" + productID + "?err=variant")
		case errors.Is(err, services.ErrUnavailable):
			return c.Redirect("/product/" + productID + "?err=unavailable")
		}
		code, msg := statusFor(err)
		if code == fiber.StatusInternalServerError {
			return err
		}
		return c.Status(code).SendString(msg)
	}
	return c.Redirect("/cart")
}

// POST /cart/:item/qty with delta=+1/-1.
func (h *CartHandler) Qty(c *fiber.Ctx) error {
	sid := ensureSID(c)
	item, ok := validate.ItemID(c.Params("item"))
	delta := validate.Delta(c.FormValue("delta"))
	if !ok || delta == 0 {
		applog.Security(c, "validation.fail", map[string]any{"field": "delta"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid quantity change")
	}
	if _, err := h.Cart.UpdateQuantity(sid, item, delta); err != nil {
		return err
	}
	return c.Redirect("/cart")
}

// POST /cart/:item/delete
func (h *CartHandler) Delete(c *fiber.Ctx) error {
	sid := ensureSID(c)
	item, ok := validate.ItemID(c.Params("item"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "item"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid item")
	}
	if _, err := h.Cart.Remove(sid, item); err != nil {
		return err
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		return err
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

// GET /api/v1/cart
func (h *CartHandler) API(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		return apiError(c, "cart.view.fail", err)
	}
	return c.JSON(cv)
}
