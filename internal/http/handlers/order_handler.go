package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "vitrina/internal/log"
	"vitrina/internal/services"
	"vitrina/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

// POST /checkout records the order and sends the shopper to WhatsApp with
// the message prefilled.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	name, ok := validate.OptionalName(c.FormValue("name"), 60)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).SendString("name must be at most 60 characters")
	}

	rc, err := h.Order.Place(sid, name)
	if errors.Is(err, services.ErrEmptyCart) {
		return c.Redirect("/cart")
	}
	if err != nil {
		return err
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": rc.OrderID,
		"total":    rc.Total,
		"lines":    len(rc.Lines),
		"dropped":  rc.Dropped,
	})
	return c.Redirect(rc.Link, fiber.StatusSeeOther)
}

// GET /orders lists the orders this browser session has sent.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return render(c, "orders", fiber.Map{})
	}
	orders, err := h.Order.History(sid)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return err
	}
	return render(c, "orders", fiber.Map{"Orders": orders})
}
