package handlers

import (
	applog "vitrina/internal/log"
	"vitrina/internal/services"
	"vitrina/internal/validate"
	"vitrina/internal/variants"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler is the owner's JSON API for catalog and order upkeep.
type AdminHandler struct {
	Catalog  *services.CatalogService
	OrderSvc *services.OrderService
}

// POST /admin/options/validate
func (h *AdminHandler) ValidateOptions(c *fiber.Ctx) error {
	_, res := variants.DecodeOptions(c.Body())
	return c.JSON(res)
}

// PUT /admin/products/:id/options
func (h *AdminHandler) SetOptions(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "product")
	}
	opts, res := variants.DecodeOptions(c.Body())
	if !res.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid options", "validation": res})
	}
	out, err := h.Catalog.SetOptions(id, opts)
	if err != nil {
		if out.Validation.Errors != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid options", "validation": out.Validation})
		}
		return apiError(c, "admin.options.fail", err)
	}
	orphanIDs := make([]string, 0, len(out.Orphaned))
	for _, v := range out.Orphaned {
		orphanIDs = append(orphanIDs, v.ID)
	}
	applog.Audit(c, "admin.options.save", map[string]any{
		"product":  id,
		"variants": len(out.Variants),
		"orphaned": orphanIDs,
		"priced":   out.Priced,
	})
	return c.JSON(out)
}

type productForm struct {
	CategoryID     string  `json:"category_id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	ImageURL       string  `json:"image_url"`
	Price          float64 `json:"price"`
	StockQuantity  int     `json:"stock_quantity"`
	TrackInventory bool    `json:"track_inventory"`
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var in productForm
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body")
	}
	name, ok := validate.Name(in.Name, 80)
	if !ok {
		return badRequest(c, "name")
	}
	if in.CategoryID != "" {
		if _, ok := validate.ID(in.CategoryID); !ok {
			return badRequest(c, "category_id")
		}
	}
	if !validate.Price(in.Price) {
		return badRequest(c, "price")
	}
	if !validate.Stock(in.StockQuantity) {
		return badRequest(c, "stock_quantity")
	}
	p, err := h.Catalog.CreateProduct(services.NewProduct{
		CategoryID:     in.CategoryID,
		Name:           name,
		Description:    in.Description,
		ImageURL:       in.ImageURL,
		Price:          in.Price,
		StockQuantity:  in.StockQuantity,
		TrackInventory: in.TrackInventory,
	})
	if err != nil {
		return apiError(c, "admin.products.create.fail", err)
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PATCH /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "product")
	}
	var patch services.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "body")
	}
	p, err := h.Catalog.UpdateProduct(id, patch)
	if err != nil {
		return apiError(c, "admin.products.update.fail", err)
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product": id})
	return c.JSON(p)
}

// POST /admin/categories with {"name": "..."}
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body")
	}
	name, ok := validate.Name(in.Name, 40)
	if !ok {
		return badRequest(c, "name")
	}
	cat, err := h.Catalog.CreateCategory(name)
	if err != nil {
		return apiError(c, "admin.categories.create.fail", err)
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"category": cat.ID})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// PATCH /admin/products/:id/variants/:vid
func (h *AdminHandler) UpdateVariant(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "product")
	}
	vid, ok := validate.ID(c.Params("vid"))
	if !ok {
		return badRequest(c, "variant")
	}
	var patch services.VariantPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "body")
	}
	v, err := h.Catalog.UpdateVariant(id, vid, patch)
	if err != nil {
		return apiError(c, "admin.variants.update.fail", err)
	}
	applog.Audit(c, "admin.variants.update", map[string]any{"product": id, "variant": vid})
	return c.JSON(v)
}

// GET /admin/orders?limit=N
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	ords, err := h.OrderSvc.Latest(validate.Limit(c.Query("limit")))
	if err != nil {
		return apiError(c, "admin.orders.list.fail", err)
	}
	return c.JSON(fiber.Map{"orders": ords})
}

// GET /admin/orders/:id
func (h *AdminHandler) Order(c *fiber.Ctx) error {
	o, lines, err := h.OrderSvc.Get(c.Params("id"))
	if err != nil {
		return apiError(c, "admin.orders.get.fail", err)
	}
	return c.JSON(fiber.Map{"order": o, "lines": lines})
}

// POST /admin/orders/:id/status with {"status": "CONFIRMED"}
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil || id == "" {
		return badRequest(c, "status")
	}
	if err := h.OrderSvc.SetStatus(id, in.Status); err != nil {
		return apiError(c, "admin.orders.update.fail", err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": in.Status})
	return c.JSON(fiber.Map{"id": id, "status": in.Status})
}
