package handlers

import (
	"strconv"

	applog "vitrina/internal/log"
	"vitrina/internal/pricing"
	"vitrina/internal/services"
	"vitrina/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// card is a product as listed on the storefront.
type card struct {
	ID       string
	Name     string
	ImageURL string
	Summary  pricing.Summary
}

func (h *CategoryHandler) Home(c *fiber.Ctx) error {
	return h.list(c, "")
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	catID, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "category"})
		return notFoundPage(c, "Category not found")
	}
	return h.list(c, catID)
}

func (h *CategoryHandler) list(c *fiber.Ctx, catID string) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return err
	}
	products, err := h.Catalog.ListProducts(catID, page, 12)
	if err != nil {
		return err
	}
	cards := make([]card, 0, len(products))
	for _, p := range products {
		if !p.Active {
			continue
		}
		cards = append(cards, card{ID: p.ID, Name: p.Name, ImageURL: p.ImageURL, Summary: pricing.Summarize(p)})
	}
	return render(c, "home", fiber.Map{"Categories": cats, "CategoryID": catID, "Products": cards})
}
