package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "vitrina/internal/log"
)

// Mount registers the storefront, JSON API, auth and owner routes.
func Mount(app *fiber.App, d *Deps) {
	// Storefront
	app.Get("/", d.CategoryHandler.Home)
	app.Get("/category/:id", d.CategoryHandler.List)
	app.Get("/product/:id", d.ProductHandler.Detail)

	app.Get("/cart", d.CartHandler.View)
	app.Post("/cart", d.CartHandler.Add)
	app.Post("/cart/:item/qty", d.CartHandler.Qty)
	app.Post("/cart/:item/delete", d.CartHandler.Delete)
	app.Post("/checkout", d.OrderHandler.Place)
	app.Get("/orders", d.OrderHandler.History)

	// API
	api := app.Group("/api/v1")
	matchLimiter := limiter.New(limiter.Config{
		Max:        30,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|match"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.match.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/products/:id", d.ProductHandler.Summary)
	api.Post("/products/:id/match", matchLimiter, d.ProductHandler.Match)
	api.Get("/cart", d.CartHandler.API)

	// Auth (login throttled)
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	app.Post("/logout", d.AuthHandler.Logout)

	// Owner
	admin := app.Group("/admin", RequireOwner(d.Auth))
	admin.Post("/options/validate", d.AdminHandler.ValidateOptions)
	admin.Post("/categories", d.AdminHandler.CreateCategory)
	admin.Post("/products", d.AdminHandler.CreateProduct)
	admin.Patch("/products/:id", d.AdminHandler.UpdateProduct)
	admin.Put("/products/:id/options", d.AdminHandler.SetOptions)
	admin.Patch("/products/:id/variants/:vid", d.AdminHandler.UpdateVariant)
	admin.Post("/products/:id/stock", d.InventoryHandler.SetStock)
	admin.Get("/inventory", d.InventoryHandler.Report)
	admin.Get("/orders", d.AdminHandler.ListOrders)
	admin.Get("/orders/:id", d.AdminHandler.Order)
	admin.Post("/orders/:id/status", d.AdminHandler.UpdateOrderStatus)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return notFoundPage(c, "Page not found")
	})
}
