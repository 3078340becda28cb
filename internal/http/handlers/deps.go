package handlers

import (
	"vitrina/internal/config"
	"vitrina/internal/repos"
	"vitrina/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	AdminHandler     *AdminHandler
	InventoryHandler *InventoryHandler
	AuthHandler      *AuthHandler
	Auth             *services.AuthService
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	// Cart edits and checkout of one session share a lock.
	cartLocks := services.NewKeyedMutex()
	// Option edits, variant edits and stock edits of one product share a lock.
	productLocks := services.NewKeyedMutex()

	catalogSvc := services.NewCatalogService(catRepo, prodRepo, cfg.Features, cfg.Limits, productLocks)
	invSvc := services.NewInventoryService(invRepo, prodRepo, productLocks)
	cartSvc := services.NewCartService(cartRepo, prodRepo, cartLocks)
	orderSvc := services.NewOrderService(cartRepo, prodRepo, orderRepo,
		services.Store{Name: cfg.StoreName, Phone: cfg.StorePhone}, cartLocks)

	return &Deps{
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		OrderHandler:     &OrderHandler{Order: orderSvc},
		AdminHandler:     &AdminHandler{Catalog: catalogSvc, OrderSvc: orderSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		AuthHandler:      &AuthHandler{Auth: auth},
		Auth:             auth,
	}
}
