package handlers

import (
	"casaferro/internal/config"
	"casaferro/internal/mail"
	"casaferro/internal/repos"
	"casaferro/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CatalogHandler  *CatalogHandler
	StockHandler    *StockHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	TrackingHandler *TrackingHandler
	AccountHandler  *AccountHandler
	FavoriteHandler *FavoriteHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, mailer mail.Mailer) *Deps {
	prodRepo := repos.NewProductRepo(db)
	stockRepo := repos.NewStockRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	favRepo := repos.NewFavoriteRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	stockSvc := services.NewStockService(stockRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, stockRepo, orderRepo, mailer)
	favSvc := services.NewFavoriteService(favRepo)

	return &Deps{
		CatalogHandler:  &CatalogHandler{Catalog: catalogSvc, Settings: settingsRepo},
		StockHandler:    &StockHandler{Stock: stockSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		CheckoutHandler: &CheckoutHandler{Cart: cartSvc, Checkout: checkoutSvc, Orders: orderRepo},
		TrackingHandler: &TrackingHandler{Orders: orderRepo},
		AccountHandler:  &AccountHandler{Repo: orderRepo},
		FavoriteHandler: &FavoriteHandler{Favs: favSvc},
		AdminHandler: &AdminHandler{
			Orders:   orderRepo,
			Products: prodRepo,
			Stock:    stockRepo,
			Settings: settingsRepo,
			Auth:     auth,
			MediaDir: cfg.MediaDir,
		},
	}
}
