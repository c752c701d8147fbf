package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"casaferro/internal/config"
	"casaferro/internal/http/handlers"
	"casaferro/internal/mail"
	"casaferro/internal/repos"
	"casaferro/internal/services"
)

// newTestApp builds a minimal app over a fresh seeded in-memory DB with the
// routes under test. CSRF and rate limiting are exercised separately and
// stay out of the way here.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	deps := handlers.NewDeps(db, config.Config{MediaDir: t.TempDir()}, authSvc, mail.LogMailer{})

	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/store", deps.CatalogHandler.Store)
	app.Get("/product/:slug", deps.CatalogHandler.Detail)
	app.Get("/favorites", deps.FavoriteHandler.List)
	app.Post("/favorites", deps.FavoriteHandler.Save)
	app.Post("/favorites/delete", deps.FavoriteHandler.Unsave)
	app.Get("/api/v1/availability", deps.StockHandler.Check)
	app.Get("/track", deps.TrackingHandler.Page)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/orders", deps.CheckoutHandler.Place)

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/orders", deps.AdminHandler.OrdersPage)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/products", deps.AdminHandler.ProductsPage)
	admin.Post("/products/:id/delete", deps.AdminHandler.DeleteProduct)
	admin.Post("/products/:id/stock", deps.AdminHandler.UpdateStock)
	admin.Get("/settings", deps.AdminHandler.SettingsPage)
	admin.Post("/settings", deps.AdminHandler.UpdateSettings)

	return app, db
}

func get(t *testing.T, app *fiber.App, path string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func sidCookie(v string) *http.Cookie {
	return &http.Cookie{Name: "sid", Value: v}
}

// asAdmin binds a session to the seeded admin account and returns its cookie.
func asAdmin(t *testing.T, db *sqlx.DB) *http.Cookie {
	t.Helper()
	if err := repos.NewUserRepo(db).BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatal(err)
	}
	return sidCookie("sid-admin")
}
