package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"

	"casaferro/internal/config"
	"casaferro/internal/http/handlers"
	applog "casaferro/internal/log"
	"casaferro/internal/mail"
	"casaferro/internal/repos"
	"casaferro/internal/services"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Mail sink: Resend when a key is configured, log-only otherwise.
	var mailer mail.Mailer = mail.LogMailer{}
	if cfg.ResendAPIKey != "" {
		mailer = mail.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom, cfg.OperatorEmail)
	}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard; generous enough for product image uploads.
	app.Server().MaxRequestBodySize = 8 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ContextKey:     "csrf", // without this the token never reaches Locals
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /static -> ./web/static")
	log.Printf("[static] /media  -> %s", mediaDir)

	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(mediaDir, clean)
		return c.SendFile(full, true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc, mailer)

	// Public pages
	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/store", deps.CatalogHandler.Store)
	app.Get("/product/:slug", deps.CatalogHandler.Detail)
	app.Get("/contact", deps.CatalogHandler.Contact)

	// API
	api := app.Group("/api/v1")
	availLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/availability", availLimiter, deps.StockHandler.Check)

	// Cart & checkout
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Get("/checkout", deps.CheckoutHandler.Form)
	app.Post("/orders", deps.CheckoutHandler.Place)

	// Public order tracking (the full order id is the credential; throttled
	// to keep token guessing impractical on top of the UUID space)
	app.Get("/track", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.TrackingHandler.Page)

	// Account
	app.Get("/account", handlers.RequireUser(authSvc), deps.AccountHandler.Orders)

	// Favorites
	app.Get("/favorites", deps.FavoriteHandler.List)
	app.Post("/favorites", deps.FavoriteHandler.Save)
	app.Post("/favorites/delete", deps.FavoriteHandler.Unsave)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/orders", deps.AdminHandler.OrdersPage)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/products", deps.AdminHandler.ProductsPage)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Post("/products/:id/delete", deps.AdminHandler.DeleteProduct)
	admin.Post("/products/:id/stock", deps.AdminHandler.UpdateStock)
	admin.Get("/settings", deps.AdminHandler.SettingsPage)
	admin.Post("/settings", deps.AdminHandler.UpdateSettings)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
