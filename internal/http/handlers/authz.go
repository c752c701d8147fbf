package handlers

import (
	applog "casaferro/internal/log"
	"casaferro/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates the back office. An anonymous visitor is sent to the
// login page; a signed-in customer without the ADMIN role gets a hard 403
// and a security log entry.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || u.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireUser enforces that a customer is signed in; otherwise redirect to
// login. Used for the account page (order history).
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
