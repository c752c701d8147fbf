package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ensureSID returns the browser session id, minting the cookie on first
// contact. The cart and favorites are scoped to this value.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}
