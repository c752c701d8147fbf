package handlers

import (
	"time"

	"casaferro/internal/log"
	"casaferro/internal/services"
	"casaferro/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	return render(c, "login", fiber.Map{"Err": "", "CSRFToken": tok})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password", "CSRFToken": c.Cookies("csrf_")})
	}

	_, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password", "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/account")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
