package handlers

import (
	"strings"

	applog "casaferro/internal/log"
	"casaferro/internal/services"
	"casaferro/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type FavoriteHandler struct {
	Favs *services.FavoriteService
}

// localPath keeps the post-save redirect on this site: only a same-site
// path is accepted, anything else (absolute URLs, scheme-relative //host)
// falls back to the favorites page.
func localPath(ref string) string {
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return ref
	}
	return "/favorites"
}

func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	items, err := h.Favs.List(ensureSID(c))
	if err != nil {
		applog.Error(c, "favorites.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load favorites"})
	}
	return render(c, "favorites", fiber.Map{"Items": items})
}

func (h *FavoriteHandler) Save(c *fiber.Ctx) error {
	pid := c.FormValue("productId")
	if _, ok := validate.ID(pid); !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Favs.Save(ensureSID(c), pid); err != nil {
		applog.Error(c, "favorites.save.fail", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Could not save item")
	}
	applog.Audit(c, "favorites.save", map[string]any{"product": pid})
	return c.Redirect(localPath(c.Get("Referer")))
}

func (h *FavoriteHandler) Unsave(c *fiber.Ctx) error {
	pid := c.FormValue("productId")
	if _, ok := validate.ID(pid); !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Favs.Unsave(ensureSID(c), pid); err != nil {
		applog.Error(c, "favorites.unsave.fail", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Could not remove item")
	}
	applog.Audit(c, "favorites.unsave", map[string]any{"product": pid})
	return c.Redirect("/favorites")
}
