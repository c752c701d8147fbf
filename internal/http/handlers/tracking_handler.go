package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "casaferro/internal/log"
	"casaferro/internal/repos"
	"casaferro/internal/validate"
)

// TrackingHandler is the public, unauthenticated status lookup. The full
// order id acts as a bearer token: exact match only, and every miss is the
// same generic not-found.
type TrackingHandler struct {
	Orders *repos.OrderRepo
}

func (h *TrackingHandler) Page(c *fiber.Ctx) error {
	raw := c.Query("id")
	if raw == "" {
		return render(c, "track", fiber.Map{})
	}

	id, ok := validate.TrackingID(raw)
	if !ok {
		applog.Security(c, "track.bad_id", nil)
		return render(c, "track", fiber.Map{"NotFound": true})
	}

	o, items, err := h.Orders.Get(id)
	if err != nil {
		// Unknown id and any lookup error read identically.
		return render(c, "track", fiber.Map{"NotFound": true})
	}
	return render(c, "track", fiber.Map{"Order": o, "Items": items})
}
