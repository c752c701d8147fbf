package handlers

import (
	"github.com/gofiber/fiber/v2"

	"casaferro/internal/domain"
	applog "casaferro/internal/log"
	"casaferro/internal/repos"
)

// AccountHandler lists the signed-in customer's orders. Ownership is a
// match on the authenticated email; the surface is read-only.
type AccountHandler struct {
	Repo *repos.OrderRepo
}

func (h *AccountHandler) Orders(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Orders not available"})
	}
	orders, err := h.Repo.ListByEmail(u.Email)
	if err != nil {
		applog.Error(c, "account.orders.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "account", fiber.Map{"Orders": orders})
}
