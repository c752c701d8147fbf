package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "casaferro/internal/log"
	"casaferro/internal/services"
	"casaferro/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		applog.Error(c, "cart.view", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product_id"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid product")
	}
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.Add(ensureSID(c), pid, qty); err != nil {
		applog.Error(c, "cart.add", err, map[string]any{"product": pid})
		return c.Status(fiber.StatusBadRequest).SendString("could not add to cart")
	}
	applog.Info(c, "cart.add", map[string]any{"product": pid, "qty": qty})
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid product")
	}
	if err := h.Cart.Remove(ensureSID(c), pid); err != nil {
		applog.Error(c, "cart.remove", err, map[string]any{"product": pid})
		return c.Status(fiber.StatusBadRequest).SendString("could not update cart")
	}
	return c.Redirect("/cart")
}
