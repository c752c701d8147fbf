package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"casaferro/internal/domain"
	applog "casaferro/internal/log"
	"casaferro/internal/repos"
	"casaferro/internal/services"
	"casaferro/internal/validate"
)

type CheckoutHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Orders   *repos.OrderRepo
}

// Form renders the checkout page. For signed-in customers the contact
// fields are prefilled from their most recent order.
func (h *CheckoutHandler) Form(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}

	prefill := services.Contact{}
	if u, _ := c.Locals("user").(*domain.User); u != nil {
		prefill.Email = u.Email
		if last, err := h.Orders.LatestByEmail(u.Email); err == nil {
			prefill.Name = last.CustomerName
			prefill.Phone = last.Phone
			prefill.Address = last.Address
			prefill.City = last.City
		}
	}
	return render(c, "checkout", fiber.Map{"Cart": cv, "Prefill": prefill})
}

// Place runs the checkout. Every failure path produces a specific message:
// validation and empty-cart failures reject before any write, a stock
// failure names the item (the pending order stays persisted), and
// infrastructure failures read as a connectivity problem.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).SendString("please enter your name")
	}
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return c.Status(fiber.StatusBadRequest).SendString("please enter a valid email")
	}
	phone, ok := validate.Phone(c.FormValue("phone"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "phone"})
		return c.Status(fiber.StatusBadRequest).SendString("please enter a valid phone number")
	}
	address, ok := validate.Line(c.FormValue("address"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "address"})
		return c.Status(fiber.StatusBadRequest).SendString("please enter a delivery address")
	}
	city, ok := validate.Line(c.FormValue("city"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "city"})
		return c.Status(fiber.StatusBadRequest).SendString("please enter a city / postal code")
	}

	order, err := h.Checkout.Place(sid, services.Contact{
		Name: name, Email: email, Phone: phone, Address: address, City: city,
	})
	if err != nil {
		var stockErr *services.StockError
		switch {
		case errors.Is(err, services.ErrCartEmpty):
			return c.Status(fiber.StatusBadRequest).SendString("your cart is empty")
		case errors.As(err, &stockErr):
			applog.Security(c, "order.place.stock", map[string]any{"product": stockErr.Product})
			return c.Status(fiber.StatusConflict).SendString(stockErr.Error())
		default:
			applog.Error(c, "order.place.fail", err, nil)
			return c.Status(fiber.StatusInternalServerError).SendString("could not reach the order service, please try again")
		}
	}

	applog.Audit(c, "order.place", map[string]any{"order_id": order.ID, "total": order.Total})
	return render(c, "order_placed", fiber.Map{"Order": order})
}
