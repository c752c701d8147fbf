package handlers

import (
	"github.com/gofiber/fiber/v2"

	"casaferro/internal/services"
	"casaferro/internal/validate"
)

type StockHandler struct {
	Stock *services.StockService
}

// Check answers GET /api/v1/availability?productId=...
func (h *StockHandler) Check(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing or invalid productId",
		})
	}

	avail, err := h.Stock.CheckAvailability(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not check availability",
		})
	}
	return c.JSON(avail)
}
