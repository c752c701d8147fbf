package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "casaferro/internal/log"
	"casaferro/internal/repos"
	"casaferro/internal/services"
	"casaferro/internal/validate"
)

type CatalogHandler struct {
	Catalog  *services.CatalogService
	Settings *repos.SettingsRepo
}

// Home renders the landing page with contact data from the settings
// singleton and the latest products.
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	settings, err := h.Settings.Get()
	if err != nil {
		applog.Error(c, "home.settings", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Something went wrong"})
	}
	products, err := h.Catalog.List("", 0, "", 1, 8)
	if err != nil {
		applog.Error(c, "home.products", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Something went wrong"})
	}
	return render(c, "home", fiber.Map{"Settings": settings, "Products": products})
}

// Store lists products with optional category, max-price and text filters.
func (h *CatalogHandler) Store(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Query("category"))
	q := ""
	if raw := c.Query("q"); raw != "" {
		if v, ok := validate.Q(raw); ok {
			q = strings.ToLower(v)
		}
	}
	maxPrice := 0.0
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			maxPrice = v
		}
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))

	products, err := h.Catalog.List(category, maxPrice, q, page, 24)
	if err != nil {
		applog.Error(c, "store.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the store"})
	}
	categories, err := h.Catalog.Categories()
	if err != nil {
		applog.Error(c, "store.categories", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the store"})
	}
	return render(c, "store", fiber.Map{
		"Products":   products,
		"Categories": categories,
		"Category":   category,
		"Q":          q,
		"MaxPrice":   maxPrice,
	})
}

// Detail renders a product page looked up by its unique slug.
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.GetBySlug(slug)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"Product": p})
}

// Contact renders the contact page from the settings singleton.
func (h *CatalogHandler) Contact(c *fiber.Ctx) error {
	settings, err := h.Settings.Get()
	if err != nil {
		applog.Error(c, "contact.settings", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Something went wrong"})
	}
	return render(c, "contact", fiber.Map{"Settings": settings})
}
