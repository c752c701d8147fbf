package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"casaferro/internal/domain"
	applog "casaferro/internal/log"
	"casaferro/internal/repos"
	"casaferro/internal/services"
	"casaferro/internal/validate"
)

type AdminHandler struct {
	Orders   *repos.OrderRepo
	Products *repos.ProductRepo
	Stock    *repos.StockRepo
	Settings *repos.SettingsRepo
	Auth     *services.AuthService
	MediaDir string
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	return render(c, "admin_dashboard", fiber.Map{})
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Orders.ListAll(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": ords})
}

// POST /admin/orders/:id/status
//
// A zero-rows update is an explicit failure here: the page re-renders from
// the authoritative list so the admin never sees the value that was not
// applied (the server-side counterpart of an optimistic-update rollback).
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status := c.FormValue("status")
	if id == "" || !domain.ValidStatus(status) {
		return c.Status(400).SendString("missing id or invalid status")
	}
	updated, err := h.Orders.UpdateStatus(id, status)
	if err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		ords, lerr := h.Orders.ListAll(100)
		if lerr != nil {
			return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not update order"})
		}
		msg := "Could not update order status"
		if errors.Is(err, repos.ErrOrderNotFound) {
			msg = "Order not found; nothing was changed"
		}
		return c.Status(fiber.StatusBadRequest).Render("admin_orders", fiber.Map{"Orders": ords, "Err": msg})
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": updated.ID, "status": updated.Status})
	return c.Redirect("/admin/orders")
}

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	prods, err := h.Products.List("", 0, "", 200, 0)
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "admin_products", fiber.Map{"Products": prods})
}

// POST /admin/products creates a product from the multipart form, storing
// the uploaded image under the media dir.
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("invalid name")
	}
	category, _ := validate.Name(c.FormValue("category"))
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return c.Status(400).SendString("invalid price")
	}
	stock, ok := validate.Stock(c.FormValue("stock"))
	if !ok {
		return c.Status(400).SendString("invalid stock")
	}
	description := strings.TrimSpace(c.FormValue("description"))

	id := "prd-" + uuid.NewString()[:8]

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		switch ext {
		case ".jpg", ".jpeg", ".png", ".webp":
		default:
			return c.Status(400).SendString("unsupported image type")
		}
		rel := filepath.Join("products", id+ext)
		if err := c.SaveFile(file, filepath.Join(h.MediaDir, rel)); err != nil {
			applog.Error(c, "admin.products.upload.fail", err, map[string]any{"product": id})
			return c.Status(500).SendString("could not store image")
		}
		imageURL = rel
	}

	slug, err := h.uniqueSlug(name)
	if err != nil {
		applog.Error(c, "admin.products.slug.fail", err, nil)
		return c.Status(500).SendString("could not save product")
	}

	p := domain.Product{
		ID:          id,
		Name:        name,
		Slug:        slug,
		Category:    category,
		Description: description,
		Price:       price,
		Stock:       stock,
		ImageURL:    imageURL,
	}
	if err := h.Products.Create(p); err != nil {
		applog.Error(c, "admin.products.create.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not save product")
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product": id, "slug": slug})
	return c.Redirect("/admin/products")
}

// uniqueSlug derives a slug from the name, appending a short random suffix
// when the plain form is already taken.
func (h *AdminHandler) uniqueSlug(name string) (string, error) {
	slug := validate.Slugify(name)
	taken, err := h.Products.SlugTaken(slug)
	if err != nil {
		return "", err
	}
	if !taken {
		return slug, nil
	}
	return fmt.Sprintf("%s-%s", slug, uuid.NewString()[:6]), nil
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Products.Delete(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id/stock sets the stock level (restock).
func (h *AdminHandler) UpdateStock(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	qty, okQty := validate.Stock(c.FormValue("stock"))
	if !ok || !okQty {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Stock.SetQty(id, qty); err != nil {
		applog.Error(c, "admin.stock.save.fail", err, map[string]any{"product": id, "qty": qty})
		return c.Status(400).SendString("could not save stock")
	}
	applog.Audit(c, "admin.stock.save", map[string]any{"product": id, "qty": qty})
	return c.Redirect("/admin/products")
}

// GET /admin/settings
func (h *AdminHandler) SettingsPage(c *fiber.Ctx) error {
	s, err := h.Settings.Get()
	if err != nil {
		applog.Error(c, "admin.settings.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load settings"})
	}
	return render(c, "admin_settings", fiber.Map{"Settings": s})
}

// POST /admin/settings updates the singleton contact/social fields and,
// when the password fields are filled, rotates the admin credential.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return c.Status(400).SendString("invalid contact email")
	}
	s := domain.Settings{
		Address:      strings.TrimSpace(c.FormValue("address")),
		Email:        email,
		Phone:        strings.TrimSpace(c.FormValue("phone")),
		FacebookURL:  strings.TrimSpace(c.FormValue("facebook_url")),
		InstagramURL: strings.TrimSpace(c.FormValue("instagram_url")),
	}
	if err := h.Settings.Update(s); err != nil {
		applog.Error(c, "admin.settings.save.fail", err, nil)
		return c.Status(400).SendString("could not save settings")
	}

	oldPass := c.FormValue("old_password")
	newPass := c.FormValue("new_password")
	if oldPass != "" || newPass != "" {
		if !validate.Password(newPass) {
			return c.Status(400).SendString("new password is too weak")
		}
		u, _ := c.Locals("user").(*domain.User)
		if u == nil {
			return c.Status(403).SendString("not signed in")
		}
		if err := h.Auth.ChangePassword(u.Email, oldPass, newPass); err != nil {
			applog.Security(c, "admin.settings.password.fail", map[string]any{"user": u.ID})
			return c.Status(400).SendString("current password did not match")
		}
		applog.Audit(c, "admin.settings.password", map[string]any{"user": u.ID})
	}

	applog.Audit(c, "admin.settings.save", nil)
	return c.Redirect("/admin/settings")
}
