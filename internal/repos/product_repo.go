package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"casaferro/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, slug, category, description, price, old_price, stock, image_url,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) GetBySlug(slug string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE slug = ?`, slug)
	return p, err
}

// List returns products filtered by optional category, max price and text
// query, newest first.
func (r *ProductRepo) List(category string, maxPrice float64, q string, limit, offset int) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}
	if maxPrice > 0 {
		where += ` AND price <= ?`
		args = append(args, maxPrice)
	}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		like := "%" + strings.ToLower(q) + "%"
		args = append(args, like, like)
	}

	query := `SELECT ` + productCols + ` FROM products WHERE ` + where + `
	  ORDER BY created_at DESC, id
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, query, args...)
	return out, err
}

// Categories returns the distinct non-empty categories in use.
func (r *ProductRepo) Categories() ([]string, error) {
	var out []string
	err := r.db.Select(&out, `
		SELECT DISTINCT category FROM products
		WHERE category != ''
		ORDER BY category
	`)
	return out, err
}

func (r *ProductRepo) SlugTaken(slug string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE slug = ?`, slug); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a new product (admin action).
func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
		INSERT INTO products(id, name, slug, category, description, price, old_price, stock, image_url, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.Name, p.Slug, p.Category, p.Description, p.Price, p.OldPrice, p.Stock, p.ImageURL)
	return err
}

// Delete hard-deletes a product. Order line items are snapshots and are not
// touched; cart and favorite rows cascade.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}
