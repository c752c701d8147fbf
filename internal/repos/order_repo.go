package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"casaferro/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyOrder    = errors.New("order needs at least one line item")
	ErrMissingEmail  = errors.New("order needs a customer email")
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderDraft is everything checkout knows before the order exists.
type OrderDraft struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	Phone         string
	Address       string
	City          string
	Total         float64
	Items         []domain.OrderItem
}

// Create inserts the order header and its line-item snapshots in a single
// transaction, status pending. Items keep their slice order as position.
func (r *OrderRepo) Create(d OrderDraft) (domain.Order, error) {
	if d.CustomerEmail == "" {
		return domain.Order{}, ErrMissingEmail
	}
	if len(d.Items) == 0 {
		return domain.Order{}, ErrEmptyOrder
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, customer_name, customer_email, phone, address, city, total_amount, status, created_at)
	  VALUES
	    (?,  ?,             ?,              ?,     ?,       ?,    ?,            'pending', CURRENT_TIMESTAMP)
	`, d.ID, d.CustomerName, d.CustomerEmail, d.Phone, d.Address, d.City, d.Total); err != nil {
		return domain.Order{}, err
	}

	for i, it := range d.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, position, product_id, name, unit_price, qty)
		  VALUES(?, ?, ?, ?, ?, ?)
		`, d.ID, i, it.ProductID, it.Name, it.UnitPrice, it.Qty); err != nil {
			return domain.Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, err
	}
	return r.fetch(d.ID)
}

func (r *OrderRepo) fetch(id string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
		SELECT id, customer_name, customer_email, phone, address, city, total_amount, status, created_at
		FROM orders WHERE id = ?
	`, id); err != nil {
		if err == sql.ErrNoRows {
			return domain.Order{}, ErrOrderNotFound
		}
		return domain.Order{}, err
	}
	return o, nil
}

// Get returns the order and its items in cart order. Unknown ids come back
// as ErrOrderNotFound; the tracker must not say more than that.
func (r *OrderRepo) Get(id string) (domain.Order, []domain.OrderItem, error) {
	o, err := r.fetch(id)
	if err != nil {
		return domain.Order{}, nil, err
	}

	var items []domain.OrderItem
	if err := r.db.Select(&items, `
		SELECT order_id, position, product_id, name, unit_price, qty,
		       (qty * unit_price) AS subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, id); err != nil {
		return domain.Order{}, nil, err
	}

	return o, items, nil
}

// UpdateStatus sets the status and returns the updated row. Zero rows
// matched is a hard ErrOrderNotFound, never a silent no-op: the caller must
// be able to tell "nothing happened" from success.
func (r *OrderRepo) UpdateStatus(id, status string) (domain.Order, error) {
	res, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return domain.Order{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Order{}, err
	}
	if n == 0 {
		return domain.Order{}, ErrOrderNotFound
	}
	return r.fetch(id)
}

// ListByEmail returns the orders owned by a customer, newest first.
// Ownership is an exact email match.
func (r *OrderRepo) ListByEmail(email string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT id, customer_name, customer_email, phone, address, city, total_amount, status, created_at
		FROM orders
		WHERE LOWER(customer_email) = LOWER(?)
		ORDER BY datetime(created_at) DESC, id
	`, email)
	return out, err
}

// ListAll returns recent orders for the admin surface, newest first.
func (r *OrderRepo) ListAll(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT id, customer_name, customer_email, phone, address, city, total_amount, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC, id
		LIMIT ?
	`, limit)
	return out, err
}

// LatestByEmail returns the customer's most recent order, used to prefill
// the checkout form.
func (r *OrderRepo) LatestByEmail(email string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
		SELECT id, customer_name, customer_email, phone, address, city, total_amount, status, created_at
		FROM orders
		WHERE LOWER(customer_email) = LOWER(?)
		ORDER BY datetime(created_at) DESC
		LIMIT 1
	`, email)
	if err == sql.ErrNoRows {
		return domain.Order{}, ErrOrderNotFound
	}
	return o, err
}
