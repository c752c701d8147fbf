package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// CartRepo persists the session-scoped cart. Each browser session owns
// exactly one cart until checkout clears it.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type CartItemRow struct {
	ProductID  string  `db:"product_id"`
	Name       string  `db:"name"`
	Qty        int     `db:"qty"`
	PriceAtAdd float64 `db:"price_at_add"`
	Position   int     `db:"position"`
	Subtotal   float64 `db:"subtotal"`
}

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// UpsertItem adds qty of a product, capturing the price at add time. New
// lines are appended after existing ones so cart order is stable.
func (r *CartRepo) UpsertItem(cartID, productID string, qty int, price float64) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,product_id,qty,price_at_add,position,created_at)
		VALUES(?,?,?,?,
		  (SELECT COALESCE(MAX(position)+1,0) FROM cart_items WHERE cart_id = ?),
		  CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, productID, qty, price, cartID)
	return err
}

// Items returns the cart lines in the order they were added.
func (r *CartRepo) Items(cartID string) ([]CartItemRow, error) {
	var out []CartItemRow
	err := r.db.Select(&out, `
	  SELECT ci.product_id, p.name, ci.qty, ci.price_at_add, ci.position,
	         (ci.qty*ci.price_at_add) AS subtotal
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.position
	`, cartID)
	return out, err
}

func (r *CartRepo) Remove(cartID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	return err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
