package repos

import "github.com/jmoiron/sqlx"

// StockRepo is the stock ledger: it owns the only concurrency-sensitive
// mutation in the system.
type StockRepo struct{ db *sqlx.DB }

func NewStockRepo(db *sqlx.DB) *StockRepo { return &StockRepo{db: db} }

// Decrement atomically subtracts qty units if enough stock exists. The
// check-and-decrement is a single conditional UPDATE so two concurrent
// checkouts can never oversell the same unit. ok=false means insufficient
// stock or unknown product; a non-nil error is an infrastructure failure.
func (r *StockRepo) Decrement(productID string, qty int) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE products
		SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock >= ?
	`, qty, productID, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Qty returns the current stock for a product. sql.ErrNoRows propagates for
// unknown products.
func (r *StockRepo) Qty(productID string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT stock FROM products WHERE id = ?`, productID)
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// SetQty overwrites the stock level (admin restock).
func (r *StockRepo) SetQty(productID string, qty int) error {
	_, err := r.db.Exec(`
		UPDATE products SET stock = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, qty, productID)
	return err
}
