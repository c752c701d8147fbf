package repos

import (
	"github.com/jmoiron/sqlx"

	"casaferro/internal/domain"
)

// FavoriteRepo stores the session-scoped saved-products list.
type FavoriteRepo struct{ db *sqlx.DB }

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

func (r *FavoriteRepo) Save(sessionID, productID string) error {
	_, err := r.db.Exec(`
		INSERT INTO favorites(session_id, product_id, created_at)
		VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(session_id, product_id) DO NOTHING
	`, sessionID, productID)
	return err
}

func (r *FavoriteRepo) Unsave(sessionID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM favorites WHERE session_id = ? AND product_id = ?`, sessionID, productID)
	return err
}

func (r *FavoriteRepo) List(sessionID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
		SELECT `+productCols+`
		FROM products
		WHERE id IN (SELECT product_id FROM favorites WHERE session_id = ?)
		ORDER BY created_at DESC, id
	`, sessionID)
	return out, err
}
