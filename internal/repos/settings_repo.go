package repos

import (
	"github.com/jmoiron/sqlx"

	"casaferro/internal/domain"
)

// SettingsRepo reads and writes the single site_settings row. The schema
// pins id to 1, so there is never more than one.
type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) Get() (domain.Settings, error) {
	var s domain.Settings
	err := r.db.Get(&s, `
		SELECT id, address, email, phone, facebook_url, instagram_url,
		       COALESCE(updated_at,'') AS updated_at
		FROM site_settings WHERE id = 1
	`)
	return s, err
}

func (r *SettingsRepo) Update(s domain.Settings) error {
	_, err := r.db.Exec(`
		UPDATE site_settings
		SET address = ?, email = ?, phone = ?, facebook_url = ?, instagram_url = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, s.Address, s.Email, s.Phone, s.FacebookURL, s.InstagramURL)
	return err
}
