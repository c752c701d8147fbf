package domain

type Product struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Slug        string  `db:"slug"`
	Category    string  `db:"category"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	OldPrice    float64 `db:"old_price"`
	Stock       int     `db:"stock"`
	ImageURL    string  `db:"image_url"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}

// Settings is the site-wide singleton row shown on public pages and edited
// through the admin settings form.
type Settings struct {
	ID           int    `db:"id"`
	Address      string `db:"address"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	FacebookURL  string `db:"facebook_url"`
	InstagramURL string `db:"instagram_url"`
	UpdatedAt    string `db:"updated_at"`
}
