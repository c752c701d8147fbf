package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog if the DB is empty (idempotent).
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Singleton settings row and the admin account must always exist.
	if err := seedSettings(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products: stock lives here; the CHECK backs the never-negative invariant
-- in addition to the guarded decrement.
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  category TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  old_price NUMERIC NOT NULL DEFAULT 0,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  image_url TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Orders: id doubles as the public tracking token (random UUID).
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','preparing','ready','sent')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_email      ON orders(LOWER(customer_email));
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

-- Line-item snapshots. Deliberately no FK to products: products can be
-- hard-deleted while the snapshot must survive. position preserves cart order.
CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  unit_price NUMERIC NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  PRIMARY KEY (order_id, position)
);

-- Carts, scoped to a browser session cookie.
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price_at_add NUMERIC NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Favorites (saved products), also session-scoped.
CREATE TABLE IF NOT EXISTS favorites(
  session_id TEXT NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  created_at TEXT,
  PRIMARY KEY (session_id, product_id)
);

-- Site settings singleton (id is forced to 1).
CREATE TABLE IF NOT EXISTS site_settings(
  id INTEGER PRIMARY KEY CHECK (id = 1),
  address TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  facebook_url TEXT NOT NULL DEFAULT '',
  instagram_url TEXT NOT NULL DEFAULT '',
  updated_at TEXT
);

-- Users & sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,slug,category,description,price,old_price,stock,image_url) VALUES
	  ('prd-drill-01','Cordless Drill 18V','cordless-drill-18v','Power Tools','18V cordless drill with two batteries.',89.90,119.90,12,'products/prd-drill-01.jpg'),
	  ('prd-hammer-01','Claw Hammer 450g','claw-hammer-450g','Hand Tools','Forged steel head, fiberglass handle.',14.50,0,30,'products/prd-hammer-01.jpg'),
	  ('prd-saw-01','Circular Saw 1200W','circular-saw-1200w','Power Tools','1200W circular saw, 185mm blade.',74.00,0,5,'products/prd-saw-01.jpg'),
	  ('prd-level-01','Spirit Level 60cm','spirit-level-60cm','Measuring','Aluminium body, three vials.',9.90,12.90,0,'products/prd-level-01.jpg')`)

	return tx.Commit()
}

// seedSettings guarantees exactly one settings row (idempotent).
func seedSettings(db *sqlx.DB) error {
	_, err := db.Exec(`
		INSERT INTO site_settings(id, address, email, phone, facebook_url, instagram_url)
		SELECT 1, 'Rua das Ferramentas 12, Lisboa', 'contact@casaferro.test', '+351 210 000 000', '', ''
		WHERE NOT EXISTS (SELECT 1 FROM site_settings WHERE id = 1)
	`)
	return err
}

// seedUsers ensures a demo customer and the ADMIN account exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-maria", "maria@casaferro.test", "Maria", "USER", "Passw0rd!"),
		mk("u-admin", "admin@casaferro.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
