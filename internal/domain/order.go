package domain

// Order statuses, in intended progression. The admin surface may move an
// order to any valid status; only enum membership is enforced.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusSent      = "sent"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusSent:
		return true
	}
	return false
}

// Order is the durable checkout record. The id doubles as the public
// tracking token, so it must be a random UUID, never sequential.
type Order struct {
	ID            string  `db:"id"`
	CustomerName  string  `db:"customer_name"`
	CustomerEmail string  `db:"customer_email"`
	Phone         string  `db:"phone"`
	Address       string  `db:"address"`
	City          string  `db:"city"`
	Total         float64 `db:"total_amount"`
	Status        string  `db:"status"`
	CreatedAt     string  `db:"created_at"`
}

// OrderItem is an immutable snapshot of name/price/qty captured at order
// time; later product edits or deletions never affect it.
type OrderItem struct {
	OrderID   string  `db:"order_id"`
	Position  int     `db:"position"`
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	UnitPrice float64 `db:"unit_price"`
	Qty       int     `db:"qty"`
	Subtotal  float64 `db:"subtotal"`
}
