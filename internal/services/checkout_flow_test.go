package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"casaferro/internal/mail"
	"casaferro/internal/repos"
	"casaferro/internal/services"
)

func memdbAll(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE products(id TEXT PRIMARY KEY, name TEXT, slug TEXT UNIQUE, category TEXT DEFAULT '',
	  description TEXT DEFAULT '', price NUMERIC, old_price NUMERIC DEFAULT 0,
	  stock INTEGER DEFAULT 0 CHECK (stock >= 0), image_url TEXT DEFAULT '',
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT);
	CREATE TABLE orders(id TEXT PRIMARY KEY, customer_name TEXT, customer_email TEXT,
	  phone TEXT DEFAULT '', address TEXT DEFAULT '', city TEXT DEFAULT '',
	  total_amount NUMERIC, status TEXT DEFAULT 'pending', created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE order_items(order_id TEXT, position INTEGER, product_id TEXT, name TEXT,
	  unit_price NUMERIC, qty INTEGER, PRIMARY KEY(order_id, position));
	CREATE TABLE carts(id TEXT PRIMARY KEY, session_id TEXT UNIQUE NOT NULL, updated_at TEXT);
	CREATE TABLE cart_items(cart_id TEXT, product_id TEXT, qty INTEGER, price_at_add NUMERIC,
	  position INTEGER DEFAULT 0, created_at TEXT, updated_at TEXT, PRIMARY KEY(cart_id, product_id));

	INSERT INTO products(id,name,slug,price,stock) VALUES
	  ('prd-a','Cordless Drill','cordless-drill',10.00,8),
	  ('prd-b','Claw Hammer','claw-hammer',5.00,4),
	  ('prd-c','Spirit Level','spirit-level',7.50,0);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

// fakeMailer records sends and can be told to fail.
type fakeMailer struct {
	sent []mail.OrderEmail
	err  error
}

func (m *fakeMailer) SendOrderEmails(e mail.OrderEmail) error {
	m.sent = append(m.sent, e)
	return m.err
}

type checkoutFixture struct {
	db     *sqlx.DB
	carts  *repos.CartRepo
	stock  *repos.StockRepo
	orders *repos.OrderRepo
	cart   *services.CartService
	mailer *fakeMailer
	svc    *services.CheckoutService
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	db := memdbAll(t)
	carts := repos.NewCartRepo(db)
	prods := repos.NewProductRepo(db)
	stock := repos.NewStockRepo(db)
	orders := repos.NewOrderRepo(db)
	mailer := &fakeMailer{}
	return &checkoutFixture{
		db:     db,
		carts:  carts,
		stock:  stock,
		orders: orders,
		cart:   services.NewCartService(carts, prods),
		mailer: mailer,
		svc:    services.NewCheckoutService(carts, stock, orders, mailer),
	}
}

var testContact = services.Contact{
	Name: "Maria", Email: "maria@example.com", Phone: "+351 210 000 000",
	Address: "Rua Um 1", City: "Lisboa",
}

func TestCheckout_PlacesOrderAndDecrementsStock(t *testing.T) {
	f := newCheckoutFixture(t)
	sid := "sess-1"

	if err := f.cart.Add(sid, "prd-a", 2); err != nil {
		t.Fatal(err)
	}
	if err := f.cart.Add(sid, "prd-b", 1); err != nil {
		t.Fatal(err)
	}

	order, err := f.svc.Place(sid, testContact)
	if err != nil {
		t.Fatal(err)
	}
	if order.ID == "" {
		t.Fatal("no order id")
	}
	if order.Status != "pending" {
		t.Fatalf("want pending, got %s", order.Status)
	}
	if order.Total != 25.00 {
		t.Fatalf("want total 25.00, got %v", order.Total)
	}

	// items keep cart order and snapshot prices
	_, items, err := f.orders.Get(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
	if items[0].ProductID != "prd-a" || items[0].Qty != 2 || items[0].UnitPrice != 10.00 {
		t.Fatalf("bad first item: %+v", items[0])
	}
	if items[1].ProductID != "prd-b" || items[1].Qty != 1 || items[1].UnitPrice != 5.00 {
		t.Fatalf("bad second item: %+v", items[1])
	}

	// stock decremented: 8-2=6, 4-1=3
	if qty, _ := f.stock.Qty("prd-a"); qty != 6 {
		t.Fatalf("want prd-a stock 6, got %d", qty)
	}
	if qty, _ := f.stock.Qty("prd-b"); qty != 3 {
		t.Fatalf("want prd-b stock 3, got %d", qty)
	}

	// cart cleared
	cv, err := f.cart.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d items", len(cv.Items))
	}

	// both notification recipients are handled in one send
	if len(f.mailer.sent) != 1 {
		t.Fatalf("want 1 mail dispatch, got %d", len(f.mailer.sent))
	}
	if f.mailer.sent[0].OrderID != order.ID || f.mailer.sent[0].Total != 25.00 {
		t.Fatalf("bad mail payload: %+v", f.mailer.sent[0])
	}
}

func TestCheckout_InsufficientStockKeepsPendingOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	sid := "sess-2"

	// prd-c has stock 0 and comes first; nothing after it may be touched.
	if err := f.cart.Add(sid, "prd-c", 1); err != nil {
		t.Fatal(err)
	}
	if err := f.cart.Add(sid, "prd-a", 2); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.Place(sid, testContact)
	if err == nil {
		t.Fatal("expected stock error")
	}
	var stockErr *services.StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("want StockError, got %v", err)
	}
	if stockErr.Product != "Spirit Level" {
		t.Fatalf("failure should name the item, got %q", stockErr.Product)
	}

	// the order stays persisted in pending
	orders, err := f.orders.ListByEmail(testContact.Email)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 || orders[0].Status != "pending" {
		t.Fatalf("want one pending order, got %+v", orders)
	}

	// no stock mutated for any item
	if qty, _ := f.stock.Qty("prd-c"); qty != 0 {
		t.Fatalf("prd-c stock changed: %d", qty)
	}
	if qty, _ := f.stock.Qty("prd-a"); qty != 8 {
		t.Fatalf("prd-a stock changed: %d", qty)
	}

	// no notification, cart untouched
	if len(f.mailer.sent) != 0 {
		t.Fatal("mail must not be sent on stock failure")
	}
	cv, _ := f.cart.View(sid)
	if len(cv.Items) != 2 {
		t.Fatalf("cart must survive a failed checkout, got %d items", len(cv.Items))
	}
}

func TestCheckout_EmptyCartRejectedBeforeAnyWrite(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.Place("sess-3", testContact)
	if !errors.Is(err, services.ErrCartEmpty) {
		t.Fatalf("want ErrCartEmpty, got %v", err)
	}

	var n int
	if err := f.db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("no order may exist, got %d", n)
	}
}

func TestCheckout_TotalFixedAgainstLaterPriceChanges(t *testing.T) {
	f := newCheckoutFixture(t)
	sid := "sess-4"

	if err := f.cart.Add(sid, "prd-a", 1); err != nil {
		t.Fatal(err)
	}
	order, err := f.svc.Place(sid, testContact)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.db.Exec(`UPDATE products SET price = 99.99, name = 'Renamed' WHERE id = 'prd-a'`); err != nil {
		t.Fatal(err)
	}

	got, items, err := f.orders.Get(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != 10.00 {
		t.Fatalf("total must stay 10.00, got %v", got.Total)
	}
	if items[0].Name != "Cordless Drill" || items[0].UnitPrice != 10.00 {
		t.Fatalf("snapshot must be immutable: %+v", items[0])
	}
}

func TestCheckout_MailFailureDoesNotFailCheckout(t *testing.T) {
	f := newCheckoutFixture(t)
	f.mailer.err = errors.New("smtp down")
	sid := "sess-5"

	if err := f.cart.Add(sid, "prd-b", 1); err != nil {
		t.Fatal(err)
	}
	order, err := f.svc.Place(sid, testContact)
	if err != nil {
		t.Fatalf("mail failure must not fail checkout: %v", err)
	}
	if order.Status != "pending" {
		t.Fatalf("want pending, got %s", order.Status)
	}

	// checkout completed: stock decremented and cart cleared
	if qty, _ := f.stock.Qty("prd-b"); qty != 3 {
		t.Fatalf("want stock 3, got %d", qty)
	}
	cv, _ := f.cart.View(sid)
	if len(cv.Items) != 0 {
		t.Fatal("cart should be cleared")
	}
}
