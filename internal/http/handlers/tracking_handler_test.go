package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"casaferro/internal/domain"
	"casaferro/internal/repos"
)

func seedOrder(t *testing.T, db *sqlx.DB) domain.Order {
	t.Helper()
	o, err := repos.NewOrderRepo(db).Create(repos.OrderDraft{
		ID:            uuid.NewString(),
		CustomerName:  "Maria",
		CustomerEmail: "maria@casaferro.test",
		Phone:         "+351 210 000 000",
		Address:       "Rua Um 1",
		City:          "Lisboa",
		Total:         89.90,
		Items: []domain.OrderItem{
			{ProductID: "prd-drill-01", Name: "Cordless Drill 18V", UnitPrice: 89.90, Qty: 1},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestTracking_KnownIDShowsStatus(t *testing.T) {
	app, db := newTestApp(t)
	o := seedOrder(t, db)

	resp := get(t, app, "/track?id="+o.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	page := body(t, resp)
	if !strings.Contains(page, o.ID) || !strings.Contains(page, "pending") {
		t.Fatalf("page missing order details:\n%s", page)
	}
	if !strings.Contains(page, "Cordless Drill 18V") {
		t.Fatal("page missing line items")
	}
}

func TestTracking_MissesReadIdentically(t *testing.T) {
	app, db := newTestApp(t)
	seedOrder(t, db)

	// a well-formed unknown uuid and a malformed id must be told apart by
	// nobody: same generic answer for both
	miss1 := get(t, app, "/track?id="+uuid.NewString())
	miss2 := get(t, app, "/track?id=abc';--")

	if miss1.StatusCode != http.StatusOK || miss2.StatusCode != http.StatusOK {
		t.Fatalf("status %d / %d", miss1.StatusCode, miss2.StatusCode)
	}
	p1, p2 := body(t, miss1), body(t, miss2)
	if !strings.Contains(p1, "No order found") || !strings.Contains(p2, "No order found") {
		t.Fatal("misses must show the generic not-found message")
	}
	if strings.Contains(p2, "malformed") || strings.Contains(p2, "invalid") {
		t.Fatal("malformed ids must not get a distinct message")
	}
}

func TestTracking_NoPartialMatch(t *testing.T) {
	app, db := newTestApp(t)
	o := seedOrder(t, db)

	// a prefix of a real id is not a credential
	resp := get(t, app, "/track?id="+o.ID[:8])
	page := body(t, resp)
	if strings.Contains(page, "pending") {
		t.Fatal("prefix lookup must not resolve an order")
	}
	if !strings.Contains(page, "No order found") {
		t.Fatal("want generic not-found")
	}
}

func TestTracking_NoQueryShowsForm(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/track")
	page := body(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if strings.Contains(page, "No order found") {
		t.Fatal("empty form must not show an error")
	}
}
