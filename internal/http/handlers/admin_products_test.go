package handlers_test

import (
	"database/sql"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"casaferro/internal/repos"
)

func TestAdmin_RestockProduct(t *testing.T) {
	app, db := newTestApp(t)
	admin := asAdmin(t, db)

	resp := postForm(t, app, "/admin/products/prd-level-01/stock",
		url.Values{"stock": {"25"}}, admin)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want redirect, got %d", resp.StatusCode)
	}
	if qty, _ := repos.NewStockRepo(db).Qty("prd-level-01"); qty != 25 {
		t.Fatalf("want 25, got %d", qty)
	}

	resp = postForm(t, app, "/admin/products/prd-level-01/stock",
		url.Values{"stock": {"-3"}}, admin)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("negative stock must be rejected, got %d", resp.StatusCode)
	}
}

func TestAdmin_DeleteProductKeepsOrderSnapshots(t *testing.T) {
	app, db := newTestApp(t)
	admin := asAdmin(t, db)
	o := seedOrder(t, db) // snapshots prd-drill-01

	resp := postForm(t, app, "/admin/products/prd-drill-01/delete", nil, admin)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want redirect, got %d", resp.StatusCode)
	}

	if _, err := repos.NewProductRepo(db).Get("prd-drill-01"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("product should be gone, got %v", err)
	}

	// the order's line items still read back in full
	_, items, err := repos.NewOrderRepo(db).Get(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Name != "Cordless Drill 18V" || items[0].UnitPrice != 89.90 {
		t.Fatalf("snapshot must survive product deletion: %+v", items)
	}
}

func TestAdmin_UpdateSettings(t *testing.T) {
	app, db := newTestApp(t)
	admin := asAdmin(t, db)

	resp := postForm(t, app, "/admin/settings", url.Values{
		"address":       {"Av. Nova 99, Porto"},
		"email":         {"hello@casaferro.test"},
		"phone":         {"+351 220 000 000"},
		"facebook_url":  {"https://facebook.com/casaferro"},
		"instagram_url": {""},
	}, admin)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want redirect, got %d", resp.StatusCode)
	}

	s, err := repos.NewSettingsRepo(db).Get()
	if err != nil {
		t.Fatal(err)
	}
	if s.Address != "Av. Nova 99, Porto" || s.Email != "hello@casaferro.test" {
		t.Fatalf("settings not applied: %+v", s)
	}

	// the new contact data reaches the public pages
	page := body(t, get(t, app, "/"))
	if !strings.Contains(page, "Av. Nova 99, Porto") {
		t.Fatal("home footer missing updated address")
	}
}

func TestAdmin_SettingsRejectsWeakPassword(t *testing.T) {
	app, db := newTestApp(t)
	admin := asAdmin(t, db)

	resp := postForm(t, app, "/admin/settings", url.Values{
		"address":      {"Rua Um 1"},
		"email":        {"hello@casaferro.test"},
		"phone":        {"+351 210 000 000"},
		"old_password": {"Passw0rd!"},
		"new_password": {"weak"},
	}, admin)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(body(t, resp), "too weak") {
		t.Fatal("missing weak-password message")
	}
}
