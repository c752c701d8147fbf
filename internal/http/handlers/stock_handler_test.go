package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestAvailabilityEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []struct {
		product string
		status  string
	}{
		{"prd-drill-01", "IN_STOCK"},   // seeded stock 12
		{"prd-saw-01", "IN_STOCK"},     // stock 5, boundary
		{"prd-level-01", "OUT_OF_STOCK"},
		{"prd-unknown", "OUT_OF_STOCK"}, // no existence leak
	}
	for _, tc := range cases {
		resp := get(t, app, "/api/v1/availability?productId="+tc.product)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status %d", tc.product, resp.StatusCode)
		}
		var out struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		if out.Status != tc.status {
			t.Fatalf("%s: want %s, got %s", tc.product, tc.status, out.Status)
		}
	}
}

func TestAvailabilityEndpoint_BadProductID(t *testing.T) {
	app, _ := newTestApp(t)

	for _, q := range []string{"", "?productId=", "?productId=no%20spaces%20allowed"} {
		resp := get(t, app, "/api/v1/availability"+q)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("query %q: want 400, got %d", q, resp.StatusCode)
		}
	}
}
