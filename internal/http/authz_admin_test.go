package handlers_test

import (
	"net/http"
	"testing"
)

func TestAdminGuardRequiresOwner(t *testing.T) {
	app, db := newApp(t, testConfig())

	if r := doJSON(t, app, "GET", "/admin/inventory", "", "", nil); r.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous expected 401, got %d", r.StatusCode)
	}
	if r := doJSON(t, app, "GET", "/admin/inventory", "sid-shopper", "", nil); r.StatusCode != http.StatusForbidden {
		t.Fatalf("shopper expected 403, got %d", r.StatusCode)
	}

	loginOwner(t, db)
	if r := doJSON(t, app, "GET", "/admin/inventory", ownerSID, "", nil); r.StatusCode != http.StatusOK {
		t.Fatalf("owner expected 200, got %d", r.StatusCode)
	}
}

func TestAdminDeniedIsLogged(t *testing.T) {
	app, _ := newApp(t, testConfig())
	entries := captureLogs(t, func() {
		doJSON(t, app, "PUT", "/admin/products/camiseta-logo/options", "sid-shopper", `[]`, nil)
	})
	e, ok := findAction(entries, "access.denied.admin")
	if !ok {
		t.Fatal("expected access.denied.admin log")
	}
	if e.Level != "warn" {
		t.Fatalf("denials log at warn, got %q", e.Level)
	}
}
