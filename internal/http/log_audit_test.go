package handlers_test

import (
	"testing"
)

func TestLoginEventsAreLogged(t *testing.T) {
	app, _ := newApp(t, testConfig())
	tok := csrfToken(t, app)

	entries := captureLogs(t, func() {
		postForm(t, app, "/login", tok, "", "email="+ownerEmail+"&password=Wr0ng-pass!")
		postForm(t, app, "/login", tok, "", "email="+ownerEmail+"&password="+ownerPass)
	})
	fail, ok := findAction(entries, "auth.login.fail")
	if !ok || fail.Fields["reason"] != "bad_credentials" {
		t.Fatalf("expected auth.login.fail with reason, got %+v", fail)
	}
	if _, ok := findAction(entries, "auth.login.success"); !ok {
		t.Fatal("expected auth.login.success log")
	}
	for _, e := range entries {
		for _, v := range e.Fields {
			if s, ok := v.(string); ok && s == ownerPass {
				t.Fatal("password leaked into logs")
			}
		}
	}
}

func TestCheckoutIsAudited(t *testing.T) {
	app, _ := newApp(t, testConfig())
	tok := csrfToken(t, app)
	postForm(t, app, "/cart", tok, "sid-a", "productId=torta-chocolate&qty=3")

	entries := captureLogs(t, func() {
		postForm(t, app, "/checkout", tok, "sid-a", "name=Ana")
	})
	e, ok := findAction(entries, "order.place")
	if !ok {
		t.Fatal("expected order.place audit log")
	}
	if e.Level != "audit" || e.Fields["total"] != 45000.0 {
		t.Fatalf("unexpected audit entry %+v", e)
	}
}

func TestAdminEditsCarryOwnerID(t *testing.T) {
	app, db := newApp(t, testConfig())
	loginOwner(t, db)

	entries := captureLogs(t, func() {
		doJSON(t, app, "POST", "/admin/categories", ownerSID, `{"name":"Postres"}`, nil)
	})
	e, ok := findAction(entries, "admin.categories.create")
	if !ok {
		t.Fatal("expected admin.categories.create audit log")
	}
	if e.UserID == "" {
		t.Fatal("admin audit entries should name the owner")
	}
}
