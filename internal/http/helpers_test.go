package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"vitrina/internal/config"
	"vitrina/internal/domain"
	"vitrina/internal/http/handlers"
	"vitrina/internal/plan"
	"vitrina/internal/repos"
	"vitrina/internal/services"
)

const (
	ownerEmail = "owner@vitrina.test"
	ownerPass  = "Sup3r-secret!"
	ownerSID   = "sid-owner"
)

func testConfig(features ...string) config.Config {
	if features == nil {
		features = []string{plan.FeatureVariants}
	}
	return config.Config{
		DBDSN:      ":memory:",
		MediaDir:   "../../web/media",
		StoreName:  "Dulce Hogar",
		StorePhone: "+57 300 123 4567",
		Features:   features,
		Limits:     plan.Limits{MaxProducts: 3, MaxCategories: 3},
	}
}

// newApp wires the full route table behind the same middleware chain as
// the binary, minus access logging and the global limiter.
func newApp(t *testing.T, cfg config.Config) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.SeedOwner(db, ownerEmail, "Owner", ownerPass); err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	authSvc := services.NewAuthService(repos.NewUserRepo(db))

	app := fiber.New(fiber.Config{
		Views:        handlers.NewEngine("../../web/templates"),
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	app.Use(handlers.AttachUser(authSvc))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next:           func(c *fiber.Ctx) bool { return c.Is("json") },
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})
	handlers.Mount(app, handlers.NewDeps(db, cfg, authSvc))
	return app, db
}

// loginOwner binds ownerSID to the seeded owner account.
func loginOwner(t *testing.T, db *sqlx.DB) {
	t.Helper()
	users := repos.NewUserRepo(db)
	u, err := users.ByEmail(ownerEmail)
	if err != nil {
		t.Fatalf("owner missing: %v", err)
	}
	if err := users.BindSession(ownerSID, u.ID); err != nil {
		t.Fatalf("bind session: %v", err)
	}
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func csrfToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := extractCookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}

// postForm sends a form with the CSRF token and, when set, the session cookie.
func postForm(t *testing.T, app *fiber.App, path, csrfTok, sid, form string) *http.Response {
	t.Helper()
	body := "csrf=" + csrfTok
	if form != "" {
		body += "&" + form
	}
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// doJSON sends a JSON request and decodes a JSON answer into out when given.
func doJSON(t *testing.T, app *fiber.App, method, path, sid, body string, out any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return resp
}

func variantID(t *testing.T, db *sqlx.DB, productID, title string) string {
	t.Helper()
	p, err := repos.NewProductRepo(db).Get(productID)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range p.Variants {
		if v.Title == title {
			return v.ID
		}
	}
	t.Fatalf("variant %q not found", title)
	return ""
}

func seededProduct(t *testing.T, db *sqlx.DB, id string) domain.Product {
	t.Helper()
	p, err := repos.NewProductRepo(db).Get(id)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	UserID string         `json:"user_id"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
