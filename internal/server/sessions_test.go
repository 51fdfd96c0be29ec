package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rank-tracker/internal/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func sessionRequest(t *testing.T, cookie *http.Cookie) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return httptest.NewRecorder(), req
}

func testSessionStore(t *testing.T, store *sessionStore) {
	t.Helper()
	rec, req := sessionRequest(t, nil)
	store.SetUser(rec, req, 42)
	cookie := sessionCookieFrom(t, rec)

	rec, req = sessionRequest(t, cookie)
	if got := store.UserID(rec, req); got != 42 {
		t.Fatalf("user id = %d, want 42", got)
	}

	store.SetFlash(rec, req, "hello")
	if got := store.PopFlash(rec, req); got != "hello" {
		t.Fatalf("flash = %q, want hello", got)
	}
	// Flash is one-shot.
	if got := store.PopFlash(rec, req); got != "" {
		t.Fatalf("second pop = %q, want empty", got)
	}
	// Popping the flash must not sign the user out.
	if got := store.UserID(rec, req); got != 42 {
		t.Fatalf("user id after flash = %d, want 42", got)
	}

	store.Destroy(rec, req)
	if got := store.UserID(rec, req); got != 0 {
		t.Fatalf("user id after destroy = %d, want 0", got)
	}
}

func TestSessionStoreInMemory(t *testing.T) {
	testSessionStore(t, newSessionStore(nil))
}

func TestSessionStoreDatabase(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	testSessionStore(t, newSessionStore(conn))

	// Destroy removes the row, it does not just blank it.
	var rows int64
	if err := conn.Model(&db.Session{}).Count(&rows).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if rows != 0 {
		t.Fatalf("session rows after destroy = %d, want 0", rows)
	}
}

func TestSessionCookieReused(t *testing.T) {
	store := newSessionStore(nil)
	rec, req := sessionRequest(t, nil)
	store.SetUser(rec, req, 1)
	cookie := sessionCookieFrom(t, rec)

	// A request that already carries the cookie gets no new one.
	rec, req = sessionRequest(t, cookie)
	_ = store.UserID(rec, req)
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("unexpected new cookie: %v", rec.Result().Cookies())
	}
}
