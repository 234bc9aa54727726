package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/hallbook/internal/app/system/auth"
	"go.uber.org/zap"
)

func TestRequireOperator(t *testing.T) {
	handler := auth.RequireOperator(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	// No operator in context → 401.
	req := httptest.NewRequest("GET", "/api/roles", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// Operator in context → passes through.
	req = auth.WithTestUser(httptest.NewRequest("GET", "/api/roles", nil), &auth.SessionUser{Operator: "ops"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("operator: got %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestSignInSignOutRoundTrip(t *testing.T) {
	if err := auth.InitSessionStore("0123456789abcdef0123456789abcdef", "", false, zap.NewNop()); err != nil {
		t.Fatalf("InitSessionStore failed: %v", err)
	}

	// Sign in and capture the cookie.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	if err := auth.SignIn(rec, req, "ops"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn set no cookie")
	}

	// Replay the cookie through the middleware.
	var seen *auth.SessionUser
	handler := auth.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.CurrentUser(r)
	}))
	req = httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen == nil || seen.Operator != "ops" {
		t.Errorf("session user: got %+v, want operator %q", seen, "ops")
	}
}
