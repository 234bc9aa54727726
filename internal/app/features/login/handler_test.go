package login_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/hallbook/internal/app/features/login"
	"github.com/dalemusser/hallbook/internal/app/system/auth"
	"go.uber.org/zap"
)

func TestServe(t *testing.T) {
	if err := auth.InitSessionStore("0123456789abcdef0123456789abcdef", "", false, zap.NewNop()); err != nil {
		t.Fatalf("InitSessionStore failed: %v", err)
	}

	hash, err := login.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h := login.NewHandler(hash, zap.NewNop())

	// Good password → session cookie.
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"operator":"ops","password":"correct horse"}`))
	rec := httptest.NewRecorder()
	h.Serve(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("good password: got %d (%s)", rec.Code, rec.Body.String())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("sign-in set no session cookie")
	}

	// Wrong password → 401.
	req = httptest.NewRequest("POST", "/login", strings.NewReader(`{"password":"guess"}`))
	rec = httptest.NewRecorder()
	h.Serve(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestServeDisabledConsole(t *testing.T) {
	// No hash configured: every attempt is refused identically.
	h := login.NewHandler("", zap.NewNop())
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"password":""}`))
	rec := httptest.NewRecorder()
	h.Serve(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("disabled console: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
