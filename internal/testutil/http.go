// internal/testutil/http.go
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/dalemusser/hallbook/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithOperator injects a signed-in console operator into the request
// context, bypassing the session middleware.
func WithOperator(r *http.Request) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{Operator: "test-operator"})
}

// NewOperatorRequest creates an HTTP request carrying an operator session.
func NewOperatorRequest(method, target string) *http.Request {
	return WithOperator(httptest.NewRequest(method, target, nil))
}
