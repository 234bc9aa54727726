// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	SessionName = "hallbook-session"

	isAuthKey   = "is_authenticated"
	operatorKey = "operator"
)

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

// SessionUser is the signed-in console operator cached in the session and
// injected into r.Context(). Operators act with administrator privilege;
// chat-side users never have sessions (their identity arrives as a
// user_id supplied by the transport).
type SessionUser struct {
	Operator string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the operator & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// InitSessionStore initializes the global session Store. When no session
// key is configured, a random one is generated for this process: sessions
// then die with the process, which is acceptable for dev but logged so
// production deployments notice.
//
// The secure flag controls Secure cookies and the SameSite mode: None for
// cross-site HTTPS in production, Lax for local dev over http.
func InitSessionStore(sessionKey, domain string, secure bool, logger *zap.Logger) error {
	key := []byte(sessionKey)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		logger.Warn("no session key configured; generated an ephemeral one (sessions reset on restart)")
	} else if len(key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(key)))
	}

	store := sessions.NewCookieStore(key)
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts
	Store = store

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))
	return nil
}

// SignIn marks the session as an authenticated operator session.
func SignIn(w http.ResponseWriter, r *http.Request, operator string) error {
	sess, _ := Store.Get(r, SessionName)
	sess.Values[isAuthKey] = true
	sess.Values[operatorKey] = operator
	return sess.Save(r, w)
}

// SignOut clears the session.
func SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := Store.Get(r, SessionName)
	sess.Options.MaxAge = -1
	sess.Values = make(map[interface{}]interface{})
	return sess.Save(r, w)
}

// LoadSessionUser injects the operator into context if signed in.
// If the session store has not been initialized yet, it is a no-op.
func LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Store == nil {
			next.ServeHTTP(w, r)
			return
		}

		sess, _ := Store.Get(r, SessionName)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{Operator: getString(sess, operatorKey)}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOperator ensures a signed-in operator is in context (set by
// LoadSessionUser). API callers get a plain 401; there are no HTML pages
// to redirect to.
func RequireOperator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithTestUser injects an operator into the request context, bypassing
// the session middleware. Test helper only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
