// internal/app/features/login/handler.go
package login

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/hallbook/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler signs console operators in. The console is how administrators
// manage role lists from a browser; chat users never sign in here.
type Handler struct {
	// PasswordHash is the bcrypt hash of the console password from
	// config. When empty, console sign-in is disabled entirely.
	PasswordHash string
	Log          *zap.Logger
}

func NewHandler(passwordHash string, logger *zap.Logger) *Handler {
	return &Handler{PasswordHash: passwordHash, Log: logger}
}

type loginRequest struct {
	Operator string `json:"operator"`
	Password string `json:"password"`
}

// Serve handles POST /login. Wrong password and disabled console both
// come back as the same 401 to avoid confirming which one it was.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	if h.PasswordHash == "" || !verifyPassword(h.PasswordHash, req.Password) {
		h.Log.Warn("console sign-in refused", zap.String("operator", req.Operator))
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	operator := req.Operator
	if operator == "" {
		operator = "operator"
	}
	if err := auth.SignIn(w, r, operator); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.Log.Info("console operator signed in", zap.String("operator", operator))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "operator": operator})
}
