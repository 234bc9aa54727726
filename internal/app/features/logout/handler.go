// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/hallbook/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler signs console operators out.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Serve handles POST /logout. Signing out an anonymous session is a
// no-op, not an error.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Error("session clear failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
