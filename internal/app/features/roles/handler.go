// internal/app/features/roles/handler.go
package roles

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/hallbook/internal/app/scheduler"
	"github.com/dalemusser/hallbook/internal/app/system/auth"
	"github.com/dalemusser/hallbook/internal/app/system/limits"
	"github.com/dalemusser/hallbook/internal/app/system/timeouts"
	"github.com/dalemusser/hallbook/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UserLookup resolves usernames to user records for username-based role
// management. Satisfied by the roles store.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Handler serves role-list management for administrators: individual
// grants/revokes, username-based grants, bulk ID-list loads, and the
// whitelist/admin listing.
type Handler struct {
	Core  *scheduler.Core
	Users UserLookup
	Log   *zap.Logger
}

func NewHandler(core *scheduler.Core, users UserLookup, logger *zap.Logger) *Handler {
	return &Handler{Core: core, Users: users, Log: logger}
}

// requireAdmin gates the role-management routes. A signed-in console
// operator passes outright; the chat transport instead supplies
// acting_user_id, which must hold the admin flag. The refusal is a
// generic 403 with no detail.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		actingID, err := strconv.ParseInt(r.URL.Query().Get("acting_user_id"), 10, 64)
		if err == nil && h.Core.IsAdmin(actingID) {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, "not permitted", http.StatusForbidden)
	})
}

// List handles GET /api/roles: every known user with either flag set.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	out := []roleEntryJSON{}
	for _, e := range h.Core.Roles() {
		if !e.IsAdmin && !e.IsWhitelisted {
			continue
		}
		name := e.Username
		if name == "" {
			name = "<?>"
		}
		out = append(out, roleEntryJSON{
			UserID:        e.UserID,
			Username:      name,
			IsAdmin:       e.IsAdmin,
			IsWhitelisted: e.IsWhitelisted,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Set handles PUT /api/roles/{userID}.
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "user ID must be numeric", http.StatusUnprocessableEntity)
		return
	}

	req, ok := h.decodeSetRole(w, r)
	if !ok {
		return
	}

	res := h.Core.SetRole(r.Context(), userID, scheduler.Role(req.Role), req.Present, req.Username)
	writeJSON(w, http.StatusOK, setRoleResponse{
		UserID:            userID,
		Changed:           res.Changed,
		DurabilityWarning: res.DurabilityWarning,
	})
}

// SetByUsername handles PUT /api/roles/by-username/{username}, the
// username-flavored grant used when an admin knows a user only by their
// chat handle. The user must have interacted with the service before, or
// there is no ID to attach the role to.
func (h *Handler) SetByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	req, ok := h.decodeSetRole(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "no such user", http.StatusNotFound)
			return
		}
		h.Log.Error("username lookup failed", zap.String("username", username), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	res := h.Core.SetRole(r.Context(), u.UserID, scheduler.Role(req.Role), req.Present, u.Username)
	writeJSON(w, http.StatusOK, setRoleResponse{
		UserID:            u.UserID,
		Changed:           res.Changed,
		DurabilityWarning: res.DurabilityWarning,
	})
}

// BulkLoad handles POST /api/roles/{role}/bulk. The body is a plain-text
// ID-per-line list in the same format as the on-disk admin/whitelist
// files: '#' comments and blank lines are skipped, malformed lines are
// reported per line without aborting the rest.
func (h *Handler) BulkLoad(w http.ResponseWriter, r *http.Request) {
	role := scheduler.Role(chi.URLParam(r, "role"))
	if !scheduler.ValidRole(role) {
		http.Error(w, `role must be "admin" or "whitelisted"`, http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	body := http.MaxBytesReader(w, r.Body, limits.MaxRoleListSize)
	report, err := h.Core.BulkSetRoles(ctx, role, body)
	if err != nil {
		h.Log.Error("bulk role load failed", zap.String("role", string(role)), zap.Error(err))
		http.Error(w, "could not read role list", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) decodeSetRole(w http.ResponseWriter, r *http.Request) (setRoleRequest, bool) {
	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return req, false
	}
	if !scheduler.ValidRole(scheduler.Role(req.Role)) {
		http.Error(w, `role must be "admin" or "whitelisted"`, http.StatusUnprocessableEntity)
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
