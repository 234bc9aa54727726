// internal/app/features/roles/routes.go
package roles

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter for role management; it is mounted under
// /api/roles. Every route requires an administrator: a signed-in console
// operator or an acting_user_id holding the admin flag.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(h.requireAdmin)
	r.Get("/", h.List)
	r.Put("/by-username/{username}", h.SetByUsername)
	r.Put("/{userID}", h.Set)
	r.Post("/{role}/bulk", h.BulkLoad)
	return r
}
