// internal/app/features/timetable/routes.go
package timetable

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter for the timetable; it is mounted under
// /api/timetable.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}
