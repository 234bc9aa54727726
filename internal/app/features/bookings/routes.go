// internal/app/features/bookings/routes.go
package bookings

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter for booking operations; it is mounted
// under /api/bookings.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.ListForDate)
	r.Delete("/{bookingID}", h.Cancel)
	return r
}
