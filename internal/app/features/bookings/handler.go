// internal/app/features/bookings/handler.go
package bookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/hallbook/internal/app/scheduler"
	"github.com/dalemusser/hallbook/internal/app/system/limits"
	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// Handler serves the booking operations for the chat-transport and CLI
// collaborators.
type Handler struct {
	Core     *scheduler.Core
	Sanitize *bluemonday.Policy
	Log      *zap.Logger
}

// NewHandler constructs a bookings Handler. Labels are free text typed by
// chat users, so they pass through a strict sanitizer before storage.
func NewHandler(core *scheduler.Core, logger *zap.Logger) *Handler {
	return &Handler{
		Core:     core,
		Sanitize: bluemonday.StrictPolicy(),
		Log:      logger,
	}
}

// Create handles POST /api/bookings.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxBookingBodySize)

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, outcomeResponse{Outcome: "invalid", Reason: "malformed request body"})
		return
	}

	date, err := scheduler.ParseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, outcomeResponse{Outcome: "invalid", Reason: err.Error()})
		return
	}
	iv, err := scheduler.ParseInterval(req.Start, req.End)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, outcomeResponse{Outcome: "invalid", Reason: err.Error()})
		return
	}

	label := strings.TrimSpace(h.Sanitize.Sanitize(req.Label))
	if runes := []rune(label); len(runes) > limits.MaxLabelLength {
		label = string(runes[:limits.MaxLabelLength])
	}

	res, err := h.Core.RequestBooking(r.Context(), req.UserID, date, iv, label)
	if err != nil {
		h.writeOutcomeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, outcomeResponse{
		Outcome:           "accepted",
		Booking:           toJSON(res.Booking),
		DurabilityWarning: res.DurabilityWarning,
	})
}

// Cancel handles DELETE /api/bookings/{bookingID}. force=true asks for
// the administrator override and is refused for non-admins.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingID")
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, outcomeResponse{Outcome: "invalid", Reason: "user_id must be numeric"})
		return
	}
	force := r.URL.Query().Get("force") == "true"

	res, err := h.Core.CancelBooking(r.Context(), userID, bookingID, force)
	if err != nil {
		h.writeOutcomeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcomeResponse{
		Outcome:           "cancelled",
		Booking:           toJSON(res.Booking),
		DurabilityWarning: res.DurabilityWarning,
	})
}

// ListForDate handles GET /api/bookings?date=YYYY-MM-DD. Read access is
// ungated: plain users may view the schedule even though they cannot
// book.
func (h *Handler) ListForDate(w http.ResponseWriter, r *http.Request) {
	date, err := scheduler.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, outcomeResponse{Outcome: "invalid", Reason: err.Error()})
		return
	}

	out := []*bookingJSON{}
	for _, b := range h.Core.QueryDate(date) {
		out = append(out, toJSON(b))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeOutcomeError maps the scheduler error taxonomy onto HTTP statuses.
// The forbidden response is deliberately detail-free so unauthorized
// callers learn nothing about the schedule.
func (h *Handler) writeOutcomeError(w http.ResponseWriter, err error) {
	var (
		conflict *scheduler.ConflictError
		invalid  *scheduler.InvalidIntervalError
	)
	switch {
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, outcomeResponse{
			Outcome:  "conflict",
			Conflict: toJSON(conflict.Blocking),
		})
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusUnprocessableEntity, outcomeResponse{Outcome: "invalid", Reason: invalid.Reason})
	case errors.Is(err, scheduler.ErrNotPermitted):
		writeJSON(w, http.StatusForbidden, outcomeResponse{Outcome: "forbidden", Reason: "not permitted"})
	case errors.Is(err, scheduler.ErrNotFound):
		writeJSON(w, http.StatusNotFound, outcomeResponse{Outcome: "not_found", Reason: "no such booking"})
	default:
		h.Log.Error("booking operation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, outcomeResponse{Outcome: "error", Reason: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
