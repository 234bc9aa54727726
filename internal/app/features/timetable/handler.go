// internal/app/features/timetable/handler.go
package timetable

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/hallbook/internal/app/scheduler"
	"go.uber.org/zap"
)

// Handler serves the timetable used by calendar-rendering collaborators.
type Handler struct {
	Core *scheduler.Core
	Log  *zap.Logger
}

func NewHandler(core *scheduler.Core, logger *zap.Logger) *Handler {
	return &Handler{Core: core, Log: logger}
}

type entry struct {
	ID     string `json:"id"`
	UserID int64  `json:"user_id"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Label  string `json:"label,omitempty"`
}

type dayJSON struct {
	Date     string  `json:"date"`
	Bookings []entry `json:"bookings"`
}

type rangeResponse struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	Days []dayJSON `json:"days"`
}

// Serve handles GET /api/timetable?from=YYYY-MM-DD&to=YYYY-MM-DD and
// returns the booked days in the range, each day's bookings ordered by
// start time. Days without bookings are omitted; the calendar renderer
// fills in the blanks.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	from, err := scheduler.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "bad from date: want YYYY-MM-DD", http.StatusUnprocessableEntity)
		return
	}
	to, err := scheduler.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "bad to date: want YYYY-MM-DD", http.StatusUnprocessableEntity)
		return
	}
	if to < from {
		http.Error(w, "to date precedes from date", http.StatusUnprocessableEntity)
		return
	}

	resp := rangeResponse{From: string(from), To: string(to), Days: []dayJSON{}}
	var cur *dayJSON
	for _, b := range h.Core.QueryRange(from, to) {
		if cur == nil || cur.Date != b.Date {
			resp.Days = append(resp.Days, dayJSON{Date: b.Date, Bookings: []entry{}})
			cur = &resp.Days[len(resp.Days)-1]
		}
		cur.Bookings = append(cur.Bookings, entry{
			ID:     b.ID,
			UserID: b.UserID,
			Start:  scheduler.FormatClock(b.StartMin),
			End:    scheduler.FormatClock(b.EndMin),
			Label:  b.Label,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
