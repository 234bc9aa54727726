// internal/app/features/bookings/types.go
package bookings

import (
	"github.com/dalemusser/hallbook/internal/app/scheduler"
	"github.com/dalemusser/hallbook/internal/domain/models"
)

// bookingRequest is the JSON body of POST /api/bookings. The chat
// transport has already authenticated the user; user_id is its verdict.
type bookingRequest struct {
	UserID int64  `json:"user_id"`
	Date   string `json:"date"`  // YYYY-MM-DD
	Start  string `json:"start"` // HH:MM
	End    string `json:"end"`   // HH:MM
	Label  string `json:"label,omitempty"`
}

// bookingJSON is the wire form of a booking.
type bookingJSON struct {
	ID     string `json:"id"`
	UserID int64  `json:"user_id"`
	Date   string `json:"date"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Label  string `json:"label,omitempty"`
}

// outcomeResponse reports a booking or cancellation decision. Outcome is
// one of "accepted", "conflict", "invalid", "forbidden", "not_found",
// "cancelled".
type outcomeResponse struct {
	Outcome           string       `json:"outcome"`
	Booking           *bookingJSON `json:"booking,omitempty"`
	Conflict          *bookingJSON `json:"conflict,omitempty"`
	Reason            string       `json:"reason,omitempty"`
	DurabilityWarning bool         `json:"durability_warning,omitempty"`
}

func toJSON(b models.Booking) *bookingJSON {
	return &bookingJSON{
		ID:     b.ID,
		UserID: b.UserID,
		Date:   b.Date,
		Start:  scheduler.FormatClock(b.StartMin),
		End:    scheduler.FormatClock(b.EndMin),
		Label:  b.Label,
	}
}
