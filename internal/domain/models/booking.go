// internal/domain/models/booking.go
package models

import "time"

// Booking is one reserved slot in the auditorium.
//
// Date is the calendar day in "YYYY-MM-DD" form. StartMin and EndMin are
// minutes since midnight and describe the half-open interval
// [StartMin, EndMin): a booking ending at 11:00 does not collide with one
// starting at 11:00. ID is an opaque UUID assigned when the booking is
// accepted.
type Booking struct {
	ID       string `bson:"_id" json:"id"`
	UserID   int64  `bson:"user_id" json:"user_id"`
	Date     string `bson:"date" json:"date"`
	StartMin int    `bson:"start_min" json:"start_min"`
	EndMin   int    `bson:"end_min" json:"end_min"`
	Label    string `bson:"label,omitempty" json:"label,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Overlaps reports whether b and other collide on the same date using the
// half-open interval test.
func (b Booking) Overlaps(other Booking) bool {
	return b.Date == other.Date && b.StartMin < other.EndMin && other.StartMin < b.EndMin
}
