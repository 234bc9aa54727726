// internal/app/scheduler/errors.go
package scheduler

import (
	"errors"
	"fmt"

	"github.com/dalemusser/hallbook/internal/domain/models"
)

var (
	// ErrNotPermitted is returned when the requester lacks the privilege
	// for an operation. It deliberately carries no detail about existing
	// bookings so unauthorized callers learn nothing about the schedule.
	ErrNotPermitted = errors.New("not permitted")

	// ErrNotFound is returned when a booking ID does not exist. Callers
	// cannot distinguish "already removed" from "never existed".
	ErrNotFound = errors.New("no such booking")
)

// ConflictError reports that a requested slot collides with an existing
// booking. Blocking is the earliest-starting booking among the conflicts.
type ConflictError struct {
	Blocking models.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot occupied by booking %s (%s %s)",
		e.Blocking.ID, e.Blocking.Date,
		Interval{Start: e.Blocking.StartMin, End: e.Blocking.EndMin})
}

// InvalidIntervalError reports a malformed date or time range. It is a
// request failure, never a scheduling conflict.
type InvalidIntervalError struct {
	Reason string
}

func (e *InvalidIntervalError) Error() string { return "invalid interval: " + e.Reason }
