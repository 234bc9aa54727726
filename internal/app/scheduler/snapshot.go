// internal/app/scheduler/snapshot.go
package scheduler

import (
	"context"

	"github.com/dalemusser/hallbook/internal/domain/models"
)

// RoleEntry is the durable form of one user's role membership.
type RoleEntry struct {
	UserID        int64
	Username      string
	IsAdmin       bool
	IsWhitelisted bool
}

// Snapshot carries the complete durable state of the scheduler: every
// booking and every role membership, field-for-field.
type Snapshot struct {
	Roles    []RoleEntry
	Bookings []models.Booking
}

// Persister is the durable-store contract the core depends on. The core
// loads once at startup and saves record-by-record after each accepted
// mutation.
//
// Save failures are durability warnings, not transaction failures: the
// core never rolls back an in-memory mutation because a save failed.
// In-memory state is the source of truth for the rest of the process
// lifetime; a restart reads the last successfully saved records.
type Persister interface {
	Load(ctx context.Context) (Snapshot, error)
	SaveBooking(ctx context.Context, b models.Booking) error
	RemoveBooking(ctx context.Context, bookingID string) error
	SaveRole(ctx context.Context, e RoleEntry) error
	SaveRoles(ctx context.Context, entries []RoleEntry) error
}
