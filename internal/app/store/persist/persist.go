// internal/app/store/persist/persist.go

// Package persist adapts the MongoDB stores to the scheduler's Persister
// contract. The scheduler stays ignorant of MongoDB; restart recovery is
// a single Load that reproduces roles and bookings field-for-field.
package persist

import (
	"context"

	"github.com/dalemusser/hallbook/internal/app/scheduler"
	bookingstore "github.com/dalemusser/hallbook/internal/app/store/bookings"
	rolestore "github.com/dalemusser/hallbook/internal/app/store/roles"
	"github.com/dalemusser/hallbook/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store implements scheduler.Persister over the roles and bookings
// collections.
type Store struct {
	roles    *rolestore.Store
	bookings *bookingstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{
		roles:    rolestore.New(db),
		bookings: bookingstore.New(db),
	}
}

// Roles exposes the underlying role store for transport-level lookups
// (e.g. username-based role management).
func (s *Store) Roles() *rolestore.Store { return s.roles }

func (s *Store) Load(ctx context.Context) (scheduler.Snapshot, error) {
	users, err := s.roles.All(ctx)
	if err != nil {
		return scheduler.Snapshot{}, err
	}
	bookings, err := s.bookings.All(ctx)
	if err != nil {
		return scheduler.Snapshot{}, err
	}

	snap := scheduler.Snapshot{Bookings: bookings}
	for _, u := range users {
		snap.Roles = append(snap.Roles, scheduler.RoleEntry{
			UserID:        u.UserID,
			Username:      u.Username,
			IsAdmin:       u.IsAdmin,
			IsWhitelisted: u.IsWhitelisted,
		})
	}
	return snap, nil
}

func (s *Store) SaveBooking(ctx context.Context, b models.Booking) error {
	return s.bookings.Upsert(ctx, b)
}

func (s *Store) RemoveBooking(ctx context.Context, bookingID string) error {
	return s.bookings.Delete(ctx, bookingID)
}

func (s *Store) SaveRole(ctx context.Context, e scheduler.RoleEntry) error {
	return s.roles.UpsertRole(ctx, e)
}

func (s *Store) SaveRoles(ctx context.Context, entries []scheduler.RoleEntry) error {
	return s.roles.UpsertRoles(ctx, entries)
}
