// internal/app/scheduler/service.go
package scheduler

import (
	"context"
	"io"

	"github.com/dalemusser/hallbook/internal/app/policy/bookingpolicy"
	"github.com/dalemusser/hallbook/internal/domain/models"
	"go.uber.org/zap"
)

// Core is the booking scheduler: it owns the access registry and the slot
// ledger, gates every mutation through the booking policy, and flushes
// accepted mutations to the persister.
//
// Core is safe for use by concurrent request workers. The registry and
// ledger carry independent locks; no operation needs cross-structure
// atomicity. Persister calls happen after the relevant lock is released,
// and a failed save is reported as a durability warning rather than
// unwinding the in-memory mutation.
type Core struct {
	log      *zap.Logger
	registry *Registry
	ledger   *Ledger
	persist  Persister
}

// New constructs a Core around the given persister. Call Load before
// serving requests to restore durable state.
func New(persist Persister, logger *zap.Logger) *Core {
	return &Core{
		log:      logger,
		registry: NewRegistry(),
		ledger:   NewLedger(),
		persist:  persist,
	}
}

// Load restores registry and ledger state from the persister. A snapshot
// that violates the ledger invariant is a startup failure.
func (c *Core) Load(ctx context.Context) error {
	snap, err := c.persist.Load(ctx)
	if err != nil {
		return err
	}
	c.registry.LoadSnapshot(snap.Roles)
	if err := c.ledger.LoadSnapshot(snap.Bookings); err != nil {
		return err
	}
	c.log.Info("scheduler state loaded",
		zap.Int("roles", len(snap.Roles)),
		zap.Int("bookings", len(snap.Bookings)))
	return nil
}

// BookResult is the outcome of an accepted booking request.
type BookResult struct {
	Booking models.Booking
	// DurabilityWarning is set when the booking was accepted in memory
	// but the persister failed to record it.
	DurabilityWarning bool
}

// RequestBooking decides a booking request.
//
// The checks run in a fixed order: interval validation first (pure, leaks
// nothing), then the authorization gate, then the conflict scan. An
// unauthorized requester is turned away before the ledger is consulted,
// so conflict feedback never leaks schedule details to plain users.
func (c *Core) RequestBooking(ctx context.Context, userID int64, date Date, iv Interval, label string) (BookResult, error) {
	if err := iv.Validate(); err != nil {
		return BookResult{}, err
	}
	if !bookingpolicy.CanBook(c.registry.IsAdmin(userID), c.registry.IsWhitelisted(userID)) {
		return BookResult{}, ErrNotPermitted
	}

	b, err := c.ledger.Add(date, iv, userID, label)
	if err != nil {
		return BookResult{}, err
	}

	res := BookResult{Booking: b}
	if err := c.persist.SaveBooking(ctx, b); err != nil {
		c.log.Warn("booking accepted but not persisted",
			zap.String("booking_id", b.ID),
			zap.Error(err))
		res.DurabilityWarning = true
	}
	return res, nil
}

// CancelResult is the outcome of an accepted cancellation.
type CancelResult struct {
	Booking           models.Booking
	DurabilityWarning bool
}

// CancelBooking removes a booking. Owners cancel their own bookings;
// force lets administrators cancel anyone's, and is refused outright for
// non-admins. Unknown IDs yield ErrNotFound.
func (c *Core) CancelBooking(ctx context.Context, userID int64, bookingID string, force bool) (CancelResult, error) {
	actingAsAdmin := false
	if force {
		if !c.registry.IsAdmin(userID) {
			return CancelResult{}, ErrNotPermitted
		}
		actingAsAdmin = true
	}

	b, err := c.ledger.Remove(bookingID, userID, actingAsAdmin)
	if err != nil {
		return CancelResult{}, err
	}

	res := CancelResult{Booking: b}
	if err := c.persist.RemoveBooking(ctx, bookingID); err != nil {
		c.log.Warn("cancellation not persisted",
			zap.String("booking_id", bookingID),
			zap.Error(err))
		res.DurabilityWarning = true
	}
	return res, nil
}

// QueryDate returns the bookings for one date, sorted by start time.
// Read access is ungated; gating reads is the transport's concern.
func (c *Core) QueryDate(date Date) []models.Booking {
	var out []models.Booking
	for b := range c.ledger.ListForDate(date) {
		out = append(out, b)
	}
	return out
}

// QueryRange returns all bookings with from <= date <= to, ordered by
// date then start time.
func (c *Core) QueryRange(from, to Date) []models.Booking {
	var out []models.Booking
	for _, d := range c.ledger.Dates() {
		if d < from || d > to {
			continue
		}
		for b := range c.ledger.ListForDate(d) {
			out = append(out, b)
		}
	}
	return out
}

// Find returns a booking by ID.
func (c *Core) Find(bookingID string) (models.Booking, bool) {
	return c.ledger.Find(bookingID)
}

// RoleResult is the outcome of a role mutation.
type RoleResult struct {
	Changed           bool
	DurabilityWarning bool
}

// SetRole grants or revokes one role flag. Redundant transitions are
// no-ops and are not persisted. username, when non-empty, refreshes the
// informational username on the entry.
func (c *Core) SetRole(ctx context.Context, userID int64, role Role, present bool, username string) RoleResult {
	changed := c.registry.SetRole(userID, role, present)
	if c.registry.RecordUsername(userID, username) {
		changed = true
	}
	if !changed {
		return RoleResult{}
	}

	res := RoleResult{Changed: true}
	if err := c.persist.SaveRole(ctx, c.registry.Entry(userID)); err != nil {
		c.log.Warn("role change not persisted",
			zap.Int64("user_id", userID),
			zap.String("role", string(role)),
			zap.Error(err))
		res.DurabilityWarning = true
	}
	return res
}

// BulkSetRoles grants one role to every well-formed ID in an ID-per-line
// list. Malformed lines are collected in the report; they never abort the
// remaining lines. The changed entries are persisted in one batch.
func (c *Core) BulkSetRoles(ctx context.Context, role Role, r io.Reader) (BulkReport, error) {
	ids, report, err := ParseIDList(r)
	if err != nil {
		return report, err
	}

	var changed []RoleEntry
	for _, id := range ids {
		if c.registry.SetRole(id, role, true) {
			changed = append(changed, c.registry.Entry(id))
		}
	}
	if len(changed) > 0 {
		if err := c.persist.SaveRoles(ctx, changed); err != nil {
			c.log.Warn("bulk role load not persisted",
				zap.String("role", string(role)),
				zap.Int("entries", len(changed)),
				zap.Error(err))
		}
	}
	return report, nil
}

// RecordUser refreshes the informational username for a user, persisting
// when it actually changed. Transports call this as they observe users.
func (c *Core) RecordUser(ctx context.Context, userID int64, username string) {
	if !c.registry.RecordUsername(userID, username) {
		return
	}
	if err := c.persist.SaveRole(ctx, c.registry.Entry(userID)); err != nil {
		c.log.Warn("username update not persisted",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
}

// IsAdmin reports whether userID holds the admin flag. Transports use it
// to gate management surfaces.
func (c *Core) IsAdmin(userID int64) bool { return c.registry.IsAdmin(userID) }

// Roles returns every known user's role entry, ordered by user ID.
func (c *Core) Roles() []RoleEntry { return c.registry.Snapshot() }
