// internal/app/scheduler/ledger.go
package scheduler

import (
	"fmt"
	"iter"
	"sort"
	"sync"
	"time"

	"github.com/dalemusser/hallbook/internal/app/policy/bookingpolicy"
	"github.com/dalemusser/hallbook/internal/domain/models"
	"github.com/google/uuid"
)

// Ledger is the authoritative store of bookings, keyed by calendar date.
//
// Invariant: within one date the bookings are sorted ascending by start
// time and pairwise non-overlapping. The invariant is preserved by doing
// the overlap check and the insert inside a single critical section, so
// two racing requests can never both observe "no conflict" and both land.
type Ledger struct {
	mu   sync.RWMutex
	days map[Date][]models.Booking
	byID map[string]Date
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		days: make(map[Date][]models.Booking),
		byID: make(map[string]Date),
	}
}

// ListForDate returns the bookings for one date, sorted by start time.
// The sequence is lazy and restartable: each range takes a fresh snapshot
// under the read lock, so callers may short-circuit or iterate again.
func (l *Ledger) ListForDate(date Date) iter.Seq[models.Booking] {
	return func(yield func(models.Booking) bool) {
		l.mu.RLock()
		day := make([]models.Booking, len(l.days[date]))
		copy(day, l.days[date])
		l.mu.RUnlock()

		for _, b := range day {
			if !yield(b) {
				return
			}
		}
	}
}

// Add validates the interval, runs the conflict scan, and inserts the
// booking at its sort position, all as one atomic accept-or-reject. On
// conflict it returns a *ConflictError naming the earliest-starting
// blocker and the ledger is left untouched.
func (l *Ledger) Add(date Date, iv Interval, userID int64, label string) (models.Booking, error) {
	if err := iv.Validate(); err != nil {
		return models.Booking{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	day := l.days[date]
	if blocker, found := firstConflict(day, iv); found {
		return models.Booking{}, &ConflictError{Blocking: blocker}
	}

	b := models.Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      string(date),
		StartMin:  iv.Start,
		EndMin:    iv.End,
		Label:     label,
		CreatedAt: time.Now().UTC(),
	}

	pos := sort.Search(len(day), func(i int) bool { return day[i].StartMin >= b.StartMin })
	day = append(day, models.Booking{})
	copy(day[pos+1:], day[pos:])
	day[pos] = b

	l.days[date] = day
	l.byID[b.ID] = date
	return b, nil
}

// firstConflict scans a date's sorted, non-overlapping bookings for the
// earliest one colliding with iv. Sortedness lets the scan stop as soon
// as an existing start is at or past the requested end.
func firstConflict(day []models.Booking, iv Interval) (models.Booking, bool) {
	for _, b := range day {
		if b.StartMin >= iv.End {
			break
		}
		if iv.Overlaps(Interval{Start: b.StartMin, End: b.EndMin}) {
			return b, true
		}
	}
	return models.Booking{}, false
}

// Remove deletes a booking if the requester owns it or is acting as an
// admin. It returns the removed booking, ErrNotFound for unknown IDs, or
// ErrNotPermitted when the ownership check fails.
func (l *Ledger) Remove(bookingID string, requesterID int64, requesterIsAdmin bool) (models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	date, ok := l.byID[bookingID]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	day := l.days[date]
	for i, b := range day {
		if b.ID != bookingID {
			continue
		}
		if !bookingpolicy.CanCancel(requesterID, b.UserID, requesterIsAdmin) {
			return models.Booking{}, ErrNotPermitted
		}
		l.days[date] = append(day[:i], day[i+1:]...)
		if len(l.days[date]) == 0 {
			delete(l.days, date)
		}
		delete(l.byID, bookingID)
		return b, nil
	}
	// byID said the booking is on this date but the day scan missed it.
	delete(l.byID, bookingID)
	return models.Booking{}, ErrNotFound
}

// Find returns a booking by ID.
func (l *Ledger) Find(bookingID string) (models.Booking, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	date, ok := l.byID[bookingID]
	if !ok {
		return models.Booking{}, false
	}
	for _, b := range l.days[date] {
		if b.ID == bookingID {
			return b, true
		}
	}
	return models.Booking{}, false
}

// Dates returns every date that has at least one booking, sorted.
func (l *Ledger) Dates() []Date {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Date, 0, len(l.days))
	for d := range l.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Snapshot returns every booking, ordered by date then start time.
func (l *Ledger) Snapshot() []models.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.Booking
	dates := make([]Date, 0, len(l.days))
	for d := range l.days {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	for _, d := range dates {
		out = append(out, l.days[d]...)
	}
	return out
}

// LoadSnapshot replaces ledger state with the given bookings (startup
// restore). Each date's bookings are re-sorted; a snapshot that violates
// the no-overlap invariant is rejected rather than repaired, since it
// means the durable store was corrupted outside this process.
func (l *Ledger) LoadSnapshot(bookings []models.Booking) error {
	days := make(map[Date][]models.Booking)
	byID := make(map[string]Date, len(bookings))

	for _, b := range bookings {
		d := Date(b.Date)
		days[d] = append(days[d], b)
		byID[b.ID] = d
	}
	for d, day := range days {
		sort.Slice(day, func(i, j int) bool { return day[i].StartMin < day[j].StartMin })
		for i := 1; i < len(day); i++ {
			if day[i].StartMin < day[i-1].EndMin {
				return fmt.Errorf("snapshot for %s has overlapping bookings %s and %s",
					d, day[i-1].ID, day[i].ID)
			}
		}
		days[d] = day
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.days = days
	l.byID = byID
	return nil
}
