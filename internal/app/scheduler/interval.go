// internal/app/scheduler/interval.go
package scheduler

import (
	"fmt"
	"time"
)

// dateLayout is the canonical calendar-date form used throughout the
// scheduler and in persisted records.
const dateLayout = "2006-01-02"

// Date is a calendar day in "YYYY-MM-DD" form. The string form sorts
// chronologically, which lets range queries compare dates directly.
type Date string

// ParseDate parses and normalizes a calendar date. It accepts only the
// canonical YYYY-MM-DD layout; anything else is a validation failure for
// the requester, never a scheduling decision.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", &InvalidIntervalError{Reason: fmt.Sprintf("bad date %q: want YYYY-MM-DD", s)}
	}
	return Date(t.Format(dateLayout)), nil
}

func (d Date) String() string { return string(d) }

// Next returns the following calendar day. d must be a parsed Date.
func (d Date) Next() Date {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return d
	}
	return Date(t.AddDate(0, 0, 1).Format(dateLayout))
}

// Interval is a half-open time range [Start, End) within one day, in
// minutes since midnight. Two intervals may share an exact boundary
// without overlapping.
type Interval struct {
	Start int
	End   int
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, &InvalidIntervalError{Reason: fmt.Sprintf("bad time %q: want HH:MM", s)}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, &InvalidIntervalError{Reason: fmt.Sprintf("time %q out of range", s)}
	}
	return h*60 + m, nil
}

// ParseInterval parses a start/end clock pair into an Interval and
// validates it.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	iv := Interval{Start: s, End: e}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Validate rejects zero-length and inverted intervals. These are malformed
// requests, distinct from scheduling conflicts, and are never silently
// corrected.
func (iv Interval) Validate() error {
	switch {
	case iv.Start == iv.End:
		return &InvalidIntervalError{Reason: "zero-length interval"}
	case iv.End < iv.Start:
		return &InvalidIntervalError{Reason: "interval ends before it starts"}
	case iv.Start < 0 || iv.End > 24*60:
		return &InvalidIntervalError{Reason: "interval outside the day"}
	}
	return nil
}

// Overlaps applies the half-open interval test.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

func (iv Interval) String() string {
	return FormatClock(iv.Start) + "-" + FormatClock(iv.End)
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
