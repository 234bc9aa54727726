package scheduler_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/hallbook/internal/app/scheduler"
)

func TestParseDate(t *testing.T) {
	d, err := scheduler.ParseDate("2024-05-01")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d != scheduler.Date("2024-05-01") {
		t.Errorf("date: got %q, want %q", d, "2024-05-01")
	}

	for _, bad := range []string{"", "01.05.2024", "2024-13-01", "2024-05-01T10:00", "tomorrow"} {
		if _, err := scheduler.ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q): expected error", bad)
		}
	}
}

func TestDateNext(t *testing.T) {
	d, _ := scheduler.ParseDate("2024-02-28")
	if next := d.Next(); next != scheduler.Date("2024-02-29") {
		t.Errorf("Next: got %q, want 2024-02-29 (leap year)", next)
	}
	d, _ = scheduler.ParseDate("2024-12-31")
	if next := d.Next(); next != scheduler.Date("2025-01-01") {
		t.Errorf("Next: got %q, want 2025-01-01", next)
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"10:00", 600, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"10:60", 0, false},
		{"ten", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := scheduler.ParseClock(c.in)
		if c.ok && err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", c.in, err)
			continue
		}
		if !c.ok {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", c.in)
			}
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q): got %d, want %d", c.in, got, c.want)
		}
	}
}

func TestIntervalValidate(t *testing.T) {
	cases := []struct {
		name string
		iv   scheduler.Interval
		ok   bool
	}{
		{"normal", scheduler.Interval{Start: 600, End: 660}, true},
		{"full day", scheduler.Interval{Start: 0, End: 1440}, true},
		{"zero length", scheduler.Interval{Start: 720, End: 720}, false},
		{"inverted", scheduler.Interval{Start: 660, End: 600}, false},
		{"negative start", scheduler.Interval{Start: -10, End: 60}, false},
		{"past midnight", scheduler.Interval{Start: 1400, End: 1500}, false},
	}
	for _, c := range cases {
		err := c.iv.Validate()
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok {
			var invalid *scheduler.InvalidIntervalError
			if !errors.As(err, &invalid) {
				t.Errorf("%s: got %v, want InvalidIntervalError", c.name, err)
			}
		}
	}
}

func TestIntervalOverlaps(t *testing.T) {
	base := scheduler.Interval{Start: 600, End: 660} // 10:00-11:00
	cases := []struct {
		name  string
		other scheduler.Interval
		want  bool
	}{
		{"identical", scheduler.Interval{Start: 600, End: 660}, true},
		{"straddles start", scheduler.Interval{Start: 570, End: 630}, true},
		{"straddles end", scheduler.Interval{Start: 630, End: 690}, true},
		{"contained", scheduler.Interval{Start: 615, End: 645}, true},
		{"containing", scheduler.Interval{Start: 540, End: 720}, true},
		{"shared boundary before", scheduler.Interval{Start: 540, End: 600}, false},
		{"shared boundary after", scheduler.Interval{Start: 660, End: 720}, false},
		{"disjoint", scheduler.Interval{Start: 720, End: 780}, false},
	}
	for _, c := range cases {
		if got := base.Overlaps(c.other); got != c.want {
			t.Errorf("%s: Overlaps got %v, want %v", c.name, got, c.want)
		}
		if got := c.other.Overlaps(base); got != c.want {
			t.Errorf("%s: Overlaps not symmetric", c.name)
		}
	}
}

func TestParseInterval(t *testing.T) {
	iv, err := scheduler.ParseInterval("10:00", "11:30")
	if err != nil {
		t.Fatalf("ParseInterval failed: %v", err)
	}
	if iv.Start != 600 || iv.End != 690 {
		t.Errorf("interval: got %+v, want {600 690}", iv)
	}
	if iv.String() != "10:00-11:30" {
		t.Errorf("String: got %q, want %q", iv.String(), "10:00-11:30")
	}

	if _, err := scheduler.ParseInterval("12:00", "12:00"); err == nil {
		t.Error("zero-length interval: expected error")
	}
	if _, err := scheduler.ParseInterval("13:00", "12:00"); err == nil {
		t.Error("inverted interval: expected error")
	}
}
