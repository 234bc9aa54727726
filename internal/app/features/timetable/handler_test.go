package timetable_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/hallbook/internal/app/features/timetable"
	"github.com/dalemusser/hallbook/internal/app/scheduler"
	"github.com/dalemusser/hallbook/internal/domain/models"
	"go.uber.org/zap"
)

type nopPersister struct{}

func (nopPersister) Load(context.Context) (scheduler.Snapshot, error)       { return scheduler.Snapshot{}, nil }
func (nopPersister) SaveBooking(context.Context, models.Booking) error      { return nil }
func (nopPersister) RemoveBooking(context.Context, string) error            { return nil }
func (nopPersister) SaveRole(context.Context, scheduler.RoleEntry) error    { return nil }
func (nopPersister) SaveRoles(context.Context, []scheduler.RoleEntry) error { return nil }

func TestServeRange(t *testing.T) {
	ctx := context.Background()
	core := scheduler.New(nopPersister{}, zap.NewNop())
	if err := core.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	core.SetRole(ctx, 1, scheduler.RoleWhitelisted, true, "")

	seed := []struct {
		date       string
		start, end int
	}{
		{"2024-05-01", 600, 660},
		{"2024-05-01", 720, 780},
		{"2024-05-03", 540, 600},
		{"2024-05-09", 600, 660}, // outside the queried range
	}
	for _, s := range seed {
		if _, err := core.RequestBooking(ctx, 1, scheduler.Date(s.date), scheduler.Interval{Start: s.start, End: s.end}, ""); err != nil {
			t.Fatalf("seed booking failed: %v", err)
		}
	}

	h := timetable.NewHandler(core, zap.NewNop())
	req := httptest.NewRequest("GET", "/api/timetable?from=2024-05-01&to=2024-05-07", nil)
	rec := httptest.NewRecorder()
	h.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Days []struct {
			Date     string `json:"date"`
			Bookings []struct {
				Start string `json:"start"`
			} `json:"bookings"`
		} `json:"days"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(resp.Days) != 2 {
		t.Fatalf("days: got %d, want 2", len(resp.Days))
	}
	if resp.Days[0].Date != "2024-05-01" || len(resp.Days[0].Bookings) != 2 {
		t.Errorf("first day wrong: %+v", resp.Days[0])
	}
	if resp.Days[0].Bookings[0].Start != "10:00" {
		t.Errorf("first booking start: got %q, want 10:00", resp.Days[0].Bookings[0].Start)
	}
	if resp.Days[1].Date != "2024-05-03" {
		t.Errorf("second day: got %q, want 2024-05-03", resp.Days[1].Date)
	}
}

func TestServeRejectsBadRange(t *testing.T) {
	core := scheduler.New(nopPersister{}, zap.NewNop())
	h := timetable.NewHandler(core, zap.NewNop())

	for _, target := range []string{
		"/api/timetable",
		"/api/timetable?from=2024-05-01",
		"/api/timetable?from=2024-05-07&to=2024-05-01",
	} {
		req := httptest.NewRequest("GET", target, nil)
		rec := httptest.NewRecorder()
		h.Serve(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: got %d, want %d", target, rec.Code, http.StatusUnprocessableEntity)
		}
	}
}
