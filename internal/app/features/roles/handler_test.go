package roles_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/hallbook/internal/app/features/roles"
	"github.com/dalemusser/hallbook/internal/app/scheduler"
	"github.com/dalemusser/hallbook/internal/domain/models"
	"github.com/dalemusser/hallbook/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type nopPersister struct{}

func (nopPersister) Load(context.Context) (scheduler.Snapshot, error)       { return scheduler.Snapshot{}, nil }
func (nopPersister) SaveBooking(context.Context, models.Booking) error      { return nil }
func (nopPersister) RemoveBooking(context.Context, string) error            { return nil }
func (nopPersister) SaveRole(context.Context, scheduler.RoleEntry) error    { return nil }
func (nopPersister) SaveRoles(context.Context, []scheduler.RoleEntry) error { return nil }

// fakeLookup stubs the username store for handler tests.
type fakeLookup struct {
	users map[string]*models.User
}

func (f *fakeLookup) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func newTestRouter(t *testing.T) (http.Handler, *scheduler.Core) {
	t.Helper()
	core := scheduler.New(nopPersister{}, zap.NewNop())
	if err := core.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	lookup := &fakeLookup{users: map[string]*models.User{
		"alice": {UserID: 1001, Username: "alice"},
	}}
	h := roles.NewHandler(core, lookup, zap.NewNop())
	return roles.Routes(h), core
}

func TestRoutesRequireAdmin(t *testing.T) {
	router, core := newTestRouter(t)
	core.SetRole(context.Background(), 9, scheduler.RoleAdmin, true, "")

	// Anonymous, no acting_user_id → forbidden.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("anonymous: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	// Non-admin acting user → forbidden.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/?acting_user_id=5", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin actor: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	// Admin acting user → allowed.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/?acting_user_id=9", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("admin actor: got %d, want %d", rec.Code, http.StatusOK)
	}

	// Console operator session → allowed.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewOperatorRequest("GET", "/"))
	if rec.Code != http.StatusOK {
		t.Errorf("operator: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestSetRole(t *testing.T) {
	router, core := newTestRouter(t)

	body := strings.NewReader(`{"role":"whitelisted","present":true,"username":"bob"}`)
	req := testutil.WithOperator(httptest.NewRequest("PUT", "/42", body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		UserID  int64 `json:"user_id"`
		Changed bool  `json:"changed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.UserID != 42 || !resp.Changed {
		t.Errorf("response: got %+v", resp)
	}
	if !core.Roles()[0].IsWhitelisted {
		t.Error("whitelist flag not set in registry")
	}

	// Granting again is idempotent.
	req = testutil.WithOperator(httptest.NewRequest("PUT", "/42",
		strings.NewReader(`{"role":"whitelisted","present":true,"username":"bob"}`)))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Changed {
		t.Error("redundant grant should report changed=false")
	}
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	router, _ := newTestRouter(t)

	req := testutil.WithOperator(httptest.NewRequest("PUT", "/42",
		strings.NewReader(`{"role":"owner","present":true}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown role: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestSetByUsername(t *testing.T) {
	router, core := newTestRouter(t)

	req := testutil.WithOperator(httptest.NewRequest("PUT", "/by-username/alice",
		strings.NewReader(`{"role":"admin","present":true}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	if !core.IsAdmin(1001) {
		t.Error("alice (1001) should be admin")
	}

	// Unknown username → 404.
	req = testutil.WithOperator(httptest.NewRequest("PUT", "/by-username/nobody",
		strings.NewReader(`{"role":"admin","present":true}`)))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown username: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestBulkLoad(t *testing.T) {
	router, core := newTestRouter(t)

	body := strings.NewReader("# whitelist\n2001\n2002\noops\n")
	req := testutil.WithOperator(httptest.NewRequest("POST", "/whitelisted/bulk", body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	var report scheduler.BulkReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if report.Loaded != 2 || len(report.Failures) != 1 {
		t.Errorf("report: got %+v", report)
	}
	for _, id := range []int64{2001, 2002} {
		found := false
		for _, e := range core.Roles() {
			if e.UserID == id && e.IsWhitelisted {
				found = true
			}
		}
		if !found {
			t.Errorf("user %d not whitelisted after bulk load", id)
		}
	}

	// Unknown role segment is rejected.
	req = testutil.WithOperator(httptest.NewRequest("POST", "/members/bulk", strings.NewReader("1\n")))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown role: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestListShowsPlaceholderUsernames(t *testing.T) {
	router, core := newTestRouter(t)
	ctx := context.Background()
	core.SetRole(ctx, 7, scheduler.RoleWhitelisted, true, "")
	core.SetRole(ctx, 8, scheduler.RoleWhitelisted, true, "grace")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewOperatorRequest("GET", "/"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var list []struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("entries: got %d, want 2", len(list))
	}
	if list[0].Username != "<?>" {
		t.Errorf("unseen user placeholder: got %q, want <?>", list[0].Username)
	}
	if list[1].Username != "grace" {
		t.Errorf("username: got %q, want grace", list[1].Username)
	}
}
