// internal/app/scheduler/registry.go
package scheduler

import (
	"sort"
	"sync"
)

// Role is one of the two grantable role flags.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleWhitelisted Role = "whitelisted"
)

// ValidRole reports whether r names a grantable role.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleWhitelisted
}

type roleFlags struct {
	username    string
	admin       bool
	whitelisted bool
}

// Registry tracks role membership keyed by numeric user ID. It exclusively
// owns role state: callers mutate it only through SetRole/RecordUsername so
// the flags stay consistent under concurrent request workers.
//
// Lookups never fail; unknown IDs are plain users with neither flag.
type Registry struct {
	mu    sync.RWMutex
	users map[int64]roleFlags
	dirty bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{users: make(map[int64]roleFlags)}
}

// IsAdmin reports whether userID holds the admin flag.
func (r *Registry) IsAdmin(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[userID].admin
}

// IsWhitelisted reports whether userID holds the whitelisted flag.
// Admins are not implicitly whitelisted here; booking privilege is a
// policy question (see bookingpolicy), not a registry one.
func (r *Registry) IsWhitelisted(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[userID].whitelisted
}

// Username returns the last recorded username for userID, if any.
func (r *Registry) Username(userID int64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.users[userID]
	if !ok || f.username == "" {
		return "", false
	}
	return f.username, true
}

// SetRole grants (present=true) or revokes (present=false) a role flag.
// It is idempotent: granting a held role or revoking an absent one is a
// no-op and reports changed=false. Any change marks the registry dirty
// for persistence.
func (r *Registry) SetRole(userID int64, role Role, present bool) (changed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.users[userID]
	switch role {
	case RoleAdmin:
		changed = f.admin != present
		f.admin = present
	case RoleWhitelisted:
		changed = f.whitelisted != present
		f.whitelisted = present
	default:
		return false
	}
	if changed {
		r.users[userID] = f
		r.dirty = true
	}
	return changed
}

// RecordUsername stores the display username last seen for userID.
// Usernames are informational only and never affect authorization.
func (r *Registry) RecordUsername(userID int64, username string) (changed bool) {
	if username == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.users[userID]
	if f.username == username {
		return false
	}
	f.username = username
	r.users[userID] = f
	r.dirty = true
	return true
}

// Entry returns the role entry for userID (zero entry for unknown IDs).
func (r *Registry) Entry(userID int64) RoleEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := r.users[userID]
	return RoleEntry{UserID: userID, Username: f.username, IsAdmin: f.admin, IsWhitelisted: f.whitelisted}
}

// Snapshot returns every known user's role entry, ordered by user ID.
func (r *Registry) Snapshot() []RoleEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RoleEntry, 0, len(r.users))
	for id, f := range r.users {
		out = append(out, RoleEntry{UserID: id, Username: f.username, IsAdmin: f.admin, IsWhitelisted: f.whitelisted})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// LoadSnapshot replaces registry state with the given entries (startup
// restore). The dirty flag is cleared: loaded state is already durable.
func (r *Registry) LoadSnapshot(entries []RoleEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[int64]roleFlags, len(entries))
	for _, e := range entries {
		r.users[e.UserID] = roleFlags{username: e.Username, admin: e.IsAdmin, whitelisted: e.IsWhitelisted}
	}
	r.dirty = false
}

// Dirty reports whether the registry has unsaved changes.
func (r *Registry) Dirty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dirty
}
