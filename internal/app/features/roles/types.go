// internal/app/features/roles/types.go
package roles

// setRoleRequest is the JSON body of PUT /api/roles/{userID} and
// PUT /api/roles/by-username/{username}.
type setRoleRequest struct {
	Role     string `json:"role"`    // "admin" or "whitelisted"
	Present  bool   `json:"present"` // true grants, false revokes
	Username string `json:"username,omitempty"`
}

// setRoleResponse reports the result of a role mutation. Redundant
// grants and revokes are fine; Changed is false for them.
type setRoleResponse struct {
	UserID            int64 `json:"user_id"`
	Changed           bool  `json:"changed"`
	DurabilityWarning bool  `json:"durability_warning,omitempty"`
}

// roleEntryJSON is one row of the role listing. Username is "<?>" when
// the user has never been seen by the transport.
type roleEntryJSON struct {
	UserID        int64  `json:"user_id"`
	Username      string `json:"username"`
	IsAdmin       bool   `json:"is_admin"`
	IsWhitelisted bool   `json:"is_whitelisted"`
}
