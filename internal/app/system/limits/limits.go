// internal/app/system/limits/limits.go
package limits

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxBookingBodySize is the maximum size for a booking request body.
	MaxBookingBodySize = 16 << 10 // 16 KB

	// MaxRoleListSize is the maximum size for a bulk role-list upload.
	MaxRoleListSize = 1 << 20 // 1 MB

	// MaxLabelLength is the maximum length, in runes, of a booking's
	// free-text label after sanitization.
	MaxLabelLength = 200
)
