// Package bookingpolicy provides authorization policies for the booking
// scheduler.
//
// Authorization rules:
//   - Booking a slot requires the whitelisted flag or the admin flag.
//   - Cancelling a booking requires being its owner, or acting as an admin.
//   - Managing role lists requires the admin flag.
//
// Plain users (neither flag) keep read-only access: viewing the timetable
// is ungated here and left to the transport collaborator.
package bookingpolicy

// CanBook reports whether a user with the given role flags may create
// bookings.
func CanBook(isAdmin, isWhitelisted bool) bool {
	return isAdmin || isWhitelisted
}

// CanCancel reports whether requesterID may remove a booking owned by
// ownerID. actingAsAdmin must already be verified against the registry by
// the caller.
func CanCancel(requesterID, ownerID int64, actingAsAdmin bool) bool {
	return requesterID == ownerID || actingAsAdmin
}

// CanManageRoles reports whether a user with the given admin flag may
// grant and revoke roles.
func CanManageRoles(isAdmin bool) bool {
	return isAdmin
}
