package attendance

import "errors"

// Attendance domain errors
var (
	// ErrMutationFailed is returned when the remote write of a toggle fails.
	// The local reservation list is left as it was.
	ErrMutationFailed = errors.New("failed to update attendance")

	ErrReservationsUnavailable = errors.New("reservations unavailable")
	ErrNothingToExport         = errors.New("no reservations to export")
)
