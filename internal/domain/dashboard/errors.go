package dashboard

import "errors"

var (
	// ErrDataUnavailable is returned when either dataset fails to load.
	// Partial datasets are never aggregated.
	ErrDataUnavailable = errors.New("dashboard data unavailable")
)
