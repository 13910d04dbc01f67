package attendance

import "context"

// ToggleLogRepository persists the audit trail of attendance flips.
type ToggleLogRepository interface {
	Record(ctx context.Context, log ToggleLog) error
	ListByReservation(ctx context.Context, reservationID int) ([]ToggleLog, error)
}
