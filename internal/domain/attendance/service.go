package attendance

import (
	"context"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/event"
)

// AttendanceService defines business logic for attendance confirmation
type AttendanceService interface {
	// ListEventDates returns the selectable event dates
	ListEventDates(ctx context.Context) ([]event.EventDate, error)

	// ListReservations reloads an event's reservations and filters them by document
	ListReservations(ctx context.Context, req ListReservationsRequest) (*ReservationList, error)

	// Toggle flips a reservation's attendance flag remotely, then locally
	Toggle(ctx context.Context, req ToggleRequest) (*ToggleResponse, error)

	// Export renders the filtered reservation list as a spreadsheet
	Export(ctx context.Context, req ListReservationsRequest) (*ExportFile, error)

	// History lists the recorded flips of a reservation, newest first
	History(ctx context.Context, reservationID int) ([]ToggleLog, error)
}
