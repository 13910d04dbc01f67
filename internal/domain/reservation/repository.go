package reservation

import "context"

// ListFilter narrows a reservation listing. A nil EventID lists every event.
type ListFilter struct {
	EventID  *int
	PageSize int
}

// ReservationRepository is the remote reservations API.
type ReservationRepository interface {
	List(ctx context.Context, filter ListFilter) ([]Reservation, error)

	// UpdateConfirmation writes the new flag and returns the stored record.
	UpdateConfirmation(ctx context.Context, id int, confirmed bool) (*Reservation, error)
}
