package attendance

import (
	"time"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
)

// ToggleLog records one successful attendance flip.
type ToggleLog struct {
	ID            string                   `json:"id"`
	ReservationID int                      `json:"reservation_id"`
	EventID       int                      `json:"event_id"`
	Previous      reservation.Confirmation `json:"previous"`
	Confirmation  reservation.Confirmation `json:"confirmation"`
	Actor         string                   `json:"actor"`
	CreatedAt     time.Time                `json:"created_at"`
}

// Snapshot is the reservation list last loaded for an event. It is never
// modified after construction; updates produce a new Snapshot with a higher
// Revision.
type Snapshot struct {
	EventID      int
	Reservations []*reservation.Reservation
	LoadedAt     time.Time
	Revision     uint64
}

// Find returns the reservation with the given id.
func (s Snapshot) Find(id int) (*reservation.Reservation, bool) {
	for _, r := range s.Reservations {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}
