package attendance

import (
	"time"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/validator"
)

// ========================================
// RESERVATION LISTING
// ========================================

type ListReservationsRequest struct {
	EventID       int
	DocumentQuery string // substring match on the document id
	Refresh       bool   // re-fetch even when the event is already on the board
}

func (r *ListReservationsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EventID < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "event_id",
			Message: "event_id must be a positive integer",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReservationList struct {
	EventID      int                       `json:"event_id"`
	EventLabel   string                    `json:"event_label"`
	EventDate    string                    `json:"event_date,omitempty"` // empty when the event has no fecha
	Reservations []reservation.Reservation `json:"reservations"`
	Total        int                       `json:"total"`
	LoadedAt     time.Time                 `json:"loaded_at"`
}

// ========================================
// TOGGLE
// ========================================

type ToggleRequest struct {
	ReservationID int                      `json:"-"`
	EventID       int                      `json:"event_id"`
	Current       reservation.Confirmation `json:"confirmed"`
	Actor         string                   `json:"-"`
}

func (r *ToggleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ReservationID < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "reservation_id",
			Message: "reservation_id must be a positive integer",
		})
	}
	if r.EventID < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "event_id",
			Message: "event_id must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ToggleResponse struct {
	ReservationID int                      `json:"reservation_id"`
	EventID       int                      `json:"event_id,omitempty"`
	Confirmation  reservation.Confirmation `json:"confirmation"`
	Confirmed     bool                     `json:"confirmed"`
	// Reservation is the patched board row; nil when the event was never listed.
	Reservation *reservation.Reservation `json:"reservation,omitempty"`
}

// ========================================
// EXPORT
// ========================================

type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}
