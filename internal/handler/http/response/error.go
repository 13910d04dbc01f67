package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/attendance"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/dashboard"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/event"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Remote data errors
	case errors.Is(err, dashboard.ErrDataUnavailable):
		ServiceUnavailable(w, "Could not load reservations or roster data")
	case errors.Is(err, attendance.ErrReservationsUnavailable):
		ServiceUnavailable(w, "Could not load reservations")

	// Lookups
	case errors.Is(err, reservation.ErrReservationNotFound):
		NotFound(w, "Reservation not found")
	case errors.Is(err, event.ErrEventNotFound):
		NotFound(w, "Event not found")
	case errors.Is(err, attendance.ErrNothingToExport):
		NotFound(w, "No reservations to export")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrMutationFailed):
		BadGateway(w, "Failed to update attendance")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
