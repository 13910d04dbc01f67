package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/sse"
	attendanceService "github.com/Siliatu1/dashboard-inscritos/internal/service/attendance"
)

// EventReservationsRefreshed is published after a board was reloaded.
const EventReservationsRefreshed = "reservations.refreshed"

type AttendanceJobs struct {
	reservationRepo reservation.ReservationRepository
	board           *attendanceService.Board
	hub             *sse.Hub
	pageSize        int
}

func NewAttendanceJobs(
	reservationRepo reservation.ReservationRepository,
	board *attendanceService.Board,
	hub *sse.Hub,
	pageSize int,
) *AttendanceJobs {
	return &AttendanceJobs{
		reservationRepo: reservationRepo,
		board:           board,
		hub:             hub,
		pageSize:        pageSize,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, refreshInterval time.Duration) {
	scheduler.Every("refresh_reservation_boards", refreshInterval, j.RefreshBoards)
}

type refreshedPayload struct {
	EventID  int       `json:"event_id"`
	Total    int       `json:"total"`
	LoadedAt time.Time `json:"loaded_at"`
}

// RefreshBoards reloads every event that has been opened since startup, so
// changes made by other operators reach open streams. Events that fail to
// load keep their previous snapshot, and so do events toggled while their
// fetch was in flight; the next run picks those up.
func (j *AttendanceJobs) RefreshBoards(ctx context.Context) error {
	var errs []error

	for _, eventID := range j.board.EventIDs() {
		current, _ := j.board.Get(eventID)

		id := eventID
		reservations, err := j.reservationRepo.List(ctx, reservation.ListFilter{EventID: &id, PageSize: j.pageSize})
		if err != nil {
			errs = append(errs, fmt.Errorf("event %d: %w", eventID, err))
			continue
		}

		snap, installed := j.board.CompareAndReplace(eventID, current.Revision, reservations, time.Now())
		if !installed {
			slog.Debug("Cron: board changed during refresh, skipped", "event_id", eventID)
			continue
		}
		j.hub.Publish(sse.EventTopic(eventID), sse.Event{
			Event: EventReservationsRefreshed,
			Data: refreshedPayload{
				EventID:  eventID,
				Total:    len(snap.Reservations),
				LoadedAt: snap.LoadedAt,
			},
		})
		slog.Debug("Cron: board refreshed", "event_id", eventID, "reservations", len(snap.Reservations))
	}

	return errors.Join(errs...)
}
