package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/attendance"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/event"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/sse"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/validator"
	"github.com/Siliatu1/dashboard-inscritos/internal/service/export"
	"golang.org/x/sync/errgroup"
)

// EventAttendanceUpdated is the SSE event name published after a toggle.
const EventAttendanceUpdated = "attendance.updated"

type AttendanceServiceImpl struct {
	reservationRepo reservation.ReservationRepository
	eventRepo       event.EventRepository
	logRepo         attendance.ToggleLogRepository
	board           *Board
	hub             *sse.Hub
	pageSize        int
	now             func() time.Time
}

func NewAttendanceService(
	reservationRepo reservation.ReservationRepository,
	eventRepo event.EventRepository,
	logRepo attendance.ToggleLogRepository,
	board *Board,
	hub *sse.Hub,
	pageSize int,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		reservationRepo: reservationRepo,
		eventRepo:       eventRepo,
		logRepo:         logRepo,
		board:           board,
		hub:             hub,
		pageSize:        pageSize,
		now:             time.Now,
	}
}

// ListEventDates implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListEventDates(ctx context.Context) ([]event.EventDate, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		slog.Error("Failed to list event dates", "error", err)
		return nil, fmt.Errorf("%w: %w", attendance.ErrReservationsUnavailable, err)
	}
	return events, nil
}

// ListReservations implements attendance.AttendanceService. The event's board
// snapshot is served when one exists; the remote list is fetched only for an
// event seen for the first time or when req.Refresh is set.
func (s *AttendanceServiceImpl) ListReservations(ctx context.Context, req attendance.ListReservationsRequest) (*attendance.ReservationList, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap, cached := s.board.Get(req.EventID)
	fetch := req.Refresh || !cached

	var (
		fetched []reservation.Reservation
		events  []event.EventDate
	)

	g, gCtx := errgroup.WithContext(ctx)
	if fetch {
		g.Go(func() error {
			eventID := req.EventID
			res, err := s.reservationRepo.List(gCtx, reservation.ListFilter{EventID: &eventID, PageSize: s.pageSize})
			if err != nil {
				return err
			}
			fetched = res
			return nil
		})
	}
	g.Go(func() error {
		ev, err := s.eventRepo.List(gCtx)
		if err != nil {
			return err
		}
		events = ev
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("Failed to load reservations", "event_id", req.EventID, "error", err)
		return nil, fmt.Errorf("%w: %w", attendance.ErrReservationsUnavailable, err)
	}

	ev, known := event.FindByID(events, req.EventID)
	if !known {
		if (fetch && len(fetched) == 0) || (!fetch && len(snap.Reservations) == 0) {
			return nil, event.ErrEventNotFound
		}
		ev = event.EventDate{ID: req.EventID}
	}

	if fetch {
		fresh, installed := s.board.CompareAndReplace(req.EventID, snap.Revision, fetched, s.now())
		if !installed {
			slog.Debug("Board changed while fetching, serving current snapshot", "event_id", req.EventID)
		}
		snap = fresh
	}

	filtered := make([]reservation.Reservation, 0, len(snap.Reservations))
	query := req.DocumentQuery
	for _, r := range snap.Reservations {
		if query != "" && !validator.ContainsFold(r.DocumentID, query) {
			continue
		}
		filtered = append(filtered, *r)
	}

	return &attendance.ReservationList{
		EventID:      req.EventID,
		EventLabel:   ev.Label(),
		EventDate:    ev.DisplayDate,
		Reservations: filtered,
		Total:        len(filtered),
		LoadedAt:     snap.LoadedAt,
	}, nil
}

// Toggle implements attendance.AttendanceService. The local list is only
// patched once the remote write has succeeded.
func (s *AttendanceServiceImpl) Toggle(ctx context.Context, req attendance.ToggleRequest) (*attendance.ToggleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	next := req.Current.Toggled()

	updated, err := s.reservationRepo.UpdateConfirmation(ctx, req.ReservationID, *next.Bool())
	if err != nil {
		slog.Error("Failed to update attendance",
			"reservation_id", req.ReservationID,
			"event_id", req.EventID,
			"error", err,
		)
		if errors.Is(err, reservation.ErrReservationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", attendance.ErrMutationFailed, err)
	}

	eventID := req.EventID
	if eventID == 0 && updated != nil {
		eventID = updated.EventDateID
	}

	resp := &attendance.ToggleResponse{
		ReservationID: req.ReservationID,
		EventID:       eventID,
		Confirmation:  next,
		Confirmed:     next == reservation.Attended,
	}

	if snap, patched := s.board.Patch(eventID, req.ReservationID, next); patched {
		row, _ := snap.Find(req.ReservationID)
		resp.Reservation = row
	} else {
		slog.Debug("Toggled reservation not on board", "reservation_id", req.ReservationID, "event_id", eventID)
	}

	if err := s.logRepo.Record(ctx, attendance.ToggleLog{
		ReservationID: req.ReservationID,
		EventID:       eventID,
		Previous:      req.Current,
		Confirmation:  next,
		Actor:         req.Actor,
		CreatedAt:     s.now(),
	}); err != nil {
		slog.Warn("Failed to record attendance toggle", "reservation_id", req.ReservationID, "error", err)
	}

	if eventID > 0 {
		s.hub.Publish(sse.EventTopic(eventID), sse.Event{
			Event: EventAttendanceUpdated,
			Data:  resp,
		})
	}

	slog.Info("Attendance toggled",
		"reservation_id", req.ReservationID,
		"event_id", eventID,
		"confirmation", next.String(),
		"actor", req.Actor,
	)
	return resp, nil
}

// Export implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Export(ctx context.Context, req attendance.ListReservationsRequest) (*attendance.ExportFile, error) {
	list, err := s.ListReservations(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(list.Reservations) == 0 {
		return nil, attendance.ErrNothingToExport
	}

	data, err := export.AttendanceWorkbook(list.Reservations, list.EventDate)
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance workbook: %w", err)
	}

	return &attendance.ExportFile{
		FileName:    export.FileName(list.EventDate, s.now()),
		ContentType: export.ContentType,
		Data:        data,
	}, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, reservationID int) ([]attendance.ToggleLog, error) {
	if reservationID < 1 {
		return nil, validator.ValidationErrors{{
			Field:   "reservation_id",
			Message: "reservation_id must be a positive integer",
		}}
	}

	logs, err := s.logRepo.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}
	return logs, nil
}
