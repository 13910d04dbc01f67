package http

import (
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/attendance"
	"github.com/Siliatu1/dashboard-inscritos/internal/handler/http/response"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/jwt"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/sse"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

type AttendanceHandler interface {
	// ListEvents returns the selectable event dates
	ListEvents(w http.ResponseWriter, r *http.Request)
	// ListReservations reloads and returns the reservations of an event
	ListReservations(w http.ResponseWriter, r *http.Request)
	// Export downloads the reservations of an event as xlsx
	Export(w http.ResponseWriter, r *http.Request)
	// Stream pushes attendance changes of an event over SSE
	Stream(w http.ResponseWriter, r *http.Request)
	// Toggle flips the attendance flag of a reservation
	Toggle(w http.ResponseWriter, r *http.Request)
	// History lists the recorded flips of a reservation
	History(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	hub               *sse.Hub
	keepalive         time.Duration
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, hub *sse.Hub) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		hub:               hub,
		keepalive:         30 * time.Second,
	}
}

// ListEvents handles GET /events
func (h *attendanceHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.attendanceService.ListEventDates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}

// ListReservations handles GET /events/{eventID}/reservations
func (h *attendanceHandlerImpl) ListReservations(w http.ResponseWriter, r *http.Request) {
	req, ok := listRequest(w, r)
	if !ok {
		return
	}

	list, err := h.attendanceService.ListReservations(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Export handles GET /events/{eventID}/reservations/export
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req, ok := listRequest(w, r)
	if !ok {
		return
	}

	file, err := h.attendanceService.Export(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.FileName})
	response.File(w, file.ContentType, disposition, file.Data)
}

// Toggle handles PUT /reservations/{reservationID}/attendance
func (h *attendanceHandlerImpl) Toggle(w http.ResponseWriter, r *http.Request) {
	reservationID, ok := validator.ParseID(chi.URLParam(r, "reservationID"))
	if !ok {
		response.BadRequest(w, "Invalid reservation id", nil)
		return
	}

	var req attendance.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Toggle decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ReservationID = reservationID

	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}
	req.Actor = actor

	result, err := h.attendanceService.Toggle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

// History handles GET /reservations/{reservationID}/attendance/history
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	reservationID, ok := validator.ParseID(chi.URLParam(r, "reservationID"))
	if !ok {
		response.BadRequest(w, "Invalid reservation id", nil)
		return
	}

	logs, err := h.attendanceService.History(r.Context(), reservationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

// Stream handles GET /events/{eventID}/stream
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	eventID, ok := validator.ParseID(chi.URLParam(r, "eventID"))
	if !ok {
		response.BadRequest(w, "Invalid event id", nil)
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(sse.EventTopic(eventID))
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"event_id\":%d}\n\n", eventID)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Warn("Failed to encode SSE event", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func listRequest(w http.ResponseWriter, r *http.Request) (attendance.ListReservationsRequest, bool) {
	eventID, ok := validator.ParseID(chi.URLParam(r, "eventID"))
	if !ok {
		response.BadRequest(w, "Invalid event id", nil)
		return attendance.ListReservationsRequest{}, false
	}

	refresh := false
	if raw := r.URL.Query().Get("refresh"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "Invalid refresh flag", map[string]string{"refresh": "must be true or false"})
			return attendance.ListReservationsRequest{}, false
		}
		refresh = v
	}

	return attendance.ListReservationsRequest{
		EventID:       eventID,
		DocumentQuery: r.URL.Query().Get("documento"),
		Refresh:       refresh,
	}, true
}
