package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/goccy/go-json"
)

type reservationItem struct {
	ID         int `json:"id"`
	Attributes struct {
		Documento     flexString `json:"documento"`
		NombreUsuario flexString `json:"nombreUsuario"`
		PdvArea       flexString `json:"pdv_area"`
		Confirm       *bool      `json:"confirm"`
		Fecha         flexString `json:"fecha"`
		Event         *struct {
			Data *eventItem `json:"data"`
		} `json:"sintonizarte_v_2_"`
	} `json:"attributes"`
}

func (i reservationItem) toDomain() reservation.Reservation {
	r := reservation.Reservation{
		ID:             i.ID,
		DocumentID:     string(i.Attributes.Documento),
		PersonName:     string(i.Attributes.NombreUsuario),
		DepartmentArea: string(i.Attributes.PdvArea),
		Confirmation:   reservation.ConfirmationFromBool(i.Attributes.Confirm),
		EventDate:      string(i.Attributes.Fecha),
	}
	if ev := i.Attributes.Event; ev != nil && ev.Data != nil {
		r.EventDateID = ev.Data.ID
		if r.EventDate == "" {
			r.EventDate = string(ev.Data.Attributes.Fecha)
		}
	}
	return r
}

type reservationRepositoryImpl struct {
	client *Client
}

// NewReservationRepository returns the remote reservations API.
func NewReservationRepository(client *Client) reservation.ReservationRepository {
	return &reservationRepositoryImpl{client: client}
}

// List fetches a single page of reservations sized to cover the whole set.
func (r *reservationRepositoryImpl) List(ctx context.Context, filter reservation.ListFilter) ([]reservation.Reservation, error) {
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = r.client.pageSize
	}

	query := url.Values{}
	query.Set("populate", "*")
	query.Set("pagination[pageSize]", strconv.Itoa(pageSize))
	if filter.EventID != nil {
		query.Set("filters[sintonizarte_v_2_][id]", strconv.Itoa(*filter.EventID))
	}

	endpoint := r.client.reservationsBaseURL + reservationsPath + "?" + query.Encode()
	body, err := r.client.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	var items []reservationItem
	if err := decodeCollection(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	reservations := make([]reservation.Reservation, 0, len(items))
	for _, item := range items {
		res := item.toDomain()
		if filter.EventID != nil && res.EventDateID == 0 {
			res.EventDateID = *filter.EventID
		}
		reservations = append(reservations, res)
	}
	return reservations, nil
}

type updateConfirmationRequest struct {
	Data struct {
		Confirm bool `json:"confirm"`
	} `json:"data"`
}

// UpdateConfirmation sends PUT {data: {confirm}} for one reservation.
func (r *reservationRepositoryImpl) UpdateConfirmation(ctx context.Context, id int, confirmed bool) (*reservation.Reservation, error) {
	var payload updateConfirmationRequest
	payload.Data.Confirm = confirmed

	endpoint := fmt.Sprintf("%s%s/%d", r.client.reservationsBaseURL, reservationsPath, id)
	body, err := r.client.do(ctx, http.MethodPut, endpoint, payload)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %d", reservation.ErrReservationNotFound, id)
		}
		return nil, fmt.Errorf("failed to update reservation %d: %w", id, err)
	}

	var envelope struct {
		Data *reservationItem `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Data == nil {
		// The write went through; only the echo is unreadable.
		slog.Warn("Unreadable reservation update response", "reservation_id", id, "error", err)
		return &reservation.Reservation{
			ID:           id,
			Confirmation: reservation.ConfirmationFromBool(&confirmed),
		}, nil
	}

	res := envelope.Data.toDomain()
	return &res, nil
}
