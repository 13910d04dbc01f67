package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/event"
)

type eventItem struct {
	ID         int `json:"id"`
	Attributes struct {
		Fecha flexString `json:"fecha"`
	} `json:"attributes"`
}

type eventRepositoryImpl struct {
	client *Client
}

// NewEventRepository returns the remote event dates API.
func NewEventRepository(client *Client) event.EventRepository {
	return &eventRepositoryImpl{client: client}
}

func (r *eventRepositoryImpl) List(ctx context.Context) ([]event.EventDate, error) {
	body, err := r.client.do(ctx, http.MethodGet, r.client.reservationsBaseURL+eventDatesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list event dates: %w", err)
	}

	var items []eventItem
	if err := decodeCollection(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode event dates: %w", err)
	}

	events := make([]event.EventDate, 0, len(items))
	for _, item := range items {
		events = append(events, event.EventDate{
			ID:          item.ID,
			DisplayDate: string(item.Attributes.Fecha),
		})
	}
	return events, nil
}
