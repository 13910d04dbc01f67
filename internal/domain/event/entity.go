package event

import (
	"context"
	"errors"
	"fmt"
)

type EventDate struct {
	ID          int    `json:"id"`
	DisplayDate string `json:"display_date"`
}

// Label is the text shown in the event selector.
func (e EventDate) Label() string {
	if e.DisplayDate != "" {
		return e.DisplayDate
	}
	return fmt.Sprintf("Evento %d", e.ID)
}

// FindByID returns the event with the given id, if listed.
func FindByID(events []EventDate, id int) (EventDate, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return EventDate{}, false
}

type EventRepository interface {
	List(ctx context.Context) ([]EventDate, error)
}

var ErrEventNotFound = errors.New("event not found")
