package reservation

import (
	"bytes"
	"fmt"
	"strings"
)

// Confirmation is the three-valued attendance flag of a reservation.
type Confirmation int8

const (
	Pending Confirmation = iota
	Attended
	Absent
)

// ConfirmationFromBool maps the remote nullable flag: nil is Pending.
func ConfirmationFromBool(b *bool) Confirmation {
	switch {
	case b == nil:
		return Pending
	case *b:
		return Attended
	default:
		return Absent
	}
}

// Bool returns the remote representation of c.
func (c Confirmation) Bool() *bool {
	var v bool
	switch c {
	case Attended:
		v = true
	case Absent:
		v = false
	default:
		return nil
	}
	return &v
}

// Counted reports whether the reservation counts as an attendee in the
// dashboard totals. Absent is counted too: any explicit confirmation, either
// way, marks the reservation as processed.
func (c Confirmation) Counted() bool {
	return c != Pending
}

// Toggled returns the state after flipping the attendance switch.
// A pending reservation flips to Attended.
func (c Confirmation) Toggled() Confirmation {
	if c == Attended {
		return Absent
	}
	return Attended
}

func (c Confirmation) String() string {
	switch c {
	case Attended:
		return "attended"
	case Absent:
		return "absent"
	default:
		return "pending"
	}
}

// ParseConfirmation accepts the API names as well as the remote literals.
func ParseConfirmation(s string) (Confirmation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "pending":
		return Pending, nil
	case "true", "attended":
		return Attended, nil
	case "false", "absent":
		return Absent, nil
	}
	return Pending, fmt.Errorf("invalid confirmation %q", s)
}

func (c Confirmation) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *Confirmation) UnmarshalJSON(data []byte) error {
	parsed, err := ParseConfirmation(string(bytes.Trim(data, `"`)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Reservation is a person's registration for an event date.
type Reservation struct {
	ID             int          `json:"id"`
	DocumentID     string       `json:"document_id"`
	PersonName     string       `json:"person_name"`
	DepartmentArea string       `json:"department_area"`
	Confirmation   Confirmation `json:"confirmation"`
	EventDateID    int          `json:"event_date_id,omitempty"`
	EventDate      string       `json:"event_date,omitempty"`
}

// TrimmedDocumentID is the join key against the employee roster.
func (r Reservation) TrimmedDocumentID() string {
	return strings.TrimSpace(r.DocumentID)
}
