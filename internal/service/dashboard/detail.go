package dashboard

import (
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/dashboard"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/roster"
)

// ResolveDetail splits the department's roster into people with and without
// a reservation, matching on trimmed document ids.
//
// When two reservations of the department share a document id, the one that
// comes later in reservations wins.
func ResolveDetail(department string, reservations []reservation.Reservation, employees []roster.Employee) dashboard.DepartmentDetail {
	byDocument := make(map[string]reservation.Confirmation)
	for _, r := range reservations {
		if r.DepartmentArea != department {
			continue
		}
		doc := r.TrimmedDocumentID()
		if doc == "" {
			continue
		}
		byDocument[doc] = r.Confirmation
	}

	attendees := 0
	for _, c := range byDocument {
		if c.Counted() {
			attendees++
		}
	}

	detail := dashboard.DepartmentDetail{
		Department: department,
		Enrolled:   []dashboard.EnrolledEmployee{},
		Missing:    []roster.Employee{},
	}

	total := 0
	for _, e := range employees {
		if e.Department != department {
			continue
		}
		total++
		if c, ok := byDocument[e.TrimmedDocumentID()]; ok {
			detail.Enrolled = append(detail.Enrolled, dashboard.EnrolledEmployee{Employee: e, Confirmation: c})
		} else {
			detail.Missing = append(detail.Missing, e)
		}
	}

	var participation float64
	if total > 0 {
		participation = round2(float64(len(detail.Enrolled)) / float64(total) * 100)
	}

	detail.Totals = dashboard.DetailTotals{
		TotalEmployees:       total,
		EnrolledCount:        len(detail.Enrolled),
		MissingCount:         len(detail.Missing),
		AttendeeCount:        attendees,
		ParticipationPercent: participation,
	}
	return detail
}
