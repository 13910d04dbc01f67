package dashboard

import (
	"math"
	"sort"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/dashboard"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/roster"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Aggregate joins reservations and roster rows into one DepartmentStats per
// department, sorted by name. Reservations are grouped by area, roster rows by
// department; a department present on only one side still gets a card.
func Aggregate(reservations []reservation.Reservation, employees []roster.Employee) []dashboard.DepartmentStats {
	reservationsByDept := make(map[string]int)
	attendeesByDept := make(map[string]int)
	for _, r := range reservations {
		area := r.DepartmentArea
		if area == "" {
			area = dashboard.NoArea
		}
		reservationsByDept[area]++
		if r.Confirmation.Counted() {
			attendeesByDept[area]++
		}
	}

	weightByDept := make(map[string]int)
	for _, e := range employees {
		dept := e.Department
		if dept == "" {
			dept = dashboard.NoDepartment
		}
		weightByDept[dept] += e.Weight()
	}

	seen := make(map[string]struct{}, len(reservationsByDept)+len(weightByDept))
	stats := make([]dashboard.DepartmentStats, 0, len(reservationsByDept)+len(weightByDept))
	collect := func(dept string) {
		if _, ok := seen[dept]; ok || dashboard.IsExcludedDepartment(dept) {
			return
		}
		seen[dept] = struct{}{}
		stats = append(stats, newDepartmentStats(dept, weightByDept[dept], reservationsByDept[dept], attendeesByDept[dept]))
	}
	for dept := range reservationsByDept {
		collect(dept)
	}
	for dept := range weightByDept {
		collect(dept)
	}

	sortByDepartment(stats)
	return stats
}

func newDepartmentStats(dept string, employees, reservations, attendees int) dashboard.DepartmentStats {
	var participation, attendance float64
	if employees > 0 {
		participation = float64(reservations) / float64(employees)
	}
	if reservations > 0 {
		attendance = float64(attendees) / float64(reservations)
	}

	return dashboard.DepartmentStats{
		Department:           dept,
		TotalEmployees:       employees,
		TotalReservations:    reservations,
		TotalAttendees:       attendees,
		ParticipationRatio:   participation,
		ParticipationPercent: round2(participation * 100),
		AttendanceRatio:      attendance,
		MissingCount:         max(0, employees-reservations),
	}
}

// sortByDepartment orders by Spanish collation so accented names sort next
// to their unaccented neighbours.
func sortByDepartment(stats []dashboard.DepartmentStats) {
	c := collate.New(language.Spanish)
	sort.SliceStable(stats, func(i, j int) bool {
		return c.CompareString(stats[i].Department, stats[j].Department) < 0
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
