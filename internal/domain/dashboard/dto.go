package dashboard

import (
	"strings"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/roster"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/validator"
)

// Placeholders used when a record carries no department. Departments with
// these names never reach the output.
const (
	NoArea       = "Sin área"
	NoDepartment = "Sin departamento"
)

// IsExcludedDepartment reports whether name is blank or a placeholder.
func IsExcludedDepartment(name string) bool {
	return strings.TrimSpace(name) == "" || name == NoArea || name == NoDepartment
}

// ========== OVERVIEW ==========

// DepartmentStats is one department card.
type DepartmentStats struct {
	Department           string  `json:"department"`
	TotalEmployees       int     `json:"total_employees"`
	TotalReservations    int     `json:"total_reservations"`
	TotalAttendees       int     `json:"total_attendees"`
	ParticipationRatio   float64 `json:"participation_ratio"`
	ParticipationPercent float64 `json:"participation_percent"` // 2 decimals
	AttendanceRatio      float64 `json:"attendance_ratio"`
	MissingCount         int     `json:"missing_count"`
}

// Participation categories for the overview filter.
const (
	CategoryAll  = "todos"
	CategoryHigh = "alta" // participation >= 50%
	CategoryLow  = "baja"
)

// HighParticipationThreshold splits the alta/baja categories, in percent.
const HighParticipationThreshold = 50.0

const DefaultCardsPerPage = 8

// OverviewFilter selects which cards are returned.
type OverviewFilter struct {
	Category string
	Search   string
	EventID  *int
	Page     int
	Limit    int
}

func (f *OverviewFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Category == "" {
		f.Category = CategoryAll
	}
	if !validator.IsInSlice(f.Category, []string{CategoryAll, CategoryHigh, CategoryLow}) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of todos, alta, baja",
		})
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultCardsPerPage
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OverviewSummary holds the header totals. The filtered figures cover every
// card matching the filter, not only the current page.
type OverviewSummary struct {
	TotalReservations           int     `json:"total_reservations"`
	TotalEmployees              int     `json:"total_employees"`
	AverageParticipationPercent float64 `json:"average_participation_percent"`
	DepartmentCount             int     `json:"department_count"`
	FilteredReservations        int     `json:"filtered_reservations"`
	FilteredEmployees           int     `json:"filtered_employees"`
	FilteredDepartmentCount     int     `json:"filtered_department_count"`
}

// Overview is the dashboard landing response.
type Overview struct {
	Summary     OverviewSummary   `json:"summary"`
	Departments []DepartmentStats `json:"departments"`
	Page        int               `json:"-"`
	Limit       int               `json:"-"`
	TotalPages  int               `json:"-"`
}

// ========== DEPARTMENT DETAIL ==========

// Detail views.
const (
	ViewAll      = "all"
	ViewEnrolled = "enrolled"
	ViewMissing  = "missing"
)

type DetailRequest struct {
	Department string
	View       string
	EventID    *int
}

func (r *DetailRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}
	if r.View == "" {
		r.View = ViewAll
	}
	if !validator.IsInSlice(r.View, []string{ViewAll, ViewEnrolled, ViewMissing}) {
		errs = append(errs, validator.ValidationError{
			Field:   "view",
			Message: "view must be one of all, enrolled, missing",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EnrolledEmployee is a roster entry that has a reservation.
type EnrolledEmployee struct {
	roster.Employee
	Confirmation reservation.Confirmation `json:"confirmation"`
}

type DetailTotals struct {
	TotalEmployees       int     `json:"total_employees"`
	EnrolledCount        int     `json:"enrolled_count"`
	MissingCount         int     `json:"missing_count"`
	AttendeeCount        int     `json:"attendee_count"`
	ParticipationPercent float64 `json:"participation_percent"` // 2 decimals
}

// DepartmentDetail splits a department's roster by reservation status.
type DepartmentDetail struct {
	Department string             `json:"department"`
	Enrolled   []EnrolledEmployee `json:"enrolled"`
	Missing    []roster.Employee  `json:"missing"`
	Totals     DetailTotals       `json:"totals"`
}
