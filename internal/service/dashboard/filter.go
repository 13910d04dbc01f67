package dashboard

import (
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/dashboard"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/validator"
)

// ApplyFilter narrows the department cards by participation category and
// name search, then pages the result. The filter must already be validated.
func ApplyFilter(stats []dashboard.DepartmentStats, filter dashboard.OverviewFilter) *dashboard.Overview {
	var summary dashboard.OverviewSummary
	for _, s := range stats {
		summary.TotalReservations += s.TotalReservations
		summary.TotalEmployees += s.TotalEmployees
	}
	summary.DepartmentCount = len(stats)
	if summary.TotalEmployees > 0 {
		summary.AverageParticipationPercent = round2(float64(summary.TotalReservations) / float64(summary.TotalEmployees) * 100)
	}

	filtered := make([]dashboard.DepartmentStats, 0, len(stats))
	for _, s := range stats {
		if !matchesCategory(s, filter.Category) {
			continue
		}
		if filter.Search != "" && !validator.ContainsFold(s.Department, filter.Search) {
			continue
		}
		filtered = append(filtered, s)
		summary.FilteredReservations += s.TotalReservations
		summary.FilteredEmployees += s.TotalEmployees
	}
	summary.FilteredDepartmentCount = len(filtered)

	limit := filter.Limit
	if limit < 1 {
		limit = dashboard.DefaultCardsPerPage
	}
	page := max(filter.Page, 1)
	totalPages := (len(filtered) + limit - 1) / limit

	start := min((page-1)*limit, len(filtered))
	end := min(start+limit, len(filtered))

	return &dashboard.Overview{
		Summary:     summary,
		Departments: filtered[start:end],
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
	}
}

func matchesCategory(s dashboard.DepartmentStats, category string) bool {
	switch category {
	case dashboard.CategoryHigh:
		return s.ParticipationPercent >= dashboard.HighParticipationThreshold
	case dashboard.CategoryLow:
		return s.ParticipationPercent < dashboard.HighParticipationThreshold
	default:
		return true
	}
}
