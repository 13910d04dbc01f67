package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/dashboard"
	"github.com/Siliatu1/dashboard-inscritos/internal/handler/http/response"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler interface {
	// GetOverview returns the department cards with summary totals
	GetOverview(w http.ResponseWriter, r *http.Request)
	// GetDepartmentDetail returns enrolled and missing people of one department
	GetDepartmentDetail(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetOverview handles GET /dashboard
func (h *dashboardHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := dashboard.OverviewFilter{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}

	eventID, ok := optionalID(query.Get("event_id"))
	if !ok {
		response.BadRequest(w, "Invalid event_id", nil)
		return
	}
	filter.EventID = eventID

	// Pagination
	if page := query.Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			filter.Page = p
		}
	}
	if limit := query.Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}

	overview, err := h.dashboardService.GetOverview(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, overview, &response.Meta{
		Page:       overview.Page,
		Limit:      overview.Limit,
		TotalItems: int64(overview.Summary.FilteredDepartmentCount),
		TotalPages: overview.TotalPages,
	})
}

// GetDepartmentDetail handles GET /dashboard/departments/{department}
func (h *dashboardHandlerImpl) GetDepartmentDetail(w http.ResponseWriter, r *http.Request) {
	department, err := url.PathUnescape(chi.URLParam(r, "department"))
	if err != nil {
		response.BadRequest(w, "Invalid department", nil)
		return
	}

	eventID, ok := optionalID(r.URL.Query().Get("event_id"))
	if !ok {
		response.BadRequest(w, "Invalid event_id", nil)
		return
	}

	detail, err := h.dashboardService.GetDepartmentDetail(r.Context(), dashboard.DetailRequest{
		Department: department,
		View:       r.URL.Query().Get("view"),
		EventID:    eventID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

// optionalID parses an optional positive id; an empty value yields nil.
func optionalID(s string) (*int, bool) {
	if s == "" {
		return nil, true
	}
	id, ok := validator.ParseID(s)
	if !ok {
		return nil, false
	}
	return &id, true
}
