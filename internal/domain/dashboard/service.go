package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetOverview returns the filtered department cards and header totals
	GetOverview(ctx context.Context, filter OverviewFilter) (*Overview, error)

	// GetDepartmentDetail returns a department's roster split by reservation status
	GetDepartmentDetail(ctx context.Context, req DetailRequest) (*DepartmentDetail, error)
}
