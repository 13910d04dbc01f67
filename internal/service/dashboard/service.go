package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/dashboard"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/roster"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	reservationRepo reservation.ReservationRepository
	rosterRepo      roster.RosterRepository
	pageSize        int
}

func NewDashboardService(reservationRepo reservation.ReservationRepository, rosterRepo roster.RosterRepository, pageSize int) dashboard.DashboardService {
	return &DashboardServiceImpl{
		reservationRepo: reservationRepo,
		rosterRepo:      rosterRepo,
		pageSize:        pageSize,
	}
}

// GetOverview fetches reservations and roster totals in parallel and
// aggregates them. Either fetch failing fails the whole call.
func (s *DashboardServiceImpl) GetOverview(ctx context.Context, filter dashboard.OverviewFilter) (*dashboard.Overview, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	reservations, employees, err := s.load(ctx, filter.EventID, s.rosterRepo.ListDepartmentTotals)
	if err != nil {
		return nil, err
	}

	stats := Aggregate(reservations, employees)
	return ApplyFilter(stats, filter), nil
}

// GetDepartmentDetail fetches reservations and the per-person roster in
// parallel and resolves one department.
func (s *DashboardServiceImpl) GetDepartmentDetail(ctx context.Context, req dashboard.DetailRequest) (*dashboard.DepartmentDetail, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reservations, employees, err := s.load(ctx, req.EventID, s.rosterRepo.ListEmployees)
	if err != nil {
		return nil, err
	}

	detail := ResolveDetail(req.Department, reservations, employees)
	switch req.View {
	case dashboard.ViewEnrolled:
		detail.Missing = []roster.Employee{}
	case dashboard.ViewMissing:
		detail.Enrolled = []dashboard.EnrolledEmployee{}
	}
	return &detail, nil
}

func (s *DashboardServiceImpl) load(
	ctx context.Context,
	eventID *int,
	listEmployees func(context.Context) ([]roster.Employee, error),
) ([]reservation.Reservation, []roster.Employee, error) {
	var (
		reservations []reservation.Reservation
		employees    []roster.Employee
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res, err := s.reservationRepo.List(gCtx, reservation.ListFilter{EventID: eventID, PageSize: s.pageSize})
		if err != nil {
			return err
		}
		reservations = res
		return nil
	})

	g.Go(func() error {
		emp, err := listEmployees(gCtx)
		if err != nil {
			return err
		}
		employees = emp
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Dashboard data fetch failed", "error", err)
		return nil, nil, fmt.Errorf("%w: %w", dashboard.ErrDataUnavailable, err)
	}

	slog.Debug("Dashboard data loaded", "reservations", len(reservations), "roster_rows", len(employees))
	return reservations, employees, nil
}
