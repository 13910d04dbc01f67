package attendance

import (
	"context"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/attendance"
)

// nopToggleLogRepository is used when no database is configured.
type nopToggleLogRepository struct{}

func NewNopToggleLogRepository() attendance.ToggleLogRepository {
	return nopToggleLogRepository{}
}

func (nopToggleLogRepository) Record(context.Context, attendance.ToggleLog) error {
	return nil
}

func (nopToggleLogRepository) ListByReservation(context.Context, int) ([]attendance.ToggleLog, error) {
	return []attendance.ToggleLog{}, nil
}
