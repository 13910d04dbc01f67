package postgresql

import (
	"context"
	"fmt"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/attendance"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/database"
	"github.com/google/uuid"
)

var toggleLogSchema = []string{
	`CREATE TABLE IF NOT EXISTS attendance_toggle_logs (
		id             UUID PRIMARY KEY,
		reservation_id INTEGER NOT NULL,
		event_id       INTEGER NOT NULL DEFAULT 0,
		previous       TEXT NOT NULL,
		confirmation   TEXT NOT NULL,
		actor          TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_toggle_logs_reservation
		ON attendance_toggle_logs (reservation_id, created_at DESC)`,
}

type toggleLogRepositoryImpl struct {
	db *database.DB
}

func NewToggleLogRepository(db *database.DB) attendance.ToggleLogRepository {
	return &toggleLogRepositoryImpl{db: db}
}

// EnsureToggleLogSchema creates the audit table when it does not exist yet.
func EnsureToggleLogSchema(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(ctx context.Context) error {
		q := GetQuerier(ctx, db)
		for _, stmt := range toggleLogSchema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply toggle log schema: %w", err)
			}
		}
		return nil
	})
}

// Record implements attendance.ToggleLogRepository.
func (r *toggleLogRepositoryImpl) Record(ctx context.Context, log attendance.ToggleLog) error {
	q := GetQuerier(ctx, r.db)

	if log.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate toggle log id: %w", err)
		}
		log.ID = id.String()
	}

	query := `
		INSERT INTO attendance_toggle_logs (id, reservation_id, event_id, previous, confirmation, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query,
		log.ID,
		log.ReservationID,
		log.EventID,
		log.Previous.String(),
		log.Confirmation.String(),
		log.Actor,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert toggle log: %w", err)
	}
	return nil
}

// ListByReservation implements attendance.ToggleLogRepository.
func (r *toggleLogRepositoryImpl) ListByReservation(ctx context.Context, reservationID int) ([]attendance.ToggleLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, reservation_id, event_id, previous, confirmation, actor, created_at
		FROM attendance_toggle_logs
		WHERE reservation_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := q.Query(ctx, query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query toggle logs: %w", err)
	}
	defer rows.Close()

	logs := []attendance.ToggleLog{}
	for rows.Next() {
		var (
			l                      attendance.ToggleLog
			id                     uuid.UUID
			previous, confirmation string
		)
		if err := rows.Scan(&id, &l.ReservationID, &l.EventID, &previous, &confirmation, &l.Actor, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan toggle log: %w", err)
		}
		l.ID = id.String()
		if l.Previous, err = reservation.ParseConfirmation(previous); err != nil {
			return nil, err
		}
		if l.Confirmation, err = reservation.ParseConfirmation(confirmation); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate toggle logs: %w", err)
	}
	return logs, nil
}
