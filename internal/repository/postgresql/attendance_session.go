package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/database"
)

type sessionRepository struct {
	db *database.DB
}

const sessionColumns = `
	id, employee_id, company_id, date, session_number,
	clock_in, clock_out, session_type,
	clock_in_latitude, clock_in_longitude,
	clock_out_latitude, clock_out_longitude,
	duration_minutes, created_at, updated_at
`

func scanSession(row pgx.Row) (attendance.Session, error) {
	var s attendance.Session
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.CompanyID, &s.Date, &s.SessionNumber,
		&s.ClockIn, &s.ClockOut, &s.SessionType,
		&s.ClockInLatitude, &s.ClockInLongitude,
		&s.ClockOutLatitude, &s.ClockOutLongitude,
		&s.DurationMinutes, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// ListByEmployeeAndDate implements attendance.SessionRepository.
func (r *sessionRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1 AND date = $2
		ORDER BY session_number
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// GetOpen implements attendance.SessionRepository. Returns nil when the
// employee has no open session on the date.
func (r *sessionRepository) GetOpen(ctx context.Context, employeeID string, date time.Time) (*attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1 AND date = $2 AND clock_out IS NULL
		ORDER BY session_number DESC
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &s, nil
}

// Create implements attendance.SessionRepository.
func (r *sessionRepository) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendance_sessions (
			id, employee_id, company_id, date, session_number,
			clock_in, clock_out, session_type,
			clock_in_latitude, clock_in_longitude,
			clock_out_latitude, clock_out_longitude,
			duration_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		session.ID, session.EmployeeID, session.CompanyID, session.Date, session.SessionNumber,
		session.ClockIn, session.ClockOut, session.SessionType,
		session.ClockInLatitude, session.ClockInLongitude,
		session.ClockOutLatitude, session.ClockOutLongitude,
		session.DurationMinutes,
	).Scan(&session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// Update implements attendance.SessionRepository.
func (r *sessionRepository) Update(ctx context.Context, session attendance.Session) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions SET
			clock_out = $2,
			clock_out_latitude = $3, clock_out_longitude = $4,
			duration_minutes = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	_, err := q.Exec(ctx, query,
		session.ID, session.ClockOut,
		session.ClockOutLatitude, session.ClockOutLongitude,
		session.DurationMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// ListStaleOpen implements attendance.SessionRepository. Open sessions
// whose date is strictly before the cutoff date, for the auto-close job.
func (r *sessionRepository) ListStaleOpen(ctx context.Context, before time.Time) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE clock_out IS NULL AND date < $1
		ORDER BY date, employee_id, session_number
	`

	rows, err := q.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale open sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepository{db: db}
}
