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

type dayRepository struct {
	db *database.DB
}

const dayColumns = `
	id, employee_id, company_id, date, status,
	is_late, late_by_minutes, is_grace_used, is_half_day_late,
	is_early_departure, early_departure_minutes,
	is_currently_clocked_in, daily_sessions_count, current_session_type,
	total_worked_minutes, user_timezone,
	created_at, updated_at
`

func scanDay(row pgx.Row) (attendance.Day, error) {
	var d attendance.Day
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.CompanyID, &d.Date, &d.Status,
		&d.IsLate, &d.LateByMinutes, &d.IsGraceUsed, &d.IsHalfDayLate,
		&d.IsEarlyDeparture, &d.EarlyDepartureMinutes,
		&d.IsCurrentlyClockedIn, &d.DailySessionsCount, &d.CurrentSessionType,
		&d.TotalWorkedMinutes, &d.UserTimezone,
		&d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

// Get implements attendance.DayRepository.
func (r *dayRepository) Get(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Day, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dayColumns + `
		FROM attendance_days
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`

	day, err := scanDay(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance day: %w", err)
	}

	return &day, nil
}

// GetForUpdate implements attendance.DayRepository. It locks the row so
// concurrent clock events on the same employee-day serialize.
func (r *dayRepository) GetForUpdate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Day, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dayColumns + `
		FROM attendance_days
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
		FOR UPDATE
	`

	day, err := scanDay(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock attendance day: %w", err)
	}

	return &day, nil
}

// Create implements attendance.DayRepository.
func (r *dayRepository) Create(ctx context.Context, day attendance.Day) (attendance.Day, error) {
	q := GetQuerier(ctx, r.db)

	if day.ID == "" {
		day.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendance_days (
			id, employee_id, company_id, date, status,
			is_late, late_by_minutes, is_grace_used, is_half_day_late,
			is_early_departure, early_departure_minutes,
			is_currently_clocked_in, daily_sessions_count, current_session_type,
			total_worked_minutes, user_timezone
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		day.ID, day.EmployeeID, day.CompanyID, day.Date, day.Status,
		day.IsLate, day.LateByMinutes, day.IsGraceUsed, day.IsHalfDayLate,
		day.IsEarlyDeparture, day.EarlyDepartureMinutes,
		day.IsCurrentlyClockedIn, day.DailySessionsCount, day.CurrentSessionType,
		day.TotalWorkedMinutes, day.UserTimezone,
	).Scan(&day.CreatedAt, &day.UpdatedAt)

	if err != nil {
		return attendance.Day{}, fmt.Errorf("failed to create attendance day: %w", err)
	}

	return day, nil
}

// Update implements attendance.DayRepository.
func (r *dayRepository) Update(ctx context.Context, day attendance.Day) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_days SET
			status = $2,
			is_late = $3, late_by_minutes = $4, is_grace_used = $5, is_half_day_late = $6,
			is_early_departure = $7, early_departure_minutes = $8,
			is_currently_clocked_in = $9, daily_sessions_count = $10, current_session_type = $11,
			total_worked_minutes = $12, user_timezone = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		day.ID, day.Status,
		day.IsLate, day.LateByMinutes, day.IsGraceUsed, day.IsHalfDayLate,
		day.IsEarlyDeparture, day.EarlyDepartureMinutes,
		day.IsCurrentlyClockedIn, day.DailySessionsCount, day.CurrentSessionType,
		day.TotalWorkedMinutes, day.UserTimezone,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrDayNotFound
	}

	return nil
}

// CountGraceUsedInMonth implements attendance.DayRepository. The count
// covers the calendar month of date and excludes date itself, so a
// re-evaluation of today never counts today's own grace use.
func (r *dayRepository) CountGraceUsedInMonth(ctx context.Context, employeeID string, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendance_days
		WHERE employee_id = $1
		  AND is_grace_used = TRUE
		  AND date_trunc('month', date) = date_trunc('month', $2::date)
		  AND date <> $2::date
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count grace usage: %w", err)
	}

	return count, nil
}

// ListByStatusAndDate implements attendance.DayRepository.
func (r *dayRepository) ListByStatusAndDate(ctx context.Context, companyID string, status attendance.Status, date time.Time) ([]attendance.Day, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dayColumns + `
		FROM attendance_days
		WHERE company_id = $1 AND status = $2 AND date = $3
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, companyID, status, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance days: %w", err)
	}
	defer rows.Close()

	var days []attendance.Day
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		days = append(days, day)
	}

	return days, rows.Err()
}

// ExistsOn implements attendance.DayRepository.
func (r *dayRepository) ExistsOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM attendance_days WHERE employee_id = $1 AND date = $2)`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance day existence: %w", err)
	}

	return exists, nil
}

func NewDayRepository(db *database.DB) attendance.DayRepository {
	return &dayRepository{db: db}
}
