package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/shift"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

const shiftColumns = `
	id, company_id, name, start_time, end_time,
	grace_period_minutes, allowed_late_logins, grace_exceeded_action,
	early_departure_threshold_minutes, is_active,
	created_at, updated_at
`

func scanShift(row pgx.Row) (shift.ShiftSchedule, error) {
	var s shift.ShiftSchedule
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.StartTime, &s.EndTime,
		&s.GracePeriodMinutes, &s.AllowedLateLogins, &s.GraceExceededAction,
		&s.EarlyDepartureThresholdMinutes, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string, companyID string) (shift.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_schedules
		WHERE id = $1 AND company_id = $2 AND is_active = TRUE
	`

	s, err := scanShift(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ShiftSchedule{}, shift.ErrShiftNotFound
		}
		return shift.ShiftSchedule{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}

// GetByName implements shift.ShiftRepository. Case-insensitive, for
// records still carrying the legacy free-text shift name.
func (r *shiftRepository) GetByName(ctx context.Context, companyID string, name string) (shift.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_schedules
		WHERE company_id = $1 AND LOWER(name) = LOWER($2) AND is_active = TRUE
		LIMIT 1
	`

	s, err := scanShift(q.QueryRow(ctx, query, companyID, name))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ShiftSchedule{}, shift.ErrShiftNotFound
		}
		return shift.ShiftSchedule{}, fmt.Errorf("failed to get shift by name: %w", err)
	}

	return s, nil
}

// GetCompanyDefault implements shift.ShiftRepository. The oldest active
// shift acts as the company default.
func (r *shiftRepository) GetCompanyDefault(ctx context.Context, companyID string) (shift.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_schedules
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY created_at
		LIMIT 1
	`

	s, err := scanShift(q.QueryRow(ctx, query, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ShiftSchedule{}, shift.ErrShiftNotFound
		}
		return shift.ShiftSchedule{}, fmt.Errorf("failed to get company default shift: %w", err)
	}

	return s, nil
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}
