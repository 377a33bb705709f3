package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/peopleops-hr/attendance-backend-go/internal/domain/holiday"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

// ExistsOn implements holiday.HolidayRepository. Company-wide holidays
// (NULL location) apply to every location.
func (r *holidayRepository) ExistsOn(ctx context.Context, companyID string, locationID *string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM holidays
			WHERE company_id = $1
			  AND date = $2
			  AND (location_id IS NULL OR location_id = $3)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, date, locationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}

	return exists, nil
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}
