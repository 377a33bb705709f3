package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// ExistsOn reports whether date is a holiday for the company,
	// either globally or for the given location.
	ExistsOn(ctx context.Context, companyID string, locationID *string, date time.Time) (bool, error)
}
