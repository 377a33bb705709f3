package shift

import (
	"context"
)

// ShiftRepository reads the shift catalog. The catalog is maintained by
// the HR admin application; the engine never writes it.
type ShiftRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (ShiftSchedule, error)

	// GetByName does a case-insensitive lookup, used for legacy
	// free-text shift assignments.
	GetByName(ctx context.Context, companyID string, name string) (ShiftSchedule, error)

	// GetCompanyDefault returns the company's first defined shift.
	GetCompanyDefault(ctx context.Context, companyID string) (ShiftSchedule, error)
}
