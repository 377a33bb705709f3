package attendance

import (
	"context"
	"time"
)

// DayRepository persists the per-employee-per-date aggregate row.
// GetForUpdate variants lock the row for the duration of the enclosing
// transaction; clock events and recomputes must use them so concurrent
// clock-ins for the same employee-day serialize.
type DayRepository interface {
	// Get returns nil when no day row exists yet.
	Get(ctx context.Context, employeeID string, date time.Time, companyID string) (*Day, error)

	// GetForUpdate locks and returns the day row, nil when absent.
	GetForUpdate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Day, error)

	Create(ctx context.Context, day Day) (Day, error)
	Update(ctx context.Context, day Day) error

	// CountGraceUsedInMonth counts grace-used days in the calendar
	// month of date, excluding date itself. The budget is keyed by
	// month+year, not a rolling window.
	CountGraceUsedInMonth(ctx context.Context, employeeID string, date time.Time) (int, error)

	// ListByStatusAndDate backs the absentee query.
	ListByStatusAndDate(ctx context.Context, companyID string, status Status, date time.Time) ([]Day, error)

	// ExistsOn lets reconcilers skip already-processed dates.
	ExistsOn(ctx context.Context, employeeID string, date time.Time) (bool, error)
}

// SessionRepository persists the append-style session log. Sessions are
// never deleted by the engine.
type SessionRepository interface {
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Session, error)

	// GetOpen returns the employee's open session for the date, nil
	// when every session is closed.
	GetOpen(ctx context.Context, employeeID string, date time.Time) (*Session, error)

	Create(ctx context.Context, session Session) (Session, error)
	Update(ctx context.Context, session Session) error

	// ListStaleOpen returns open sessions dated strictly before the
	// given date, for the auto-close reconciler.
	ListStaleOpen(ctx context.Context, before time.Time) ([]Session, error)
}
