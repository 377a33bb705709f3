package employee

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Employee is owned by the HR admin side of the system; the attendance
// engine only reads it (identity, shift assignment, week-offs, timezone).
type Employee struct {
	ID        string
	UserID    *string
	CompanyID string
	FullName  string
	ManagerID *string

	// Shift assignment. AssignedShiftID wins; ShiftName is the legacy
	// free-text lookup kept for records migrated from the old system.
	AssignedShiftID *string
	ShiftName       *string

	// Location carries the timezone attendance is evaluated in.
	LocationID *string
	Timezone   *string

	WeekOff WeekOff

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeekOff marks which weekdays are the employee's weekly off days.
type WeekOff struct {
	Monday    bool
	Tuesday   bool
	Wednesday bool
	Thursday  bool
	Friday    bool
	Saturday  bool
	Sunday    bool
}

// IsWeekOff reports whether the given date falls on a week-off day.
func (w WeekOff) IsWeekOff(date time.Time) bool {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// Location returns the employee's time.Location, falling back to the
// given zone when the employee has no location or the zone is unknown.
func (e Employee) Location(fallback *time.Location) *time.Location {
	if e.Timezone == nil || *e.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(*e.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}
