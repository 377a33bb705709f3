package attendance

import (
	"context"
)

// AttendanceService defines the clock and query surface of the engine.
// Dashboards, the chatbot and reports call these operations; they never
// write Day or Session rows directly.
type AttendanceService interface {
	// ClockIn opens the next session of the day for the employee
	ClockIn(ctx context.Context, req ClockInRequest) (DayResponse, error)

	// ClockOut closes the open session and re-derives the day
	ClockOut(ctx context.Context, req ClockOutRequest) (DayResponse, error)

	// Today returns the employee's attendance for the current local date
	Today(ctx context.Context, employeeID string, companyID string) (DayResponse, error)

	// Summary combines the day's sessions into worked/expected hours
	Summary(ctx context.Context, employeeID string, companyID string, date string) (SummaryResponse, error)

	// Recompute re-derives a day's status and flags from its sessions
	Recompute(ctx context.Context, req RecomputeRequest) (DayResponse, error)

	// Absentees lists employees marked absent on a date
	Absentees(ctx context.Context, companyID string, date string) ([]AbsenteeResponse, error)
}
