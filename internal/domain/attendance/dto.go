package attendance

import (
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	EmployeeID  string   `json:"-"`
	CompanyID   string   `json:"-"`
	SessionType string   `json:"session_type"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.SessionType != "" && !validator.IsInSlice(r.SessionType, []string{string(SessionTypeWeb), string(SessionTypeRemote)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_type",
			Message: "session_type must be WEB or REMOTE",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	EmployeeID string   `json:"-"`
	CompanyID  string   `json:"-"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RecomputeRequest re-derives a day's status and flags from its session
// log. Used by admins after batch corrections.
type RecomputeRequest struct {
	EmployeeID string `json:"employee_id"`
	CompanyID  string `json:"-"`
	Date       string `json:"date"`
}

func (r *RecomputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionResponse struct {
	ID              string  `json:"id"`
	SessionNumber   int     `json:"session_number"`
	SessionType     string  `json:"session_type"`
	ClockIn         string  `json:"clock_in"`
	ClockOut        *string `json:"clock_out,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
}

type DayResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`

	IsLate        bool `json:"is_late"`
	LateByMinutes int  `json:"late_by_minutes"`
	IsGraceUsed   bool `json:"is_grace_used"`
	IsHalfDayLate bool `json:"is_half_day_late"`

	IsEarlyDeparture      bool `json:"is_early_departure"`
	EarlyDepartureMinutes int  `json:"early_departure_minutes"`

	IsCurrentlyClockedIn bool    `json:"is_currently_clocked_in"`
	DailySessionsCount   int     `json:"daily_sessions_count"`
	CurrentSessionType   *string `json:"current_session_type,omitempty"`
	TotalWorkedHours     float64 `json:"total_worked_hours"`

	LocationTrackingStopped bool `json:"location_tracking_stopped"`

	Sessions []SessionResponse `json:"sessions,omitempty"`
}

type SummaryResponse struct {
	TotalSessions        int     `json:"total_sessions"`
	CompletedSessions    int     `json:"completed_sessions"`
	ActiveSessions       int     `json:"active_sessions"`
	TotalWorkedHours     float64 `json:"total_worked_hours"`
	ExpectedHours        float64 `json:"expected_hours"`
	CompletionPercentage float64 `json:"completion_percentage"`
	RemainingHours       float64 `json:"remaining_hours"`
	IsShiftComplete      bool    `json:"is_shift_complete"`
}

type AbsenteeResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}
