package shift

import (
	"time"
)

// GraceExceededAction is applied when a clock-in lands inside the grace
// window but the monthly late-login budget is already spent.
type GraceExceededAction string

const (
	GraceActionNone    GraceExceededAction = "NONE"
	GraceActionHalfDay GraceExceededAction = "HALF_DAY"
	GraceActionLOP     GraceExceededAction = "LOP"
)

// ShiftSchedule is external configuration, read-only to the engine.
// StartTime/EndTime carry only the clock part; the date is supplied by
// the caller when anchoring the shift to a working day.
type ShiftSchedule struct {
	ID        string
	CompanyID string
	Name      string

	StartTime time.Time
	EndTime   time.Time

	GracePeriodMinutes             int
	AllowedLateLogins              int
	GraceExceededAction            GraceExceededAction
	EarlyDepartureThresholdMinutes int

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartOn anchors the shift start to the given date in loc.
func (s ShiftSchedule) StartOn(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		s.StartTime.Hour(), s.StartTime.Minute(), 0, 0, loc)
}

// EndOn anchors the shift end to the given date in loc. Overnight shifts
// (end before start) end on the next day.
func (s ShiftSchedule) EndOn(date time.Time, loc *time.Location) time.Time {
	end := time.Date(date.Year(), date.Month(), date.Day(),
		s.EndTime.Hour(), s.EndTime.Minute(), 0, 0, loc)
	if end.Before(s.StartOn(date, loc)) {
		end = end.AddDate(0, 0, 1)
	}
	return end
}

// GraceEndOn returns the end of the grace window on the given date.
func (s ShiftSchedule) GraceEndOn(date time.Time, loc *time.Location) time.Time {
	return s.StartOn(date, loc).Add(time.Duration(s.GracePeriodMinutes) * time.Minute)
}

// DurationHours returns the shift span in hours, overnight-aware.
func (s ShiftSchedule) DurationHours() float64 {
	ref := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return s.EndOn(ref, time.UTC).Sub(s.StartOn(ref, time.UTC)).Hours()
}
