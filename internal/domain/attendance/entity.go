package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent      Status = "PRESENT"
	StatusAbsent       Status = "ABSENT"
	StatusHalfDay      Status = "HALF_DAY"
	StatusLeave        Status = "LEAVE"
	StatusWFH          Status = "WFH"
	StatusOnDuty       Status = "ON_DUTY"
	StatusWeeklyOff    Status = "WEEKLY_OFF"
	StatusHoliday      Status = "HOLIDAY"
	StatusMissingPunch Status = "MISSING_PUNCH"
)

type SessionType string

const (
	SessionTypeWeb    SessionType = "WEB"
	SessionTypeRemote SessionType = "REMOTE"
)

// Session is one contiguous clock-in/clock-out interval within a day.
// SessionNumber is 1-based and unique per (employee, date).
type Session struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	Date          time.Time
	SessionNumber int

	ClockIn  time.Time
	ClockOut *time.Time

	SessionType SessionType

	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64

	DurationMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Session) IsOpen() bool {
	return s.ClockOut == nil
}

// RecomputeDuration refreshes DurationMinutes from the clock pair.
func (s *Session) RecomputeDuration() {
	if s.ClockOut == nil {
		s.DurationMinutes = 0
		return
	}
	s.DurationMinutes = int(s.ClockOut.Sub(s.ClockIn).Minutes())
}

// Day is the per-employee-per-date aggregate. Its status and flags are
// derived from the day's sessions plus shift configuration; they are only
// ever written through a recompute, never edited field by field.
type Day struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time

	Status Status

	IsLate        bool
	LateByMinutes int
	IsGraceUsed   bool
	IsHalfDayLate bool

	IsEarlyDeparture      bool
	EarlyDepartureMinutes int

	IsCurrentlyClockedIn bool
	DailySessionsCount   int
	CurrentSessionType   *SessionType
	TotalWorkedMinutes   int

	UserTimezone string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// statusProtected reports whether the day's status must not be displaced
// by a lateness penalty.
func (d Day) statusProtected() bool {
	switch d.Status {
	case StatusOnDuty, StatusWFH, StatusLeave:
		return true
	}
	return false
}

// ShouldStopLocationTracking is true only once the employee is out of
// any open session; tracking continues until an explicit clock-out.
func (d Day) ShouldStopLocationTracking() bool {
	return d.DailySessionsCount > 0 && !d.IsCurrentlyClockedIn
}
