package attendance

import (
	"math"
	"time"
)

// DefaultExpectedHours is assumed when the employee has no shift.
const DefaultExpectedHours = 9.0

// maxDailyMinutes caps combined worked time at 24 hours per day.
const maxDailyMinutes = 24 * 60

// SessionSummary combines a day's sessions into one picture of the
// working day. Open sessions count toward ActiveSessions only; worked
// hours come from completed sessions.
type SessionSummary struct {
	TotalSessions     int
	CompletedSessions int
	ActiveSessions    int

	TotalWorkedHours     float64
	ExpectedHours        float64
	CompletionPercentage float64
	RemainingHours       float64
	IsShiftComplete      bool
}

// CompletedMinutes sums the durations of completed sessions, capped at
// 24 hours for the day.
func CompletedMinutes(sessions []Session) int {
	total := 0
	for _, s := range sessions {
		if s.IsOpen() {
			continue
		}
		if s.DurationMinutes > 0 {
			total += s.DurationMinutes
		}
	}
	if total > maxDailyMinutes {
		total = maxDailyMinutes
	}
	return total
}

// CombineSessions derives the day summary. expectedHours should be the
// shift span, or DefaultExpectedHours when the employee has no shift.
func CombineSessions(sessions []Session, expectedHours float64) SessionSummary {
	summary := SessionSummary{
		TotalSessions: len(sessions),
		ExpectedHours: expectedHours,
	}

	for _, s := range sessions {
		if s.IsOpen() {
			summary.ActiveSessions++
		} else {
			summary.CompletedSessions++
		}
	}

	worked := float64(CompletedMinutes(sessions)) / 60.0
	summary.TotalWorkedHours = math.Round(worked*100) / 100

	if expectedHours > 0 {
		pct := worked / expectedHours * 100
		summary.CompletionPercentage = math.Round(math.Min(pct, 100)*10) / 10
		summary.RemainingHours = math.Max(0, expectedHours-worked)
		// 90% completion threshold
		summary.IsShiftComplete = worked >= expectedHours*0.9
	}

	return summary
}

// ApplySessions rewrites the day's session-derived fields from the
// session log. The base status returns to PRESENT so a following
// lateness evaluation starts clean; protected statuses stay put.
func (d *Day) ApplySessions(sessions []Session) {
	d.DailySessionsCount = len(sessions)
	d.TotalWorkedMinutes = CompletedMinutes(sessions)

	d.IsCurrentlyClockedIn = false
	d.CurrentSessionType = nil
	for i := range sessions {
		if sessions[i].IsOpen() {
			d.IsCurrentlyClockedIn = true
			st := sessions[i].SessionType
			d.CurrentSessionType = &st
		}
	}

	if len(sessions) > 0 && !d.statusProtected() {
		d.Status = StatusPresent
	}
}

// DeriveAbsenceStatus picks the status for a past working day with no
// attendance, with precedence Holiday > Week-off > Absent. Callers must
// not invoke this for future dates.
func DeriveAbsenceStatus(isHoliday, isWeekOff bool) Status {
	switch {
	case isHoliday:
		return StatusHoliday
	case isWeekOff:
		return StatusWeeklyOff
	default:
		return StatusAbsent
	}
}

// SameDate reports whether two instants fall on the same calendar date
// in their respective locations.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
