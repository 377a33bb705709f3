package attendance

import (
	"time"

	"github.com/peopleops-hr/attendance-backend-go/internal/domain/shift"
)

// LatenessResult is the outcome of evaluating one clock-in against the
// shift and the rolling monthly grace budget. It is pure data; applying
// it to a Day happens in ApplyLateness so status protection lives in
// one place.
type LatenessResult struct {
	IsLate        bool
	LateByMinutes int
	IsGraceUsed   bool
	IsHalfDayLate bool

	// ForcedStatus is set when the grace-exceeded action demands a
	// status change (HALF_DAY or ABSENT for LOP).
	ForcedStatus *Status
}

// EvaluateClockIn classifies a clock-in in employee-local time.
// priorGraceUsed is the number of grace-used days earlier in the same
// calendar month, excluding the day under evaluation. True lateness
// (beyond the grace window) does not consult the grace budget.
func EvaluateClockIn(sh shift.ShiftSchedule, date time.Time, clockInLocal time.Time, priorGraceUsed int) LatenessResult {
	loc := clockInLocal.Location()
	shiftStart := sh.StartOn(date, loc)
	graceEnd := sh.GraceEndOn(date, loc)

	if !clockInLocal.After(shiftStart) {
		// On time.
		return LatenessResult{}
	}

	if !clockInLocal.After(graceEnd) {
		// Within the grace window.
		if priorGraceUsed < sh.AllowedLateLogins {
			return LatenessResult{IsGraceUsed: true}
		}

		// Budget exhausted: apply the configured penalty. The grace
		// flag stays set since the window was still consumed.
		switch sh.GraceExceededAction {
		case shift.GraceActionHalfDay:
			forced := StatusHalfDay
			return LatenessResult{IsGraceUsed: true, IsHalfDayLate: true, ForcedStatus: &forced}
		case shift.GraceActionLOP:
			forced := StatusAbsent
			return LatenessResult{IsGraceUsed: true, IsHalfDayLate: true, ForcedStatus: &forced}
		default:
			return LatenessResult{IsGraceUsed: true}
		}
	}

	// Strictly late, measured from the end of the grace window.
	return LatenessResult{
		IsLate:        true,
		LateByMinutes: int(clockInLocal.Sub(graceEnd).Minutes()),
	}
}

// ApplyLateness writes the result onto the day. ON_DUTY/WFH/LEAVE days
// keep their status even when a penalty would force one.
func (d *Day) ApplyLateness(res LatenessResult) {
	d.IsLate = res.IsLate
	d.LateByMinutes = res.LateByMinutes
	d.IsGraceUsed = res.IsGraceUsed
	d.IsHalfDayLate = res.IsHalfDayLate

	if res.ForcedStatus != nil && !d.statusProtected() {
		d.Status = *res.ForcedStatus
	}
}

// EarlyDepartureResult is the outcome of the clock-out check.
type EarlyDepartureResult struct {
	IsEarlyDeparture bool
	MinutesShort     int
}

// EvaluateClockOut checks whether a clock-out lands before the shift end
// minus the early-departure threshold, in employee-local time.
func EvaluateClockOut(sh shift.ShiftSchedule, date time.Time, clockOutLocal time.Time) EarlyDepartureResult {
	loc := clockOutLocal.Location()
	threshold := sh.EndOn(date, loc).Add(-time.Duration(sh.EarlyDepartureThresholdMinutes) * time.Minute)

	if clockOutLocal.Before(threshold) {
		return EarlyDepartureResult{
			IsEarlyDeparture: true,
			MinutesShort:     int(threshold.Sub(clockOutLocal).Minutes()),
		}
	}
	return EarlyDepartureResult{}
}

// ApplyEarlyDeparture writes the result onto the day, clearing stale
// flags when a later clock-out is no longer early.
func (d *Day) ApplyEarlyDeparture(res EarlyDepartureResult) {
	d.IsEarlyDeparture = res.IsEarlyDeparture
	d.EarlyDepartureMinutes = res.MinutesShort
}
