package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops-hr/attendance-backend-go/internal/domain/shift"
)

func testShift(action shift.GraceExceededAction) shift.ShiftSchedule {
	return shift.ShiftSchedule{
		ID:                             "shift-1",
		CompanyID:                      "company-1",
		Name:                           "General",
		StartTime:                      time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:                        time.Date(2000, 1, 1, 18, 0, 0, 0, time.UTC),
		GracePeriodMinutes:             10,
		AllowedLateLogins:              3,
		GraceExceededAction:            action,
		EarlyDepartureThresholdMinutes: 15,
		IsActive:                       true,
	}
}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestEvaluateClockInOnTime(t *testing.T) {
	sh := testShift(shift.GraceActionNone)

	res := EvaluateClockIn(sh, at(9, 0), at(8, 45), 0)
	assert.Equal(t, LatenessResult{}, res)

	// Exactly at shift start is still on time.
	res = EvaluateClockIn(sh, at(9, 0), at(9, 0), 0)
	assert.Equal(t, LatenessResult{}, res)
}

func TestEvaluateClockInWithinGrace(t *testing.T) {
	sh := testShift(shift.GraceActionHalfDay)

	res := EvaluateClockIn(sh, at(9, 8), at(9, 8), 0)
	assert.True(t, res.IsGraceUsed)
	assert.False(t, res.IsLate)
	assert.Zero(t, res.LateByMinutes)
	assert.Nil(t, res.ForcedStatus)

	// Exactly at the grace boundary still counts as grace.
	res = EvaluateClockIn(sh, at(9, 10), at(9, 10), 2)
	assert.True(t, res.IsGraceUsed)
	assert.Nil(t, res.ForcedStatus)
}

func TestEvaluateClockInGraceBudgetExhausted(t *testing.T) {
	t.Run("half day action", func(t *testing.T) {
		sh := testShift(shift.GraceActionHalfDay)

		res := EvaluateClockIn(sh, at(9, 8), at(9, 8), 3)
		assert.True(t, res.IsGraceUsed)
		assert.True(t, res.IsHalfDayLate)
		require.NotNil(t, res.ForcedStatus)
		assert.Equal(t, StatusHalfDay, *res.ForcedStatus)
	})

	t.Run("loss of pay action", func(t *testing.T) {
		sh := testShift(shift.GraceActionLOP)

		res := EvaluateClockIn(sh, at(9, 8), at(9, 8), 3)
		assert.True(t, res.IsGraceUsed)
		assert.True(t, res.IsHalfDayLate)
		require.NotNil(t, res.ForcedStatus)
		assert.Equal(t, StatusAbsent, *res.ForcedStatus)
	})

	t.Run("no action configured", func(t *testing.T) {
		sh := testShift(shift.GraceActionNone)

		res := EvaluateClockIn(sh, at(9, 8), at(9, 8), 5)
		assert.True(t, res.IsGraceUsed)
		assert.False(t, res.IsHalfDayLate)
		assert.Nil(t, res.ForcedStatus)
	})
}

func TestEvaluateClockInLate(t *testing.T) {
	sh := testShift(shift.GraceActionHalfDay)

	// Past the grace window: late, measured from the grace end, and the
	// monthly budget is not consulted.
	res := EvaluateClockIn(sh, at(9, 25), at(9, 25), 99)
	assert.True(t, res.IsLate)
	assert.Equal(t, 15, res.LateByMinutes)
	assert.False(t, res.IsGraceUsed)
	assert.Nil(t, res.ForcedStatus)
}

func TestApplyLatenessRespectsProtectedStatus(t *testing.T) {
	forced := StatusHalfDay
	res := LatenessResult{IsGraceUsed: true, IsHalfDayLate: true, ForcedStatus: &forced}

	day := Day{Status: StatusLeave}
	day.ApplyLateness(res)
	assert.Equal(t, StatusLeave, day.Status)
	assert.True(t, day.IsHalfDayLate)

	day = Day{Status: StatusPresent}
	day.ApplyLateness(res)
	assert.Equal(t, StatusHalfDay, day.Status)
}

func TestEvaluateClockOut(t *testing.T) {
	sh := testShift(shift.GraceActionNone)

	// Shift ends 18:00, threshold 15 minutes: anything before 17:45 is early.
	res := EvaluateClockOut(sh, at(9, 0), at(17, 30))
	assert.True(t, res.IsEarlyDeparture)
	assert.Equal(t, 15, res.MinutesShort)

	res = EvaluateClockOut(sh, at(9, 0), at(17, 45))
	assert.False(t, res.IsEarlyDeparture)

	res = EvaluateClockOut(sh, at(9, 0), at(18, 30))
	assert.False(t, res.IsEarlyDeparture)
}

func TestEvaluateClockOutOvernightShift(t *testing.T) {
	sh := testShift(shift.GraceActionNone)
	sh.StartTime = time.Date(2000, 1, 1, 22, 0, 0, 0, time.UTC)
	sh.EndTime = time.Date(2000, 1, 1, 6, 0, 0, 0, time.UTC)

	// Working date 2026-03-10, shift ends 06:00 on the 11th.
	clockOut := time.Date(2026, 3, 11, 4, 0, 0, 0, time.UTC)
	res := EvaluateClockOut(sh, at(22, 0), clockOut)
	assert.True(t, res.IsEarlyDeparture)
	assert.Equal(t, 105, res.MinutesShort)
}

func TestApplyEarlyDepartureClearsStaleFlags(t *testing.T) {
	day := Day{IsEarlyDeparture: true, EarlyDepartureMinutes: 30}
	day.ApplyEarlyDeparture(EarlyDepartureResult{})
	assert.False(t, day.IsEarlyDeparture)
	assert.Zero(t, day.EarlyDepartureMinutes)
}
