package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func closedSession(number, minutes int) Session {
	in := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	out := in.Add(time.Duration(minutes) * time.Minute)
	return Session{
		SessionNumber:   number,
		ClockIn:         in,
		ClockOut:        &out,
		SessionType:     SessionTypeWeb,
		DurationMinutes: minutes,
	}
}

func openSession(number int) Session {
	return Session{
		SessionNumber: number,
		ClockIn:       time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		SessionType:   SessionTypeRemote,
	}
}

func TestCompletedMinutes(t *testing.T) {
	sessions := []Session{
		closedSession(1, 240),
		closedSession(2, 120),
		openSession(3),
	}

	// Open sessions contribute nothing.
	assert.Equal(t, 360, CompletedMinutes(sessions))
}

func TestCompletedMinutesDailyCap(t *testing.T) {
	sessions := []Session{
		closedSession(1, 1200),
		closedSession(2, 900),
	}
	assert.Equal(t, 1440, CompletedMinutes(sessions))
}

func TestCombineSessions(t *testing.T) {
	sessions := []Session{
		closedSession(1, 240),
		closedSession(2, 252),
		openSession(3),
	}

	summary := CombineSessions(sessions, 9.0)
	assert.Equal(t, 3, summary.TotalSessions)
	assert.Equal(t, 2, summary.CompletedSessions)
	assert.Equal(t, 1, summary.ActiveSessions)
	assert.Equal(t, 8.2, summary.TotalWorkedHours)
	assert.Equal(t, 9.0, summary.ExpectedHours)
	assert.Equal(t, 91.1, summary.CompletionPercentage)
	assert.True(t, summary.IsShiftComplete)
}

func TestCombineSessionsBelowThreshold(t *testing.T) {
	summary := CombineSessions([]Session{closedSession(1, 480)}, 9.0)
	assert.Equal(t, 8.0, summary.TotalWorkedHours)
	assert.False(t, summary.IsShiftComplete)
	assert.InDelta(t, 1.0, summary.RemainingHours, 0.001)
}

func TestCombineSessionsCompletionCapped(t *testing.T) {
	summary := CombineSessions([]Session{closedSession(1, 660)}, 9.0)
	assert.Equal(t, 100.0, summary.CompletionPercentage)
	assert.Zero(t, summary.RemainingHours)
}

func TestCombineSessionsEmpty(t *testing.T) {
	summary := CombineSessions(nil, 9.0)
	assert.Zero(t, summary.TotalSessions)
	assert.Zero(t, summary.TotalWorkedHours)
	assert.False(t, summary.IsShiftComplete)
}

func TestApplySessions(t *testing.T) {
	day := Day{Status: StatusAbsent}
	day.ApplySessions([]Session{closedSession(1, 240), openSession(2)})

	assert.Equal(t, 2, day.DailySessionsCount)
	assert.Equal(t, 240, day.TotalWorkedMinutes)
	assert.True(t, day.IsCurrentlyClockedIn)
	assert.Equal(t, StatusPresent, day.Status)
	assert.NotNil(t, day.CurrentSessionType)
	assert.Equal(t, SessionTypeRemote, *day.CurrentSessionType)
}

func TestApplySessionsKeepsProtectedStatus(t *testing.T) {
	day := Day{Status: StatusOnDuty}
	day.ApplySessions([]Session{closedSession(1, 60)})
	assert.Equal(t, StatusOnDuty, day.Status)
}

func TestShouldStopLocationTracking(t *testing.T) {
	// No sessions yet: nothing to stop.
	assert.False(t, Day{}.ShouldStopLocationTracking())

	// Open session: keep tracking.
	assert.False(t, Day{DailySessionsCount: 1, IsCurrentlyClockedIn: true}.ShouldStopLocationTracking())

	// Clocked out: stop.
	assert.True(t, Day{DailySessionsCount: 1, IsCurrentlyClockedIn: false}.ShouldStopLocationTracking())
}

func TestDeriveAbsenceStatus(t *testing.T) {
	assert.Equal(t, StatusHoliday, DeriveAbsenceStatus(true, true))
	assert.Equal(t, StatusWeeklyOff, DeriveAbsenceStatus(false, true))
	assert.Equal(t, StatusAbsent, DeriveAbsenceStatus(false, false))
}

func TestSessionRecomputeDuration(t *testing.T) {
	s := closedSession(1, 0)
	out := s.ClockIn.Add(95 * time.Minute)
	s.ClockOut = &out
	s.RecomputeDuration()
	assert.Equal(t, 95, s.DurationMinutes)

	s.ClockOut = nil
	s.RecomputeDuration()
	assert.Zero(t, s.DurationMinutes)
}
