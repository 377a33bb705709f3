package attendance

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops-hr/attendance-backend-go/internal/config"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/shift"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/database"
	"github.com/peopleops-hr/attendance-backend-go/internal/repository/postgresql"
)

const testCompanyID = "co-att-test"

var attendanceSchema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		user_id TEXT,
		company_id TEXT NOT NULL,
		full_name TEXT NOT NULL,
		manager_id TEXT,
		assigned_shift_id TEXT,
		shift_name TEXT,
		location_id TEXT,
		timezone TEXT,
		week_off_monday BOOLEAN NOT NULL DEFAULT FALSE,
		week_off_tuesday BOOLEAN NOT NULL DEFAULT FALSE,
		week_off_wednesday BOOLEAN NOT NULL DEFAULT FALSE,
		week_off_thursday BOOLEAN NOT NULL DEFAULT FALSE,
		week_off_friday BOOLEAN NOT NULL DEFAULT FALSE,
		week_off_saturday BOOLEAN NOT NULL DEFAULT FALSE,
		week_off_sunday BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS shift_schedules (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		name TEXT NOT NULL,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		grace_period_minutes INT NOT NULL DEFAULT 0,
		allowed_late_logins INT NOT NULL DEFAULT 0,
		grace_exceeded_action TEXT NOT NULL DEFAULT 'NONE',
		early_departure_threshold_minutes INT NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_days (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		date DATE NOT NULL,
		status TEXT NOT NULL,
		is_late BOOLEAN NOT NULL DEFAULT FALSE,
		late_by_minutes INT NOT NULL DEFAULT 0,
		is_grace_used BOOLEAN NOT NULL DEFAULT FALSE,
		is_half_day_late BOOLEAN NOT NULL DEFAULT FALSE,
		is_early_departure BOOLEAN NOT NULL DEFAULT FALSE,
		early_departure_minutes INT NOT NULL DEFAULT 0,
		is_currently_clocked_in BOOLEAN NOT NULL DEFAULT FALSE,
		daily_sessions_count INT NOT NULL DEFAULT 0,
		current_session_type TEXT,
		total_worked_minutes INT NOT NULL DEFAULT 0,
		user_timezone TEXT NOT NULL DEFAULT 'UTC',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (employee_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_sessions (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		date DATE NOT NULL,
		session_number INT NOT NULL,
		clock_in TIMESTAMPTZ NOT NULL,
		clock_out TIMESTAMPTZ,
		session_type TEXT NOT NULL DEFAULT 'WEB',
		clock_in_latitude DOUBLE PRECISION,
		clock_in_longitude DOUBLE PRECISION,
		clock_out_latitude DOUBLE PRECISION,
		clock_out_longitude DOUBLE PRECISION,
		duration_minutes INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (employee_id, date, session_number)
	)`,
}

// testService connects to TEST_DATABASE_URL and seeds one active
// employee with no shift configured, so clock events skip lateness
// evaluation and the tests are independent of wall-clock time.
func testService(t *testing.T) attendance.AttendanceService {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Pool.Close)

	ctx := context.Background()
	for _, stmt := range attendanceSchema {
		_, err := db.Pool.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	for _, stmt := range []string{
		`DELETE FROM attendance_sessions WHERE company_id = $1`,
		`DELETE FROM attendance_days WHERE company_id = $1`,
		`DELETE FROM shift_schedules WHERE company_id = $1`,
		`DELETE FROM employees WHERE company_id = $1`,
	} {
		_, err := db.Pool.Exec(ctx, stmt, testCompanyID)
		require.NoError(t, err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO employees (id, company_id, full_name, timezone, is_active)
		VALUES ('emp-att-1', $1, 'Asha Pillai', 'UTC', TRUE)
	`, testCompanyID)
	require.NoError(t, err)

	cfg := config.AttendanceConfig{
		MaxDailySessions:     3,
		FallbackTimezone:     "UTC",
		DefaultExpectedHours: 9.0,
		ReconcileInterval:    time.Hour,
	}
	shiftRepo := postgresql.NewShiftRepository(db)
	return NewAttendanceService(
		db,
		postgresql.NewDayRepository(db),
		postgresql.NewSessionRepository(db),
		postgresql.NewEmployeeRepository(db),
		shift.NewResolver(shiftRepo),
		cfg,
	)
}

func clockIn(t *testing.T, svc attendance.AttendanceService) (attendance.DayResponse, error) {
	t.Helper()
	return svc.ClockIn(context.Background(), attendance.ClockInRequest{
		EmployeeID: "emp-att-1",
		CompanyID:  testCompanyID,
	})
}

func clockOut(t *testing.T, svc attendance.AttendanceService) (attendance.DayResponse, error) {
	t.Helper()
	return svc.ClockOut(context.Background(), attendance.ClockOutRequest{
		EmployeeID: "emp-att-1",
		CompanyID:  testCompanyID,
	})
}

func TestClockInOpensSession(t *testing.T) {
	svc := testService(t)

	day, err := clockIn(t, svc)
	require.NoError(t, err)

	assert.True(t, day.IsCurrentlyClockedIn)
	assert.Equal(t, 1, day.DailySessionsCount)
	assert.Equal(t, string(attendance.StatusPresent), day.Status)
	require.Len(t, day.Sessions, 1)
	assert.Equal(t, 1, day.Sessions[0].SessionNumber)
	assert.Nil(t, day.Sessions[0].ClockOut)
}

func TestClockInRejectsOpenSession(t *testing.T) {
	svc := testService(t)

	_, err := clockIn(t, svc)
	require.NoError(t, err)

	_, err = clockIn(t, svc)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockOutWithoutOpenSession(t *testing.T) {
	svc := testService(t)

	_, err := clockOut(t, svc)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	_, err = clockIn(t, svc)
	require.NoError(t, err)
	_, err = clockOut(t, svc)
	require.NoError(t, err)

	_, err = clockOut(t, svc)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestDailySessionLimit(t *testing.T) {
	svc := testService(t)

	for i := 0; i < 3; i++ {
		_, err := clockIn(t, svc)
		require.NoError(t, err)
		_, err = clockOut(t, svc)
		require.NoError(t, err)
	}

	_, err := clockIn(t, svc)
	assert.ErrorIs(t, err, attendance.ErrSessionLimitExceeded)
}

func TestTodayAndSummaryReflectSessions(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	// Before the first punch today is an empty day, not an error.
	day, err := svc.Today(ctx, "emp-att-1", testCompanyID)
	require.NoError(t, err)
	assert.Zero(t, day.DailySessionsCount)
	assert.False(t, day.IsCurrentlyClockedIn)

	_, err = clockIn(t, svc)
	require.NoError(t, err)
	_, err = clockOut(t, svc)
	require.NoError(t, err)

	day, err = svc.Today(ctx, "emp-att-1", testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 1, day.DailySessionsCount)
	assert.True(t, day.LocationTrackingStopped)

	summary, err := svc.Summary(ctx, "emp-att-1", testCompanyID, day.Date)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalSessions)
	assert.Equal(t, 1, summary.CompletedSessions)
	assert.Equal(t, 9.0, summary.ExpectedHours)
}

func TestRecomputeMissingDay(t *testing.T) {
	svc := testService(t)

	_, err := svc.Recompute(context.Background(), attendance.RecomputeRequest{
		EmployeeID: "emp-att-1",
		CompanyID:  testCompanyID,
		Date:       "2020-01-01",
	})
	assert.ErrorIs(t, err, attendance.ErrDayNotFound)
}
