package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peopleops-hr/attendance-backend-go/internal/config"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/employee"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/shift"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/database"
	"github.com/peopleops-hr/attendance-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.DayRepository
	attendance.SessionRepository
	employee.EmployeeRepository
	resolver *shift.Resolver
	cfg      config.AttendanceConfig
}

const dateLayout = "2006-01-02"

// dateOf normalizes an instant to its calendar date, stored as UTC
// midnight so date equality is timezone-independent.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func (a *AttendanceServiceImpl) fallbackLocation() *time.Location {
	loc, err := time.LoadLocation(a.cfg.FallbackTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// deriveDay re-derives every stored day field from the session log and
// shift configuration. All three clock paths and the explicit recompute
// go through here, so the day row never drifts from its sessions.
func (a *AttendanceServiceImpl) deriveDay(ctx context.Context, emp employee.Employee, day *attendance.Day, loc *time.Location) error {
	sessions, err := a.SessionRepository.ListByEmployeeAndDate(ctx, day.EmployeeID, day.Date)
	if err != nil {
		return fmt.Errorf("failed to list sessions for derivation: %w", err)
	}

	day.ApplySessions(sessions)
	day.UserTimezone = loc.String()

	resolution, err := a.resolver.Resolve(ctx, emp)
	if err != nil {
		return fmt.Errorf("failed to resolve shift: %w", err)
	}
	if !resolution.Configured() || len(sessions) == 0 {
		return nil
	}

	// Lateness is judged on the first clock-in of the day.
	first := sessions[0].ClockIn.In(loc)
	priorGraceUsed, err := a.DayRepository.CountGraceUsedInMonth(ctx, day.EmployeeID, day.Date)
	if err != nil {
		return fmt.Errorf("failed to count grace usage: %w", err)
	}
	day.ApplyLateness(attendance.EvaluateClockIn(resolution.Shift, first, first, priorGraceUsed))

	// Early departure is judged on the final clock-out, once no session
	// remains open.
	var lastOut *time.Time
	for i := range sessions {
		if out := sessions[i].ClockOut; out != nil {
			if lastOut == nil || out.After(*lastOut) {
				lastOut = out
			}
		}
	}
	if day.IsCurrentlyClockedIn || lastOut == nil {
		day.ApplyEarlyDeparture(attendance.EarlyDepartureResult{})
		return nil
	}
	local := lastOut.In(loc)
	day.ApplyEarlyDeparture(attendance.EvaluateClockOut(resolution.Shift, first, local))

	return nil
}

func (a *AttendanceServiceImpl) buildDayResponse(ctx context.Context, day attendance.Day) (attendance.DayResponse, error) {
	sessions, err := a.SessionRepository.ListByEmployeeAndDate(ctx, day.EmployeeID, day.Date)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	resp := attendance.DayResponse{
		ID:                      day.ID,
		EmployeeID:              day.EmployeeID,
		Date:                    day.Date.Format(dateLayout),
		Status:                  string(day.Status),
		IsLate:                  day.IsLate,
		LateByMinutes:           day.LateByMinutes,
		IsGraceUsed:             day.IsGraceUsed,
		IsHalfDayLate:           day.IsHalfDayLate,
		IsEarlyDeparture:        day.IsEarlyDeparture,
		EarlyDepartureMinutes:   day.EarlyDepartureMinutes,
		IsCurrentlyClockedIn:    day.IsCurrentlyClockedIn,
		DailySessionsCount:      day.DailySessionsCount,
		TotalWorkedHours:        float64(day.TotalWorkedMinutes) / 60.0,
		LocationTrackingStopped: day.ShouldStopLocationTracking(),
	}
	if day.CurrentSessionType != nil {
		st := string(*day.CurrentSessionType)
		resp.CurrentSessionType = &st
	}

	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, attendance.SessionResponse{
			ID:              s.ID,
			SessionNumber:   s.SessionNumber,
			SessionType:     string(s.SessionType),
			ClockIn:         s.ClockIn.Format(time.RFC3339),
			ClockOut:        timePtrToString(s.ClockOut),
			DurationMinutes: s.DurationMinutes,
		})
	}

	return resp, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID, req.CompanyID)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	loc := emp.Location(a.fallbackLocation())
	now := time.Now().In(loc)
	date := dateOf(now)

	sessionType := attendance.SessionType(req.SessionType)
	if sessionType == "" {
		sessionType = attendance.SessionTypeWeb
	}

	var day attendance.Day
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		existing, err := a.DayRepository.GetForUpdate(txCtx, emp.ID, date, emp.CompanyID)
		if err != nil {
			return err
		}
		if existing == nil {
			created, err := a.DayRepository.Create(txCtx, attendance.Day{
				EmployeeID:   emp.ID,
				CompanyID:    emp.CompanyID,
				Date:         date,
				Status:       attendance.StatusPresent,
				UserTimezone: loc.String(),
			})
			if err != nil {
				return err
			}
			existing = &created
		}

		open, err := a.SessionRepository.GetOpen(txCtx, emp.ID, date)
		if err != nil {
			return err
		}
		if open != nil {
			return attendance.ErrAlreadyClockedIn
		}

		sessions, err := a.SessionRepository.ListByEmployeeAndDate(txCtx, emp.ID, date)
		if err != nil {
			return err
		}
		if len(sessions) >= a.cfg.MaxDailySessions {
			return attendance.ErrSessionLimitExceeded
		}

		_, err = a.SessionRepository.Create(txCtx, attendance.Session{
			EmployeeID:       emp.ID,
			CompanyID:        emp.CompanyID,
			Date:             date,
			SessionNumber:    len(sessions) + 1,
			ClockIn:          now,
			SessionType:      sessionType,
			ClockInLatitude:  req.Latitude,
			ClockInLongitude: req.Longitude,
		})
		if err != nil {
			return err
		}

		if err := a.deriveDay(txCtx, emp, existing, loc); err != nil {
			return err
		}
		if err := a.DayRepository.Update(txCtx, *existing); err != nil {
			return err
		}

		day = *existing
		return nil
	})
	if err != nil {
		return attendance.DayResponse{}, err
	}

	return a.buildDayResponse(ctx, day)
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID, req.CompanyID)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	loc := emp.Location(a.fallbackLocation())
	now := time.Now().In(loc)
	date := dateOf(now)

	var day attendance.Day
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		existing, err := a.DayRepository.GetForUpdate(txCtx, emp.ID, date, emp.CompanyID)
		if err != nil {
			return err
		}
		if existing == nil {
			return attendance.ErrNotClockedIn
		}

		open, err := a.SessionRepository.GetOpen(txCtx, emp.ID, date)
		if err != nil {
			return err
		}
		if open == nil {
			return attendance.ErrNotClockedIn
		}

		open.ClockOut = &now
		open.ClockOutLatitude = req.Latitude
		open.ClockOutLongitude = req.Longitude
		open.RecomputeDuration()
		if err := a.SessionRepository.Update(txCtx, *open); err != nil {
			return err
		}

		if err := a.deriveDay(txCtx, emp, existing, loc); err != nil {
			return err
		}
		if err := a.DayRepository.Update(txCtx, *existing); err != nil {
			return err
		}

		day = *existing
		return nil
	})
	if err != nil {
		return attendance.DayResponse{}, err
	}

	return a.buildDayResponse(ctx, day)
}

// Today implements attendance.AttendanceService. When the employee has
// not clocked in yet, the response is an empty day rather than an error
// so dashboards can poll it before the first punch.
func (a *AttendanceServiceImpl) Today(ctx context.Context, employeeID string, companyID string) (attendance.DayResponse, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	loc := emp.Location(a.fallbackLocation())
	date := dateOf(time.Now().In(loc))

	day, err := a.DayRepository.Get(ctx, emp.ID, date, emp.CompanyID)
	if err != nil {
		return attendance.DayResponse{}, err
	}
	if day == nil {
		return attendance.DayResponse{
			EmployeeID: emp.ID,
			Date:       date.Format(dateLayout),
		}, nil
	}

	return a.buildDayResponse(ctx, *day)
}

// Summary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Summary(ctx context.Context, employeeID string, companyID string, date string) (attendance.SummaryResponse, error) {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	sessions, err := a.SessionRepository.ListByEmployeeAndDate(ctx, emp.ID, dateOf(parsed))
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	expected := a.cfg.DefaultExpectedHours
	if expected <= 0 {
		expected = attendance.DefaultExpectedHours
	}
	resolution, err := a.resolver.Resolve(ctx, emp)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	if resolution.Configured() {
		expected = resolution.Shift.DurationHours()
	}

	summary := attendance.CombineSessions(sessions, expected)
	return attendance.SummaryResponse{
		TotalSessions:        summary.TotalSessions,
		CompletedSessions:    summary.CompletedSessions,
		ActiveSessions:       summary.ActiveSessions,
		TotalWorkedHours:     summary.TotalWorkedHours,
		ExpectedHours:        summary.ExpectedHours,
		CompletionPercentage: summary.CompletionPercentage,
		RemainingHours:       summary.RemainingHours,
		IsShiftComplete:      summary.IsShiftComplete,
	}, nil
}

// Recompute implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Recompute(ctx context.Context, req attendance.RecomputeRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}

	parsed, _ := time.Parse(dateLayout, req.Date)
	date := dateOf(parsed)

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID, req.CompanyID)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	loc := emp.Location(a.fallbackLocation())

	var day attendance.Day
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		existing, err := a.DayRepository.GetForUpdate(txCtx, emp.ID, date, emp.CompanyID)
		if err != nil {
			return err
		}
		if existing == nil {
			return attendance.ErrDayNotFound
		}

		if err := a.deriveDay(txCtx, emp, existing, loc); err != nil {
			return err
		}
		if err := a.DayRepository.Update(txCtx, *existing); err != nil {
			return err
		}

		day = *existing
		return nil
	})
	if err != nil {
		return attendance.DayResponse{}, err
	}

	return a.buildDayResponse(ctx, day)
}

// Absentees implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Absentees(ctx context.Context, companyID string, date string) ([]attendance.AbsenteeResponse, error) {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	days, err := a.DayRepository.ListByStatusAndDate(ctx, companyID, attendance.StatusAbsent, dateOf(parsed))
	if err != nil {
		return nil, err
	}

	employees, err := a.EmployeeRepository.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName
	}

	var absentees []attendance.AbsenteeResponse
	for _, d := range days {
		absentees = append(absentees, attendance.AbsenteeResponse{
			EmployeeID:   d.EmployeeID,
			EmployeeName: names[d.EmployeeID],
			Date:         d.Date.Format(dateLayout),
			Status:       string(d.Status),
		})
	}

	return absentees, nil
}

func NewAttendanceService(
	db *database.DB,
	dayRepo attendance.DayRepository,
	sessionRepo attendance.SessionRepository,
	employeeRepo employee.EmployeeRepository,
	resolver *shift.Resolver,
	cfg config.AttendanceConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                 db,
		DayRepository:      dayRepo,
		SessionRepository:  sessionRepo,
		EmployeeRepository: employeeRepo,
		resolver:           resolver,
		cfg:                cfg,
	}
}
