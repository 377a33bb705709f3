package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/peopleops-hr/attendance-backend-go/internal/config"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/employee"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/holiday"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/leave"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/shift"
)

// ReconcileJobs are the batch reconcilers keeping day rows and the
// leave ledger consistent with the session log and approvals. Every job
// tolerates per-record failures and is safe to re-run.
type ReconcileJobs struct {
	sessionRepo   attendance.SessionRepository
	dayRepo       attendance.DayRepository
	employeeRepo  employee.EmployeeRepository
	holidayRepo   holiday.HolidayRepository
	balanceRepo   leave.BalanceRepository
	requestRepo   leave.RequestRepository
	resolver      *shift.Resolver
	attendanceSvc attendance.AttendanceService
	cfg           config.AttendanceConfig
}

func NewReconcileJobs(
	sessionRepo attendance.SessionRepository,
	dayRepo attendance.DayRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	balanceRepo leave.BalanceRepository,
	requestRepo leave.RequestRepository,
	resolver *shift.Resolver,
	attendanceSvc attendance.AttendanceService,
	cfg config.AttendanceConfig,
) *ReconcileJobs {
	return &ReconcileJobs{
		sessionRepo:   sessionRepo,
		dayRepo:       dayRepo,
		employeeRepo:  employeeRepo,
		holidayRepo:   holidayRepo,
		balanceRepo:   balanceRepo,
		requestRepo:   requestRepo,
		resolver:      resolver,
		attendanceSvc: attendanceSvc,
		cfg:           cfg,
	}
}

func (j *ReconcileJobs) RegisterJobs(scheduler *Scheduler) {
	interval := j.cfg.ReconcileInterval
	scheduler.AddJob("auto_close_stale_sessions", interval, j.AutoCloseStaleSessions)
	scheduler.AddJob("mark_absent_days", interval, j.MarkAbsentDays)
	scheduler.AddJob("sync_leave_days", interval, j.SyncLeaveDays)
	scheduler.AddJob("report_ledger_drift", interval, j.ReportLedgerDrift)
}

const dateLayout = "2006-01-02"

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (j *ReconcileJobs) fallbackLocation() *time.Location {
	loc, err := time.LoadLocation(j.cfg.FallbackTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AutoCloseStaleSessions closes open sessions left over from previous
// days at the shift end of their date, then re-derives the day.
func (j *ReconcileJobs) AutoCloseStaleSessions(ctx context.Context) error {
	today := dateOf(time.Now().UTC())

	stale, err := j.sessionRepo.ListStaleOpen(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list stale sessions: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	closed := 0
	for _, session := range stale {
		emp, err := j.employeeRepo.GetByID(ctx, session.EmployeeID, session.CompanyID)
		if err != nil {
			slog.Error("Auto-close: employee lookup failed",
				"session_id", session.ID, "employee_id", session.EmployeeID, "error", err)
			continue
		}
		loc := emp.Location(j.fallbackLocation())

		resolution, err := j.resolver.Resolve(ctx, emp)
		if err != nil {
			slog.Error("Auto-close: shift resolution failed",
				"session_id", session.ID, "employee_id", session.EmployeeID, "error", err)
			continue
		}

		// Close at shift end on the session's date; without a shift,
		// assume the default working span from the clock-in.
		var closeAt time.Time
		if resolution.Configured() {
			localDate := time.Date(session.Date.Year(), session.Date.Month(), session.Date.Day(), 0, 0, 0, 0, loc)
			closeAt = resolution.Shift.EndOn(localDate, loc)
		} else {
			expected := j.cfg.DefaultExpectedHours
			if expected <= 0 {
				expected = attendance.DefaultExpectedHours
			}
			closeAt = session.ClockIn.Add(time.Duration(expected * float64(time.Hour)))
		}
		if closeAt.Before(session.ClockIn) {
			closeAt = session.ClockIn
		}

		session.ClockOut = &closeAt
		session.RecomputeDuration()
		if err := j.sessionRepo.Update(ctx, session); err != nil {
			slog.Error("Auto-close: session update failed",
				"session_id", session.ID, "error", err)
			continue
		}

		_, err = j.attendanceSvc.Recompute(ctx, attendance.RecomputeRequest{
			EmployeeID: session.EmployeeID,
			CompanyID:  session.CompanyID,
			Date:       session.Date.Format(dateLayout),
		})
		if err != nil {
			slog.Error("Auto-close: day recompute failed",
				"session_id", session.ID, "employee_id", session.EmployeeID, "error", err)
			continue
		}

		closed++
	}

	slog.Info("Auto-closed stale sessions", "found", len(stale), "closed", closed)
	return nil
}

// MarkAbsentDays writes a day row for yesterday (employee-local) when
// none exists, with precedence Holiday > Week-off > Absent. Future
// dates are never touched; existing rows are never overwritten.
func (j *ReconcileJobs) MarkAbsentDays(ctx context.Context) error {
	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	marked := 0
	for _, companyID := range companyIDs {
		employees, err := j.employeeRepo.ListActiveByCompany(ctx, companyID)
		if err != nil {
			slog.Error("Mark-absent: employee list failed", "company_id", companyID, "error", err)
			continue
		}

		for _, emp := range employees {
			loc := emp.Location(j.fallbackLocation())
			yesterdayLocal := time.Now().In(loc).AddDate(0, 0, -1)
			date := dateOf(yesterdayLocal)

			exists, err := j.dayRepo.ExistsOn(ctx, emp.ID, date)
			if err != nil {
				slog.Error("Mark-absent: existence check failed", "employee_id", emp.ID, "error", err)
				continue
			}
			if exists {
				continue
			}

			isHoliday, err := j.holidayRepo.ExistsOn(ctx, companyID, emp.LocationID, date)
			if err != nil {
				slog.Error("Mark-absent: holiday check failed", "employee_id", emp.ID, "error", err)
				continue
			}

			status := attendance.DeriveAbsenceStatus(isHoliday, emp.WeekOff.IsWeekOff(yesterdayLocal))

			_, err = j.dayRepo.Create(ctx, attendance.Day{
				EmployeeID:   emp.ID,
				CompanyID:    companyID,
				Date:         date,
				Status:       status,
				UserTimezone: loc.String(),
			})
			if err != nil {
				slog.Error("Mark-absent: day create failed", "employee_id", emp.ID, "error", err)
				continue
			}
			marked++
		}
	}

	slog.Info("Marked absence days", "count", marked)
	return nil
}

// SyncLeaveDays stamps LEAVE/HALF_DAY day rows for approved leave
// covering today, skipping the employee's week-offs. Re-running yields
// the same rows.
func (j *ReconcileJobs) SyncLeaveDays(ctx context.Context) error {
	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	synced := 0
	for _, companyID := range companyIDs {
		requests, err := j.requestRepo.ListApprovedOnDate(ctx, companyID, dateOf(time.Now().UTC()))
		if err != nil {
			slog.Error("Sync-leave: request list failed", "company_id", companyID, "error", err)
			continue
		}

		for _, request := range requests {
			if request.LeaveType == leave.TypeOnDuty {
				continue
			}

			emp, err := j.employeeRepo.GetByID(ctx, request.EmployeeID, companyID)
			if err != nil {
				slog.Error("Sync-leave: employee lookup failed", "employee_id", request.EmployeeID, "error", err)
				continue
			}
			loc := emp.Location(j.fallbackLocation())
			todayLocal := time.Now().In(loc)
			date := dateOf(todayLocal)

			if emp.WeekOff.IsWeekOff(todayLocal) {
				continue
			}

			status := attendance.StatusLeave
			if request.Duration.IsHalfDay() {
				status = attendance.StatusHalfDay
			}

			day, err := j.dayRepo.Get(ctx, emp.ID, date, companyID)
			if err != nil {
				slog.Error("Sync-leave: day lookup failed", "employee_id", emp.ID, "error", err)
				continue
			}
			if day == nil {
				_, err = j.dayRepo.Create(ctx, attendance.Day{
					EmployeeID:   emp.ID,
					CompanyID:    companyID,
					Date:         date,
					Status:       status,
					UserTimezone: loc.String(),
				})
				if err != nil {
					slog.Error("Sync-leave: day create failed", "employee_id", emp.ID, "error", err)
					continue
				}
				synced++
				continue
			}

			if day.Status == status {
				continue
			}
			day.Status = status
			if err := j.dayRepo.Update(ctx, *day); err != nil {
				slog.Error("Sync-leave: day update failed", "employee_id", emp.ID, "error", err)
				continue
			}
			synced++
		}
	}

	slog.Info("Synced leave days", "count", synced)
	return nil
}

// ReportLedgerDrift repairs balances pushed out of bounds by manual
// edits and reports every repair. The write path itself cannot produce
// violations, so anything found here points at out-of-band changes.
func (j *ReconcileJobs) ReportLedgerDrift(ctx context.Context) error {
	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	repairedTotal := 0.0
	for _, companyID := range companyIDs {
		balances, err := j.balanceRepo.ListByCompany(ctx, companyID)
		if err != nil {
			slog.Error("Ledger-drift: balance list failed", "company_id", companyID, "error", err)
			continue
		}

		for i := range balances {
			repaired := balances[i].FixNegativeBalances()
			if repaired == 0 {
				continue
			}

			if err := j.balanceRepo.Update(ctx, &balances[i]); err != nil {
				slog.Error("Ledger-drift: balance update failed",
					"employee_id", balances[i].EmployeeID, "error", err)
				continue
			}

			slog.Warn("Ledger drift repaired",
				"employee_id", balances[i].EmployeeID,
				"company_id", companyID,
				"days_repaired", repaired)
			repairedTotal += repaired
		}
	}

	if repairedTotal > 0 {
		slog.Warn("Ledger drift detected this run", "total_days_repaired", repairedTotal)
	}
	return nil
}
