package leave

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops-hr/attendance-backend-go/internal/domain/leave"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/database"
	"github.com/peopleops-hr/attendance-backend-go/internal/repository/postgresql"
)

const testCompanyID = "co-leave-test"

var leaveSchema = []string{
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
	`CREATE TABLE IF NOT EXISTS leave_balances (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL UNIQUE,
		company_id TEXT NOT NULL,
		casual_allocated DOUBLE PRECISION NOT NULL DEFAULT 0,
		casual_used DOUBLE PRECISION NOT NULL DEFAULT 0,
		sick_allocated DOUBLE PRECISION NOT NULL DEFAULT 0,
		sick_used DOUBLE PRECISION NOT NULL DEFAULT 0,
		earned_allocated DOUBLE PRECISION NOT NULL DEFAULT 0,
		earned_used DOUBLE PRECISION NOT NULL DEFAULT 0,
		unpaid DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		duration TEXT NOT NULL DEFAULT 'FULL',
		reason TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		approved_by TEXT,
		approved_at TIMESTAMPTZ,
		rejection_reason TEXT,
		paid_days_deducted DOUBLE PRECISION NOT NULL DEFAULT 0,
		unpaid_days_deducted DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// testService connects to TEST_DATABASE_URL and seeds one employee
// reporting to a manager, with a balance of CL 12/0, SL 3/1, EL 15/0.
func testService(t *testing.T) leave.LeaveService {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Pool.Close)

	ctx := context.Background()
	for _, stmt := range leaveSchema {
		_, err := db.Pool.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	for _, stmt := range []string{
		`DELETE FROM leave_requests WHERE company_id = $1`,
		`DELETE FROM leave_balances WHERE company_id = $1`,
		`DELETE FROM employees WHERE company_id = $1`,
	} {
		_, err := db.Pool.Exec(ctx, stmt, testCompanyID)
		require.NoError(t, err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO employees (id, company_id, full_name, manager_id) VALUES
			('mgr-lv-1', $1, 'Meera Iyer', NULL),
			('emp-lv-1', $1, 'Ravi Menon', 'mgr-lv-1')
	`, testCompanyID)
	require.NoError(t, err)

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO leave_balances (
			id, employee_id, company_id,
			casual_allocated, sick_allocated, sick_used, earned_allocated
		) VALUES ('bal-lv-1', 'emp-lv-1', $1, 12, 3, 1, 15)
	`, testCompanyID)
	require.NoError(t, err)

	return NewLeaveService(
		db,
		postgresql.NewLeaveBalanceRepository(db),
		postgresql.NewLeaveRequestRepository(db),
		postgresql.NewEmployeeRepository(db),
	)
}

func adminActor() leave.Actor {
	return leave.Actor{EmployeeID: "admin-lv-1", CompanyID: testCompanyID, Role: "admin"}
}

func managerActor() leave.Actor {
	return leave.Actor{EmployeeID: "mgr-lv-1", CompanyID: testCompanyID, Role: "manager"}
}

func employeeActor() leave.Actor {
	return leave.Actor{EmployeeID: "emp-lv-1", CompanyID: testCompanyID, Role: "employee"}
}

func createRequest(t *testing.T, svc leave.LeaveService, leaveType, start, end string) *leave.RequestResponse {
	t.Helper()
	created, err := svc.CreateRequest(context.Background(), leave.CreateRequestRequest{
		EmployeeID: "emp-lv-1",
		CompanyID:  testCompanyID,
		LeaveType:  leaveType,
		StartDate:  start,
		EndDate:    end,
		Reason:     "family function",
	})
	require.NoError(t, err)
	require.Equal(t, string(leave.StatusPending), created.Status)
	return created
}

func TestCreateRequestRejectsInvertedRange(t *testing.T) {
	svc := testService(t)

	_, err := svc.CreateRequest(context.Background(), leave.CreateRequestRequest{
		EmployeeID: "emp-lv-1",
		CompanyID:  testCompanyID,
		LeaveType:  "CL",
		StartDate:  "2026-03-12",
		EndDate:    "2026-03-10",
		Reason:     "typo",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestApproveDeductsAndCancelReverses(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created := createRequest(t, svc, "CL", "2026-03-10", "2026-03-12")
	assert.Equal(t, 3.0, created.TotalDays)

	approved, err := svc.Approve(ctx, managerActor(), leave.ApproveRequest{RequestID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)
	assert.Equal(t, 3.0, approved.PaidDaysDeducted)
	assert.Zero(t, approved.UnpaidDaysDeducted)

	balance, err := svc.Balance(ctx, "emp-lv-1", testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, balance.Balances["CL"].Used)
	assert.Equal(t, 9.0, balance.Balances["CL"].Available)

	// Cancelling an approved request is an admin correction and must
	// restore the ledger exactly.
	cancelled, err := svc.Cancel(ctx, adminActor(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), cancelled.Status)

	balance, err = svc.Balance(ctx, "emp-lv-1", testCompanyID)
	require.NoError(t, err)
	assert.Zero(t, balance.Balances["CL"].Used)
	assert.Zero(t, balance.UnpaidDays)
}

func TestApproveOverflowNeedsAcknowledgement(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	// SL has 3 allocated, 1 used: five days overflow by three.
	created := createRequest(t, svc, "SL", "2026-03-09", "2026-03-13")

	_, err := svc.Approve(ctx, managerActor(), leave.ApproveRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// The prompt must not have touched anything.
	balance, err := svc.Balance(ctx, "emp-lv-1", testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, balance.Balances["SL"].Used)
	assert.Zero(t, balance.UnpaidDays)

	approved, err := svc.Approve(ctx, managerActor(), leave.ApproveRequest{
		RequestID:         created.ID,
		AcknowledgeUnpaid: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, approved.PaidDaysDeducted)
	assert.Equal(t, 3.0, approved.UnpaidDaysDeducted)

	balance, err = svc.Balance(ctx, "emp-lv-1", testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, balance.Balances["SL"].Used)
	assert.Equal(t, 3.0, balance.UnpaidDays)
}

func TestApproveRequiresManagerOrAdmin(t *testing.T) {
	svc := testService(t)

	created := createRequest(t, svc, "CL", "2026-03-10", "2026-03-10")

	_, err := svc.Approve(context.Background(), employeeActor(), leave.ApproveRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrUnauthorized)
}

func TestApproveIsSingleShot(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created := createRequest(t, svc, "CL", "2026-03-10", "2026-03-10")

	_, err := svc.Approve(ctx, adminActor(), leave.ApproveRequest{RequestID: created.ID})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, adminActor(), leave.ApproveRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestRejectPendingLeavesLedgerAlone(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created := createRequest(t, svc, "EL", "2026-03-10", "2026-03-11")

	rejected, err := svc.Reject(ctx, managerActor(), leave.RejectRequest{
		RequestID: created.ID,
		Reason:    "project deadline",
	})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusRejected), rejected.Status)
	require.NotNil(t, rejected.RejectionReason)

	balance, err := svc.Balance(ctx, "emp-lv-1", testCompanyID)
	require.NoError(t, err)
	assert.Zero(t, balance.Balances["EL"].Used)
}

func TestCancelOwnPendingRequest(t *testing.T) {
	svc := testService(t)

	created := createRequest(t, svc, "CL", "2026-03-10", "2026-03-10")

	cancelled, err := svc.Cancel(context.Background(), employeeActor(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), cancelled.Status)
}

func TestUnpaidLeaveAccumulates(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created := createRequest(t, svc, "UL", "2026-03-10", "2026-03-11")

	approved, err := svc.Approve(ctx, adminActor(), leave.ApproveRequest{RequestID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, 2.0, approved.UnpaidDaysDeducted)

	balance, err := svc.Balance(ctx, "emp-lv-1", testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, balance.UnpaidDays)
}

func TestValidatePreviewsWithoutMutating(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	validation, err := svc.ValidateRequest(ctx, leave.ValidateRequest{
		EmployeeID: "emp-lv-1",
		CompanyID:  testCompanyID,
		LeaveType:  "SL",
		StartDate:  "2026-03-09",
		EndDate:    "2026-03-13",
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, validation.RequestedDays)
	assert.Equal(t, 2.0, validation.Available)
	assert.Equal(t, 3.0, validation.Shortfall)
	assert.True(t, validation.WillBeUnpaid)

	balance, err := svc.Balance(ctx, "emp-lv-1", testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, balance.Balances["SL"].Used)
}
