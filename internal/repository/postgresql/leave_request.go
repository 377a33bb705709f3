package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/leave"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

const requestColumns = `
	r.id, r.employee_id, r.company_id, r.leave_type,
	r.start_date, r.end_date, r.duration, r.reason,
	r.status, r.approved_by, r.approved_at, r.rejection_reason,
	r.paid_days_deducted, r.unpaid_days_deducted,
	r.created_at, r.updated_at
`

func scanRequest(row pgx.Row, withName bool) (*leave.Request, error) {
	var req leave.Request
	dest := []any{
		&req.ID, &req.EmployeeID, &req.CompanyID, &req.LeaveType,
		&req.StartDate, &req.EndDate, &req.Duration, &req.Reason,
		&req.Status, &req.ApprovedBy, &req.ApprovedAt, &req.RejectionReason,
		&req.PaidDaysDeducted, &req.UnpaidDaysDeducted,
		&req.CreatedAt, &req.UpdatedAt,
	}
	if withName {
		dest = append(dest, &req.EmployeeName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &req, nil
}

// Create implements leave.RequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, request *leave.Request) error {
	q := GetQuerier(ctx, r.db)

	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	query := `
		INSERT INTO leave_requests (
			id, employee_id, company_id, leave_type,
			start_date, end_date, duration, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.CompanyID, request.LeaveType,
		request.StartDate, request.EndDate, request.Duration, request.Reason, request.Status,
	).Scan(&request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}

	return nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (*leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `, e.full_name AS employee_name
		FROM leave_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1
	`

	req, err := scanRequest(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, leave.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// GetByIDForUpdate implements leave.RequestRepository. FOR UPDATE here
// serializes concurrent approvals of the same request.
func (r *leaveRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (*leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests r
		WHERE r.id = $1
		FOR UPDATE
	`

	req, err := scanRequest(q.QueryRow(ctx, query, id), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, leave.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to lock leave request: %w", err)
	}

	return req, nil
}

// Update implements leave.RequestRepository.
func (r *leaveRequestRepository) Update(ctx context.Context, request *leave.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			status = $2,
			approved_by = $3, approved_at = $4, rejection_reason = $5,
			paid_days_deducted = $6, unpaid_days_deducted = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.Status,
		request.ApprovedBy, request.ApprovedAt, request.RejectionReason,
		request.PaidDaysDeducted, request.UnpaidDaysDeducted,
	).Scan(&request.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	return nil
}

func (r *leaveRequestRepository) list(ctx context.Context, query string, args ...any) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanRequest(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, *req)
	}

	return requests, rows.Err()
}

// ListByEmployee implements leave.RequestRepository.
func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	query := `
		SELECT ` + requestColumns + `, e.full_name AS employee_name
		FROM leave_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE r.employee_id = $1
		ORDER BY r.created_at DESC
	`
	return r.list(ctx, query, employeeID)
}

// ListPendingByManager implements leave.RequestRepository.
func (r *leaveRequestRepository) ListPendingByManager(ctx context.Context, managerID string) ([]leave.Request, error) {
	query := `
		SELECT ` + requestColumns + `, e.full_name AS employee_name
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE e.manager_id = $1 AND r.status = 'PENDING'
		ORDER BY r.created_at
	`
	return r.list(ctx, query, managerID)
}

// ListApprovedOnDate implements leave.RequestRepository.
func (r *leaveRequestRepository) ListApprovedOnDate(ctx context.Context, companyID string, date time.Time) ([]leave.Request, error) {
	query := `
		SELECT ` + requestColumns + `, e.full_name AS employee_name
		FROM leave_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE r.company_id = $1
		  AND r.status = 'APPROVED'
		  AND r.start_date <= $2
		  AND r.end_date >= $2
		ORDER BY r.employee_id
	`
	return r.list(ctx, query, companyID, date)
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}
