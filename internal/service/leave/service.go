package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/employee"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/leave"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/database"
	"github.com/peopleops-hr/attendance-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.BalanceRepository
	leave.RequestRepository
	employee.EmployeeRepository
}

const dateLayout = "2006-01-02"

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func buildRequestResponse(r leave.Request) leave.RequestResponse {
	resp := leave.RequestResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		EmployeeName:       r.EmployeeName,
		LeaveType:          string(r.LeaveType),
		StartDate:          r.StartDate.Format(dateLayout),
		EndDate:            r.EndDate.Format(dateLayout),
		Duration:           string(r.Duration),
		TotalDays:          r.TotalDays(),
		Reason:             r.Reason,
		Status:             string(r.Status),
		ApprovedBy:         r.ApprovedBy,
		RejectionReason:    r.RejectionReason,
		PaidDaysDeducted:   r.PaidDaysDeducted,
		UnpaidDaysDeducted: r.UnpaidDaysDeducted,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
	}
	if r.ApprovedAt != nil {
		at := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	return resp
}

// canDecide reports whether the actor may approve or reject a request:
// admins always, managers only for their direct reports.
func (l *LeaveServiceImpl) canDecide(ctx context.Context, actor leave.Actor, request leave.Request) (bool, error) {
	if actor.Role == string(employee.RoleAdmin) {
		return true, nil
	}
	if actor.Role != string(employee.RoleManager) {
		return false, nil
	}

	emp, err := l.EmployeeRepository.GetByID(ctx, request.EmployeeID, request.CompanyID)
	if err != nil {
		return false, fmt.Errorf("failed to get requesting employee: %w", err)
	}
	return emp.ManagerID != nil && *emp.ManagerID == actor.EmployeeID, nil
}

// CreateRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateRequestRequest) (*leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)
	if end.Before(start) {
		return nil, leave.ErrInvalidDateRange
	}

	duration := leave.Duration(req.Duration)
	if duration == "" {
		duration = leave.DurationFull
	}
	if duration.IsHalfDay() && !start.Equal(end) {
		return nil, leave.ErrInvalidDateRange
	}

	request := leave.Request{
		EmployeeID: req.EmployeeID,
		CompanyID:  req.CompanyID,
		LeaveType:  leave.Type(req.LeaveType),
		StartDate:  dateOf(start),
		EndDate:    dateOf(end),
		Duration:   duration,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	}

	if err := l.RequestRepository.Create(ctx, &request); err != nil {
		return nil, err
	}

	resp := buildRequestResponse(request)
	return &resp, nil
}

// ValidateRequest implements leave.LeaveService. Read-only preview of
// the ledger effect; missing balance rows read as all zeroes.
func (l *LeaveServiceImpl) ValidateRequest(ctx context.Context, req leave.ValidateRequest) (*leave.ValidationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)
	if end.Before(start) {
		return nil, leave.ErrInvalidDateRange
	}

	probe := leave.Request{
		StartDate: start,
		EndDate:   end,
		Duration:  leave.Duration(req.Duration),
	}
	days := probe.TotalDays()

	leaveType := leave.Type(req.LeaveType)
	resp := leave.ValidationResponse{
		LeaveType:     req.LeaveType,
		RequestedDays: days,
	}

	// UL is always unpaid; OD never touches the ledger.
	switch leaveType {
	case leave.TypeUnpaid:
		resp.Shortfall = days
		resp.WillBeUnpaid = true
		return &resp, nil
	case leave.TypeOnDuty:
		return &resp, nil
	}

	balance, err := l.BalanceRepository.Get(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		balance = &leave.Balance{EmployeeID: req.EmployeeID, CompanyID: req.CompanyID}
	}

	validation, err := balance.ValidateDeduction(leaveType, days)
	if err != nil {
		return nil, err
	}

	resp.Available = validation.Available
	resp.Shortfall = validation.Shortfall
	resp.WillBeUnpaid = validation.WillBeUnpaid
	return &resp, nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, actor leave.Actor, req leave.ApproveRequest) (*leave.RequestResponse, error) {
	var approved leave.Request

	err := postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		request, err := l.RequestRepository.GetByIDForUpdate(txCtx, req.RequestID)
		if err != nil {
			return err
		}
		if request.Status != leave.StatusPending {
			return leave.ErrAlreadyProcessed
		}

		ok, err := l.canDecide(txCtx, actor, *request)
		if err != nil {
			return err
		}
		if !ok {
			return leave.ErrUnauthorized
		}

		days := request.TotalDays()

		switch request.LeaveType {
		case leave.TypeOnDuty:
			// No ledger effect.
		case leave.TypeUnpaid:
			balance, err := l.BalanceRepository.GetOrCreateForUpdate(txCtx, request.EmployeeID, request.CompanyID)
			if err != nil {
				return err
			}
			balance.AddUnpaid(days)
			if err := l.BalanceRepository.Update(txCtx, balance); err != nil {
				return err
			}
			request.UnpaidDaysDeducted = days
		default:
			balance, err := l.BalanceRepository.GetOrCreateForUpdate(txCtx, request.EmployeeID, request.CompanyID)
			if err != nil {
				return err
			}

			validation, err := balance.ValidateDeduction(request.LeaveType, days)
			if err != nil {
				return err
			}
			if validation.WillBeUnpaid && !req.AcknowledgeUnpaid {
				return leave.ErrInsufficientBalance
			}

			deduction, err := balance.ApplyDeduction(request.LeaveType, days)
			if err != nil {
				return err
			}
			if err := l.BalanceRepository.Update(txCtx, balance); err != nil {
				return err
			}
			request.PaidDaysDeducted = deduction.Paid
			request.UnpaidDaysDeducted = deduction.Unpaid
		}

		now := time.Now()
		request.Status = leave.StatusApproved
		request.ApprovedBy = &actor.EmployeeID
		request.ApprovedAt = &now
		if err := l.RequestRepository.Update(txCtx, request); err != nil {
			return err
		}

		approved = *request
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := buildRequestResponse(approved)
	return &resp, nil
}

// reverse undoes the ledger effect recorded on an approved request.
func (l *LeaveServiceImpl) reverse(ctx context.Context, request *leave.Request) error {
	if request.PaidDaysDeducted == 0 && request.UnpaidDaysDeducted == 0 {
		return nil
	}

	balance, err := l.BalanceRepository.GetOrCreateForUpdate(ctx, request.EmployeeID, request.CompanyID)
	if err != nil {
		return err
	}

	leaveType := request.LeaveType
	if leaveType == leave.TypeUnpaid {
		// UL went straight to the unpaid accumulator; reverse it as a
		// pure unpaid receipt.
		leaveType = leave.TypeCasual
	}
	err = balance.ReverseDeduction(leave.Deduction{
		LeaveType: leaveType,
		Days:      request.PaidDaysDeducted + request.UnpaidDaysDeducted,
		Paid:      request.PaidDaysDeducted,
		Unpaid:    request.UnpaidDaysDeducted,
	})
	if err != nil {
		return err
	}
	if err := l.BalanceRepository.Update(ctx, balance); err != nil {
		return err
	}

	request.PaidDaysDeducted = 0
	request.UnpaidDaysDeducted = 0
	return nil
}

// Reject implements leave.LeaveService. Rejecting an already approved
// request is an admin correction and reverses the recorded deduction.
func (l *LeaveServiceImpl) Reject(ctx context.Context, actor leave.Actor, req leave.RejectRequest) (*leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var rejected leave.Request

	err := postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		request, err := l.RequestRepository.GetByIDForUpdate(txCtx, req.RequestID)
		if err != nil {
			return err
		}

		switch request.Status {
		case leave.StatusPending:
			ok, err := l.canDecide(txCtx, actor, *request)
			if err != nil {
				return err
			}
			if !ok {
				return leave.ErrUnauthorized
			}
		case leave.StatusApproved:
			if actor.Role != string(employee.RoleAdmin) {
				return leave.ErrUnauthorized
			}
			if err := l.reverse(txCtx, request); err != nil {
				return err
			}
		default:
			return leave.ErrAlreadyProcessed
		}

		request.Status = leave.StatusRejected
		request.RejectionReason = &req.Reason
		if err := l.RequestRepository.Update(txCtx, request); err != nil {
			return err
		}

		rejected = *request
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := buildRequestResponse(rejected)
	return &resp, nil
}

// Cancel implements leave.LeaveService. Employees cancel their own
// pending requests; cancelling an approved request is an admin
// correction and reverses the recorded deduction.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, actor leave.Actor, requestID string) (*leave.RequestResponse, error) {
	var cancelled leave.Request

	err := postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		request, err := l.RequestRepository.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}

		isOwner := request.EmployeeID == actor.EmployeeID
		isAdmin := actor.Role == string(employee.RoleAdmin)

		switch request.Status {
		case leave.StatusPending:
			if !isOwner && !isAdmin {
				return leave.ErrUnauthorized
			}
		case leave.StatusApproved:
			if !isAdmin {
				return leave.ErrUnauthorized
			}
			if err := l.reverse(txCtx, request); err != nil {
				return err
			}
		default:
			return leave.ErrAlreadyProcessed
		}

		request.Status = leave.StatusCancelled
		if err := l.RequestRepository.Update(txCtx, request); err != nil {
			return err
		}

		cancelled = *request
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := buildRequestResponse(cancelled)
	return &resp, nil
}

// Balance implements leave.LeaveService. Employees without a balance
// row read as all zeroes.
func (l *LeaveServiceImpl) Balance(ctx context.Context, employeeID, companyID string) (*leave.BalanceResponse, error) {
	balance, err := l.BalanceRepository.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		balance = &leave.Balance{EmployeeID: employeeID, CompanyID: companyID}
	}

	resp := leave.BalanceResponse{
		EmployeeID: employeeID,
		UnpaidDays: balance.Unpaid,
		Balances:   make(map[string]leave.TypeBalanceResponse, len(leave.PaidTypes)),
	}
	for _, t := range leave.PaidTypes {
		available, err := balance.Available(t)
		if err != nil {
			return nil, err
		}
		var allocated, used float64
		switch t {
		case leave.TypeCasual:
			allocated, used = balance.CasualAllocated, balance.CasualUsed
		case leave.TypeSick:
			allocated, used = balance.SickAllocated, balance.SickUsed
		case leave.TypeEarned:
			allocated, used = balance.EarnedAllocated, balance.EarnedUsed
		}
		resp.Balances[string(t)] = leave.TypeBalanceResponse{
			Allocated: allocated,
			Used:      used,
			Available: available,
		}
	}

	return &resp, nil
}

// MyRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) MyRequests(ctx context.Context, employeeID string) ([]leave.RequestResponse, error) {
	requests, err := l.RequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, buildRequestResponse(r))
	}
	return responses, nil
}

// PendingApprovals implements leave.LeaveService.
func (l *LeaveServiceImpl) PendingApprovals(ctx context.Context, actor leave.Actor) ([]leave.RequestResponse, error) {
	if actor.Role != string(employee.RoleManager) && actor.Role != string(employee.RoleAdmin) {
		return nil, leave.ErrUnauthorized
	}

	requests, err := l.RequestRepository.ListPendingByManager(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, buildRequestResponse(r))
	}
	return responses, nil
}

func NewLeaveService(
	db *database.DB,
	balanceRepo leave.BalanceRepository,
	requestRepo leave.RequestRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                 db,
		BalanceRepository:  balanceRepo,
		RequestRepository:  requestRepo,
		EmployeeRepository: employeeRepo,
	}
}
