package leave

import (
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// LEAVE DTOs
// ========================================

// Actor identifies who is performing an operation. Filled from JWT
// claims by the handler, never from the request body.
type Actor struct {
	EmployeeID string
	UserID     string
	CompanyID  string
	Role       string
}

type CreateRequestRequest struct {
	EmployeeID string `json:"-"`
	CompanyID  string `json:"-"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Duration   string `json:"duration"`
	Reason     string `json:"reason"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Type(r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of CL, SL, EL, UL, OD",
		})
	}

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if r.Duration != "" && !validator.IsInSlice(r.Duration, []string{string(DurationFull), string(DurationFirstHalf), string(DurationSecondHalf)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "duration",
			Message: "duration must be FULL, FIRST_HALF or SECOND_HALF",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ValidateRequest struct {
	EmployeeID string `json:"-"`
	CompanyID  string `json:"-"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Duration   string `json:"duration"`
}

func (r *ValidateRequest) Validate() error {
	cr := CreateRequestRequest{
		LeaveType: r.LeaveType,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Duration:  r.Duration,
		Reason:    "-",
	}
	return cr.Validate()
}

// ApproveRequest carries the approver's acknowledgement that any
// shortfall becomes unpaid days. Without it, approval of an
// over-balance request returns ErrInsufficientBalance as a prompt.
type ApproveRequest struct {
	RequestID         string `json:"-"`
	AcknowledgeUnpaid bool   `json:"acknowledge_unpaid"`
}

type RejectRequest struct {
	RequestID string `json:"-"`
	Reason    string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Duration     string  `json:"duration"`
	TotalDays    float64 `json:"total_days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`

	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`

	PaidDaysDeducted   float64 `json:"paid_days_deducted"`
	UnpaidDaysDeducted float64 `json:"unpaid_days_deducted"`

	CreatedAt string `json:"created_at"`
}

type TypeBalanceResponse struct {
	Allocated float64 `json:"allocated"`
	Used      float64 `json:"used"`
	Available float64 `json:"available"`
}

type BalanceResponse struct {
	EmployeeID string                         `json:"employee_id"`
	Balances   map[string]TypeBalanceResponse `json:"balances"`
	UnpaidDays float64                        `json:"unpaid_days"`
}

type ValidationResponse struct {
	LeaveType     string  `json:"leave_type"`
	RequestedDays float64 `json:"requested_days"`
	Available     float64 `json:"available"`
	Shortfall     float64 `json:"shortfall"`
	WillBeUnpaid  bool    `json:"will_be_unpaid"`
}
