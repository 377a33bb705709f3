package leave

import (
	"time"
)

// Type enumerates the leave types. CL/SL/EL draw from a paid
// allocation; UL (loss of pay) is tracked in the cross-type unpaid
// accumulator; OD never touches the ledger.
type Type string

const (
	TypeCasual Type = "CL"
	TypeSick   Type = "SL"
	TypeEarned Type = "EL"
	TypeUnpaid Type = "UL"
	TypeOnDuty Type = "OD"
)

// PaidTypes are the types backed by an allocation.
var PaidTypes = []Type{TypeCasual, TypeSick, TypeEarned}

func (t Type) Valid() bool {
	switch t {
	case TypeCasual, TypeSick, TypeEarned, TypeUnpaid, TypeOnDuty:
		return true
	}
	return false
}

type Duration string

const (
	DurationFull       Duration = "FULL"
	DurationFirstHalf  Duration = "FIRST_HALF"
	DurationSecondHalf Duration = "SECOND_HALF"
)

func (d Duration) IsHalfDay() bool {
	return d == DurationFirstHalf || d == DurationSecondHalf
}

type RequestStatus string

const (
	StatusPending   RequestStatus = "PENDING"
	StatusApproved  RequestStatus = "APPROVED"
	StatusRejected  RequestStatus = "REJECTED"
	StatusCancelled RequestStatus = "CANCELLED"
)

// Balance is the per-employee leave ledger row: allocation and usage
// per paid type plus the single unpaid (LOP) accumulator. All writes go
// through the ledger operations in ledger.go.
type Balance struct {
	ID         string
	EmployeeID string
	CompanyID  string

	CasualAllocated float64
	CasualUsed      float64
	SickAllocated   float64
	SickUsed        float64
	EarnedAllocated float64
	EarnedUsed      float64

	Unpaid float64

	UpdatedAt time.Time
}

// Request is one leave application and its approval lifecycle.
// PaidDaysDeducted/UnpaidDaysDeducted record the ledger receipt taken
// at approval so a later reversal is exact.
type Request struct {
	ID         string
	EmployeeID string
	CompanyID  string

	LeaveType Type
	StartDate time.Time
	EndDate   time.Time
	Duration  Duration
	Reason    string

	Status          RequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	PaidDaysDeducted   float64
	UnpaidDaysDeducted float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// TotalDays is 0.5 for a half-day request, otherwise the inclusive
// calendar-day span. Week-offs are the Day Aggregator's concern, not
// subtracted here.
func (r Request) TotalDays() float64 {
	if r.Duration.IsHalfDay() {
		return 0.5
	}
	return float64(daysBetween(r.StartDate, r.EndDate) + 1)
}

func daysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}
