package response

import (
	"errors"
	"net/http"

	"github.com/peopleops-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/employee"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/leave"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/shift"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "An open session already exists; clock out first")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "No open session to clock out of")
	case errors.Is(err, attendance.ErrSessionLimitExceeded):
		Conflict(w, "Daily session limit reached")
	case errors.Is(err, attendance.ErrDayNotFound):
		NotFound(w, "Attendance day not found")

	// Catalog lookups
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Invalid leave date range", nil)
	case errors.Is(err, leave.ErrUnknownLeaveType):
		BadRequest(w, "Unknown leave type", nil)
	case errors.Is(err, leave.ErrUnauthorized):
		Forbidden(w, "Not authorized to act on this leave request")
	case errors.Is(err, leave.ErrInsufficientBalance):
		InsufficientBalance(w, "Insufficient balance; re-submit with acknowledge_unpaid to record the excess as unpaid leave")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
