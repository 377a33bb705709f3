package leave

import "errors"

var (
	ErrRequestNotFound  = errors.New("leave request not found")
	ErrAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrUnknownLeaveType = errors.New("unknown leave type")
	ErrUnauthorized     = errors.New("not authorized to act on this leave request")

	// ErrInsufficientBalance is a confirmation prompt, not a hard
	// failure: the caller may re-submit acknowledging the unpaid excess.
	ErrInsufficientBalance = errors.New("insufficient leave balance; excess days will be unpaid")
)
