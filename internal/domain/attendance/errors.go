package attendance

import "errors"

// Attendance domain errors
var (
	// Clock event errors
	ErrAlreadyClockedIn     = errors.New("you are already clocked in; clock out first")
	ErrNotClockedIn         = errors.New("you have not clocked in yet")
	ErrSessionLimitExceeded = errors.New("maximum daily sessions reached")

	// General errors
	ErrDayNotFound = errors.New("attendance day not found")
)
