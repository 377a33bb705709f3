package shift

import "errors"

var (
	ErrShiftNotFound = errors.New("shift schedule not found")
)
