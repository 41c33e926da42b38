package alert

import "errors"

var (
	ErrAlertNotFound     = errors.New("alert not found")
	ErrStudentNotFound   = errors.New("student not found")
	ErrInvalidTransition = errors.New("invalid alert status transition")
	ErrForbidden         = errors.New("not allowed to act on this alert")
	ErrInvalidInput      = errors.New("invalid alert input")
	ErrNotEscalable      = errors.New("alert is not due for escalation")
)
