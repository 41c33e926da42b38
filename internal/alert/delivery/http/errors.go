package http

import (
	"errors"
	"net/http"

	"dropout-srv/internal/alert"
	pkgErrors "dropout-srv/pkg/errors"
)

var (
	errUnauthorized      = pkgErrors.NewUnauthorizedHTTPError()
	errWrongBody         = pkgErrors.NewHTTPErrorWithStatus(120001, "Wrong body", http.StatusBadRequest)
	errWrongQuery        = pkgErrors.NewHTTPErrorWithStatus(120002, "Wrong query", http.StatusBadRequest)
	errAlertNotFound     = pkgErrors.NewHTTPErrorWithStatus(120003, "Alert not found", http.StatusNotFound)
	errStudentNotFound   = pkgErrors.NewHTTPErrorWithStatus(120004, "Student not found", http.StatusNotFound)
	errForbidden         = pkgErrors.NewHTTPErrorWithStatus(120005, "Not authorized to act on this alert", http.StatusForbidden)
	errInvalidTransition = pkgErrors.NewHTTPErrorWithStatus(120006, "Alert cannot move to the requested status", http.StatusConflict)
	errInvalidInput      = pkgErrors.NewHTTPErrorWithStatus(120007, "Invalid alert input", http.StatusBadRequest)
	errNotEscalable      = pkgErrors.NewHTTPErrorWithStatus(120008, "Alert is not due for escalation", http.StatusConflict)
	errSweepInterrupted  = pkgErrors.NewHTTPErrorWithStatus(120009, "Escalation sweep interrupted", http.StatusServiceUnavailable)
)

func (h handler) mapError(err error) error {
	switch {
	case errors.Is(err, alert.ErrAlertNotFound):
		return errAlertNotFound
	case errors.Is(err, alert.ErrStudentNotFound):
		return errStudentNotFound
	case errors.Is(err, alert.ErrForbidden):
		return errForbidden
	case errors.Is(err, alert.ErrInvalidTransition):
		return errInvalidTransition
	case errors.Is(err, alert.ErrInvalidInput):
		return errInvalidInput
	case errors.Is(err, alert.ErrNotEscalable):
		return errNotEscalable
	}
	panic(err)
}
