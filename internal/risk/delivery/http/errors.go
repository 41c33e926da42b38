package http

import (
	"errors"
	"net/http"

	"dropout-srv/internal/risk"
	pkgErrors "dropout-srv/pkg/errors"
)

var (
	errUnauthorized     = pkgErrors.NewUnauthorizedHTTPError()
	errSubjectRequired  = pkgErrors.NewHTTPErrorWithStatus(110001, "Student id is required", http.StatusBadRequest)
	errOwnerRequired    = pkgErrors.NewHTTPErrorWithStatus(110006, "Mentor id is required", http.StatusBadRequest)
	errSubjectNotFound  = pkgErrors.NewHTTPErrorWithStatus(110002, "Student not found", http.StatusNotFound)
	errForbidden        = pkgErrors.NewHTTPErrorWithStatus(110003, "Not authorized to assess this student", http.StatusForbidden)
	errModelUnavailable = pkgErrors.NewHTTPErrorWithStatus(110004, "Risk model is not available, retry later", http.StatusServiceUnavailable)
	errFeatureError     = pkgErrors.NewHTTPErrorWithStatus(110005, "Unable to assemble features for this student", http.StatusUnprocessableEntity)
)

func (h handler) mapError(err error) error {
	switch {
	case errors.Is(err, risk.ErrSubjectNotFound):
		return errSubjectNotFound
	case errors.Is(err, risk.ErrForbidden):
		return errForbidden
	case errors.Is(err, risk.ErrModelUnavailable):
		return errModelUnavailable
	case errors.Is(err, risk.ErrFeatureError):
		return errFeatureError
	}
	panic(err)
}
