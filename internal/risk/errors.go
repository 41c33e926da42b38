package risk

import "errors"

var (
	ErrSubjectNotFound   = errors.New("student not found")
	ErrModelUnavailable  = errors.New("risk model unavailable")
	ErrFeatureError      = errors.New("features could not be assembled")
	ErrForbidden         = errors.New("not allowed to assess this student")
	ErrInvalidThresholds = errors.New("invalid risk thresholds")
)
