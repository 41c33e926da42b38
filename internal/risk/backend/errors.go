package backend

import "errors"

var (
	ErrModelUnavailable = errors.New("model unavailable")
	ErrInvalidArtifact  = errors.New("invalid model artifact")
	ErrFeatureMismatch  = errors.New("feature vector does not match model schema")
	ErrUnknownSource    = errors.New("unknown model source")
)
