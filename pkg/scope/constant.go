package scope

import "time"

const (
	// TokenExpirationDuration is the default JWT token expiration (1 day).
	TokenExpirationDuration = time.Hour * 24
	// TokenTypeAccess marks a token valid for API calls.
	TokenTypeAccess = "access"
)
