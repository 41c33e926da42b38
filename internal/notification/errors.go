package notification

import "errors"

var (
	ErrUnknownKind    = errors.New("unknown notification kind")
	ErrNoRecipients   = errors.New("notification has no recipients")
	ErrRateLimited    = errors.New("notification rate limit exceeded")
	ErrSenderDisabled = errors.New("notification sender is disabled")
)
