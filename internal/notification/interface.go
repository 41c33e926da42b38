package notification

import "context"

// Dispatcher delivers one notification. Errors are reported to the caller,
// which decides whether they matter.
//
//go:generate mockery --name Dispatcher
type Dispatcher interface {
	Send(ctx context.Context, n Notification) error
}
