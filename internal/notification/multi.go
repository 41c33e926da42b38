package notification

import (
	"context"
	"errors"
)

type multiDispatcher struct {
	dispatchers []Dispatcher
}

// NewMulti fans one notification out to every dispatcher. All of them are tried;
// their errors are joined.
func NewMulti(dispatchers ...Dispatcher) Dispatcher {
	out := make([]Dispatcher, 0, len(dispatchers))
	for _, d := range dispatchers {
		if d != nil {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return Nop()
	}
	return &multiDispatcher{dispatchers: out}
}

func (m *multiDispatcher) Send(ctx context.Context, n Notification) error {
	var errs []error
	for _, d := range m.dispatchers {
		if err := d.Send(ctx, n); err != nil && !errors.Is(err, ErrNoRecipients) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type nopDispatcher struct{}

// Nop drops every notification. It stands in when no transport is configured.
func Nop() Dispatcher {
	return nopDispatcher{}
}

func (nopDispatcher) Send(ctx context.Context, n Notification) error {
	return ErrSenderDisabled
}
