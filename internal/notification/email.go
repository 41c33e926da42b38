package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgLog "dropout-srv/pkg/log"
	pkgSmtp "dropout-srv/pkg/smtp"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// EmailConfig throttles outbound mail.
type EmailConfig struct {
	RatePerMinute int
	Burst         int
}

type emailDispatcher struct {
	l        pkgLog.Logger
	sender   pkgSmtp.Sender
	renderer *Renderer
	limiter  *rate.Limiter
	cb       *gobreaker.CircuitBreaker
}

// NewEmail sends one templated mail per recipient through sender.
func NewEmail(l pkgLog.Logger, sender pkgSmtp.Sender, renderer *Renderer, cfg EmailConfig) Dispatcher {
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = DefaultRatePerMinute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}

	return &emailDispatcher{
		l:        l,
		sender:   sender,
		renderer: renderer,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.Burst),
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        breakerName,
			MaxRequests: breakerMaxRequests,
			Interval:    breakerInterval,
			Timeout:     breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerMaxFailures
			},
		}),
	}
}

func (d *emailDispatcher) Send(ctx context.Context, n Notification) error {
	rendered, err := d.renderer.Render(n)
	if err != nil {
		return err
	}

	var errs []error
	sent := 0
	for _, rcpt := range n.Recipients {
		if rcpt.Email == "" {
			continue
		}
		if err := d.limiter.Wait(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrRateLimited, err))
			break
		}

		msg := pkgSmtp.Message{To: []string{rcpt.Email}, Subject: rendered.Subject, HTMLBody: rendered.HTMLBody}
		_, err := d.cb.Execute(func() (interface{}, error) {
			return nil, d.sender.Send(ctx, msg)
		})
		if err != nil {
			d.l.Warnf(ctx, "internal.notification.email.Send: %s to %s: %v", n.Kind, rcpt.Email, err)
			errs = append(errs, err)
			continue
		}
		sent++
	}

	if sent == 0 && len(errs) == 0 {
		return ErrNoRecipients
	}
	return errors.Join(errs...)
}
