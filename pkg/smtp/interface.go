package smtp

import (
	"context"
	"fmt"

	"dropout-srv/pkg/log"

	gosmtp "github.com/emersion/go-smtp"
)

// Sender delivers one HTML message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New builds an SMTP sender. PLAIN auth is used when a username is set.
func New(l log.Logger, cfg Config) (Sender, error) {
	if cfg.Host == "" {
		return nil, ErrHostRequired
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, ErrInvalidPort
	}
	if cfg.From == "" {
		return nil, ErrFromRequired
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &implSender{
		l:    l,
		cfg:  cfg,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		send: gosmtp.SendMail,
		now:  timeNow,
	}, nil
}
