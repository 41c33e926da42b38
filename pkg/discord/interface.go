package discord

import (
	"context"
	"net/url"
	"strings"

	"dropout-srv/pkg/log"
)

type IDiscord interface {
	SendEmbed(ctx context.Context, options MessageOptions) error
	ReportBug(ctx context.Context, message string) error
	Close() error
}

// New builds a webhook client from the full webhook URL.
func New(l log.Logger, webhookURL string) (IDiscord, error) {
	return NewWithConfig(l, webhookURL, DefaultConfig())
}

func NewWithConfig(l log.Logger, webhookURL string, cfg Config) (IDiscord, error) {
	if strings.TrimSpace(webhookURL) == "" {
		return nil, errWebhookRequired
	}
	if err := validateWebhookURL(webhookURL); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.DefaultUsername == "" {
		cfg.DefaultUsername = DefaultUsername
	}
	return &discordImpl{
		l:          l,
		webhookURL: strings.TrimSpace(webhookURL),
		config:     cfg,
		client:     newHTTPClient(cfg.Timeout),
	}, nil
}

func validateWebhookURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return errInvalidWebhookURL
	}
	rest, ok := strings.CutPrefix(u.Path, webhookPathPrefix)
	if !ok {
		return errInvalidWebhookURL
	}
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return errInvalidWebhookURL
	}
	return nil
}
