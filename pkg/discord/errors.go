package discord

import "errors"

var (
	errWebhookRequired   = errors.New("discord: webhook URL is required")
	errInvalidWebhookURL = errors.New("discord: webhook URL must be <scheme>://<host>/api/webhooks/{id}/{token}")
	ErrEmbedTooLong      = errors.New("discord: embed exceeds length limit")
)
