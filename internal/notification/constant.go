package notification

import "time"

const (
	DefaultRatePerMinute = 60
	DefaultBurst         = 10

	UnknownOwnerName     = "Unknown"
	DefaultResponseHours = 24

	breakerName        = "notification-email"
	breakerMaxRequests = 1
	breakerInterval    = time.Minute
	breakerTimeout     = time.Minute
	breakerMaxFailures = 5

	discordFooter = "Dropout Risk Service • Escalations"
)
