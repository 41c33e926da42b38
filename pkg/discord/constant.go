package discord

import "time"

const (
	webhookPathPrefix = "/api/webhooks/"

	ColorBlue   = 3447003
	ColorGreen  = 3066993
	ColorYellow = 16776960
	ColorRed    = 15158332
	ColorOrange = 15105570
	ColorGray   = 9807270

	ColorInfo    = ColorBlue
	ColorSuccess = ColorGreen
	ColorWarning = ColorYellow
	ColorError   = ColorRed

	MaxEmbedLength    = 6000
	MaxTitleLen       = 256
	MaxDescriptionLen = 4096
	MaxFieldValueLen  = 1024
	MaxFields         = 25
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetryCount = 2
	DefaultRetryDelay = 500 * time.Millisecond
)

const (
	DefaultUsername = "Dropout Risk Bot"
	UserAgent       = "Dropout-Risk-Bot/1.0"
	ReportBugTitle  = "Dropout Service Error Report"
)
