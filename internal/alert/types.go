package alert

import (
	"time"

	"dropout-srv/internal/model"
	"dropout-srv/pkg/paginator"
)

// DefaultResponseWindow is the time an owner has to act before escalation.
const DefaultResponseWindow = 24 * time.Hour

// DefaultReescalationInterval is the minimum gap between two escalations of one alert.
const DefaultReescalationInterval = time.Hour

// DefaultSweepBatchSize caps the candidates read by one pass.
const DefaultSweepBatchSize = 1000

// FactorImportanceHigh is recorded on every factor copied at creation.
const FactorImportanceHigh = "high"

// MaxFactors is the number of factor names copied onto an alert.
const MaxFactors = 3

// CreateRiskAlertInput triggers a new alert for a flagged subject.
type CreateRiskAlertInput struct {
	StudentID  string
	Score      float64
	Bucket     model.RiskBucket
	TopFactors []string
}

type Filter struct {
	Status    model.AlertStatus
	Severity  model.Severity
	StudentID string
	OwnerID   string
}

type ListInput struct {
	Filter Filter
	Query  paginator.OffsetQuery
}

type ListOutput struct {
	Alerts []model.Alert
	Pagin  paginator.Paginator
}

// UpdateInput carries a partial update. Nil fields are left untouched.
type UpdateInput struct {
	OwnerID *string
	Status  *model.AlertStatus
	Notes   *string
}

// IsEmpty reports whether the update changes nothing.
func (ip UpdateInput) IsEmpty() bool {
	return ip.OwnerID == nil && ip.Status == nil && ip.Notes == nil
}

type SweepOutput struct {
	Candidates int
	Escalated  int
	Skipped    int
	Failed     int
	StartedAt  time.Time
	Duration   time.Duration
}

type StatsInput struct {
	OwnerID string
}

type Stats struct {
	TotalAlerts          int64   `json:"total_alerts"`
	ActiveAlerts         int64   `json:"active_alerts"`
	ResolvedAlerts       int64   `json:"resolved_alerts"`
	EscalatedAlerts      int64   `json:"escalated_alerts"`
	AvgResponseTimeHours float64 `json:"avg_response_time_hours"`
}

// Options tunes the engine. Zero values fall back to the defaults above.
type Options struct {
	ResponseWindow       time.Duration
	ReescalationInterval time.Duration
	SweepBatchSize       int
}
