package model

import "time"

type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "active"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusResolved     AlertStatus = "resolved"
	AlertStatusEscalated    AlertStatus = "escalated"
)

// IsValid reports whether s is a known status.
func (s AlertStatus) IsValid() bool {
	switch s {
	case AlertStatusActive, AlertStatusAcknowledged, AlertStatusResolved, AlertStatusEscalated:
		return true
	}
	return false
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityModerate, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// AlertFactor is one contributing factor recorded on an alert.
type AlertFactor struct {
	Feature    string `json:"feature"`
	Importance string `json:"importance"`
}

// Alert is the persistent record of a risk notification and its response lifecycle.
type Alert struct {
	ID              string        `json:"id"`
	StudentID       string        `json:"student_id"`
	OwnerID         string        `json:"owner_id,omitempty"`
	RiskScore       float64       `json:"risk_score"`
	Severity        Severity      `json:"severity"`
	Message         string        `json:"message"`
	Factors         []AlertFactor `json:"factors"`
	Status          AlertStatus   `json:"status"`
	SLADeadline     time.Time     `json:"sla_deadline"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	AcknowledgedAt  *time.Time    `json:"acknowledged_at,omitempty"`
	ResolvedAt      *time.Time    `json:"resolved_at,omitempty"`
	LastEscalatedAt *time.Time    `json:"last_escalated_at,omitempty"`
	ResponseNotes   string        `json:"response_notes,omitempty"`
	EscalationCount int           `json:"escalation_count"`
}

// Clone returns a deep copy so callers never share slices or timestamps.
func (a Alert) Clone() Alert {
	out := a
	if a.Factors != nil {
		out.Factors = append([]AlertFactor(nil), a.Factors...)
	}
	out.AcknowledgedAt = cloneTime(a.AcknowledgedAt)
	out.ResolvedAt = cloneTime(a.ResolvedAt)
	out.LastEscalatedAt = cloneTime(a.LastEscalatedAt)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
