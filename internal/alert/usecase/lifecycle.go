package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/model"
)

// severityFor maps the triggering bucket to a severity. Anything unknown is low.
func severityFor(b model.RiskBucket) model.Severity {
	switch b {
	case model.RiskBucketHigh:
		return model.SeverityHigh
	case model.RiskBucketModerate:
		return model.SeverityModerate
	}
	return model.SeverityLow
}

func buildMessage(name string, b model.RiskBucket, score float64) string {
	return fmt.Sprintf("Student %s has been flagged with %s dropout risk (Score: %s/10)", name, b, formatScore(score))
}

// formatScore prints the shortest exact form, keeping one decimal for whole numbers.
func formatScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

func buildFactors(names []string) []model.AlertFactor {
	if len(names) > alert.MaxFactors {
		names = names[:alert.MaxFactors]
	}
	factors := make([]model.AlertFactor, 0, len(names))
	for _, n := range names {
		factors = append(factors, model.AlertFactor{Feature: n, Importance: alert.FactorImportanceHigh})
	}
	return factors
}

func applyAcknowledge(a model.Alert, notes string, now time.Time) (model.Alert, error) {
	switch a.Status {
	case model.AlertStatusActive, model.AlertStatusEscalated:
	default:
		return model.Alert{}, alert.ErrInvalidTransition
	}
	a.Status = model.AlertStatusAcknowledged
	a.AcknowledgedAt = &now
	if notes != "" {
		a.ResponseNotes = notes
	}
	a.UpdatedAt = now
	return a, nil
}

func applyResolve(a model.Alert, notes string, now time.Time) (model.Alert, error) {
	switch a.Status {
	case model.AlertStatusActive, model.AlertStatusAcknowledged, model.AlertStatusEscalated:
	default:
		return model.Alert{}, alert.ErrInvalidTransition
	}
	a.Status = model.AlertStatusResolved
	a.ResolvedAt = &now
	if notes != "" {
		a.ResponseNotes = notes
	}
	a.UpdatedAt = now
	return a, nil
}

// dueForEscalation is the escalation guard. It is evaluated on the locked
// record, so a pass that races another pass escalates once.
func dueForEscalation(a model.Alert, now time.Time, interval time.Duration) bool {
	if a.Status != model.AlertStatusActive && a.Status != model.AlertStatusEscalated {
		return false
	}
	if a.SLADeadline.After(now) {
		return false
	}
	if a.LastEscalatedAt != nil && now.Sub(*a.LastEscalatedAt) < interval {
		return false
	}
	return true
}

func applyEscalate(a model.Alert, now time.Time, interval time.Duration) (model.Alert, error) {
	if !dueForEscalation(a, now, interval) {
		return model.Alert{}, alert.ErrNotEscalable
	}
	a.Status = model.AlertStatusEscalated
	a.EscalationCount++
	a.LastEscalatedAt = &now
	a.UpdatedAt = now
	return a, nil
}

// hoursOverdue is the whole number of hours past the deadline, never negative.
func hoursOverdue(a model.Alert, now time.Time) int {
	d := now.Sub(a.SLADeadline)
	if d < 0 {
		return 0
	}
	return int(d / time.Hour)
}
