package postgres

import (
	"encoding/json"
	"time"

	"dropout-srv/internal/model"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/types"
)

type alertRow struct {
	ID              string      `boil:"id"`
	StudentID       string      `boil:"student_id"`
	OwnerID         null.String `boil:"owner_id"`
	RiskScore       float64     `boil:"risk_score"`
	Severity        string      `boil:"severity"`
	Message         string      `boil:"message"`
	Factors         types.JSON  `boil:"factors"`
	Status          string      `boil:"status"`
	SLADeadline     time.Time   `boil:"sla_deadline"`
	CreatedAt       time.Time   `boil:"created_at"`
	UpdatedAt       time.Time   `boil:"updated_at"`
	AcknowledgedAt  null.Time   `boil:"acknowledged_at"`
	ResolvedAt      null.Time   `boil:"resolved_at"`
	LastEscalatedAt null.Time   `boil:"last_escalated_at"`
	ResponseNotes   null.String `boil:"response_notes"`
	EscalationCount int         `boil:"escalation_count"`
}

func (r alertRow) toModel() (model.Alert, error) {
	out := model.Alert{
		ID:              r.ID,
		StudentID:       r.StudentID,
		OwnerID:         r.OwnerID.String,
		RiskScore:       r.RiskScore,
		Severity:        model.Severity(r.Severity),
		Message:         r.Message,
		Status:          model.AlertStatus(r.Status),
		SLADeadline:     r.SLADeadline.UTC(),
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
		AcknowledgedAt:  timePtr(r.AcknowledgedAt),
		ResolvedAt:      timePtr(r.ResolvedAt),
		LastEscalatedAt: timePtr(r.LastEscalatedAt),
		ResponseNotes:   r.ResponseNotes.String,
		EscalationCount: r.EscalationCount,
	}

	out.Factors = []model.AlertFactor{}
	if len(r.Factors) > 0 && string(r.Factors) != "null" {
		if err := r.Factors.Unmarshal(&out.Factors); err != nil {
			return model.Alert{}, err
		}
	}
	return out, nil
}

type statsRow struct {
	TotalAlerts          int64   `boil:"total_alerts"`
	ActiveAlerts         int64   `boil:"active_alerts"`
	ResolvedAlerts       int64   `boil:"resolved_alerts"`
	EscalatedAlerts      int64   `boil:"escalated_alerts"`
	AvgResponseTimeHours float64 `boil:"avg_response_time_hours"`
}

type countRow struct {
	Count int64 `boil:"count"`
}

func encodeFactors(factors []model.AlertFactor) (types.JSON, error) {
	if factors == nil {
		factors = []model.AlertFactor{}
	}
	b, err := json.Marshal(factors)
	if err != nil {
		return nil, err
	}
	return types.JSON(b), nil
}

func timePtr(t null.Time) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func nullTime(t *time.Time) null.Time {
	if t == nil {
		return null.Time{}
	}
	return null.TimeFrom(*t)
}

func nullString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
