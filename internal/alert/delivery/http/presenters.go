package http

import (
	"strings"
	"time"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/model"
	pkgErrors "dropout-srv/pkg/errors"
	"dropout-srv/pkg/paginator"
	"dropout-srv/pkg/response"
)

type listReq struct {
	Status    string `form:"status"`
	Severity  string `form:"severity"`
	StudentID string `form:"student_id"`
	MentorID  string `form:"mentor_id"`
	Subject   string `form:"subject"`
	Owner     string `form:"owner"`
	Skip      int    `form:"skip"`
	Limit     int    `form:"limit"`
}

// firstNonEmpty lets the generic subject/owner names stand in for student_id/mentor_id.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func (r listReq) toInput() alert.ListInput {
	return alert.ListInput{
		Filter: alert.Filter{
			Status:    model.AlertStatus(strings.TrimSpace(r.Status)),
			Severity:  model.Severity(strings.TrimSpace(r.Severity)),
			StudentID: firstNonEmpty(r.StudentID, r.Subject),
			OwnerID:   firstNonEmpty(r.MentorID, r.Owner),
		},
		Query: paginator.OffsetQuery{Skip: r.Skip, Limit: r.Limit},
	}
}

type createReq struct {
	StudentID  string   `json:"student_id"`
	RiskScore  float64  `json:"risk_score"`
	RiskBucket string   `json:"risk_category"`
	TopFactors []string `json:"top_factors"`
}

func (r createReq) validate() error {
	col := pkgErrors.NewValidationErrorCollector()
	if strings.TrimSpace(r.StudentID) == "" {
		col.Add(pkgErrors.NewValidationError(errWrongBody.Code, "student_id", "is required"))
	}
	switch model.RiskBucket(r.RiskBucket) {
	case model.RiskBucketLow, model.RiskBucketModerate, model.RiskBucketHigh:
	case "":
		col.Add(pkgErrors.NewValidationError(errWrongBody.Code, "risk_category", "is required"))
	default:
		col.Add(pkgErrors.NewValidationError(errWrongBody.Code, "risk_category", "must be one of low, moderate, high"))
	}
	if r.RiskScore < 0 || r.RiskScore > 10 {
		col.Add(pkgErrors.NewValidationError(errWrongBody.Code, "risk_score", "must be between 0 and 10"))
	}
	if col.HasError() {
		return col
	}
	return nil
}

func (r createReq) toInput() alert.CreateRiskAlertInput {
	return alert.CreateRiskAlertInput{
		StudentID:  strings.TrimSpace(r.StudentID),
		Score:      r.RiskScore,
		Bucket:     model.RiskBucket(r.RiskBucket),
		TopFactors: r.TopFactors,
	}
}

type updateReq struct {
	Status        *string `json:"status"`
	ResponseNotes *string `json:"response_notes"`
	MentorID      *string `json:"mentor_id"`
}

func (r updateReq) validate(sc model.Scope) error {
	if r.MentorID != nil && !sc.IsAdmin() {
		return pkgErrors.NewPermissionError(errForbidden.Code, "mentor_id", "only administrators can reassign an alert")
	}

	col := pkgErrors.NewValidationErrorCollector()
	if r.Status != nil {
		if s := model.AlertStatus(strings.TrimSpace(*r.Status)); !s.IsValid() {
			col.Add(pkgErrors.NewValidationError(errWrongBody.Code, "status", "must be one of active, acknowledged, resolved, escalated"))
		}
	}
	if r.MentorID != nil && strings.TrimSpace(*r.MentorID) == "" {
		col.Add(pkgErrors.NewValidationError(errWrongBody.Code, "mentor_id", "must not be blank"))
	}
	if col.HasError() {
		return col
	}
	return nil
}

func (r updateReq) toInput() alert.UpdateInput {
	var ip alert.UpdateInput
	if r.Status != nil {
		s := model.AlertStatus(strings.TrimSpace(*r.Status))
		ip.Status = &s
	}
	ip.Notes = r.ResponseNotes
	ip.OwnerID = r.MentorID
	return ip
}

type notesReq struct {
	Notes string `json:"notes" form:"notes"`
}

type factorResp struct {
	Feature    string `json:"feature"`
	Importance string `json:"importance"`
}

type alertResp struct {
	ID              string             `json:"id"`
	StudentID       string             `json:"student_id"`
	MentorID        string             `json:"mentor_id,omitempty"`
	RiskScore       float64            `json:"risk_score"`
	Severity        string             `json:"severity"`
	Message         string             `json:"message"`
	Factors         []factorResp       `json:"factors"`
	Status          string             `json:"status"`
	SLADeadline     response.DateTime  `json:"sla_deadline"`
	CreatedAt       response.DateTime  `json:"created_at"`
	UpdatedAt       response.DateTime  `json:"updated_at"`
	AcknowledgedAt  *response.DateTime `json:"acknowledged_at,omitempty"`
	ResolvedAt      *response.DateTime `json:"resolved_at,omitempty"`
	LastEscalatedAt *response.DateTime `json:"last_escalated_at,omitempty"`
	ResponseNotes   string             `json:"response_notes,omitempty"`
	EscalationCount int                `json:"escalation_count"`
}

func newAlertResp(a model.Alert) alertResp {
	factors := make([]factorResp, 0, len(a.Factors))
	for _, f := range a.Factors {
		factors = append(factors, factorResp{Feature: f.Feature, Importance: f.Importance})
	}
	return alertResp{
		ID:              a.ID,
		StudentID:       a.StudentID,
		MentorID:        a.OwnerID,
		RiskScore:       a.RiskScore,
		Severity:        string(a.Severity),
		Message:         a.Message,
		Factors:         factors,
		Status:          string(a.Status),
		SLADeadline:     response.DateTime(a.SLADeadline),
		CreatedAt:       response.DateTime(a.CreatedAt),
		UpdatedAt:       response.DateTime(a.UpdatedAt),
		AcknowledgedAt:  dateTimePtr(a.AcknowledgedAt),
		ResolvedAt:      dateTimePtr(a.ResolvedAt),
		LastEscalatedAt: dateTimePtr(a.LastEscalatedAt),
		ResponseNotes:   a.ResponseNotes,
		EscalationCount: a.EscalationCount,
	}
}

type listResp struct {
	Items []alertResp                 `json:"items"`
	Meta  paginator.PaginatorResponse `json:"meta"`
}

func newListResp(o alert.ListOutput) listResp {
	items := make([]alertResp, 0, len(o.Alerts))
	for _, a := range o.Alerts {
		items = append(items, newAlertResp(a))
	}
	return listResp{
		Items: items,
		Meta:  o.Pagin.ToResponse(),
	}
}

type sweepResp struct {
	Candidates int               `json:"candidates"`
	Escalated  int               `json:"escalated_count"`
	Skipped    int               `json:"skipped"`
	Failed     int               `json:"failed"`
	StartedAt  response.DateTime `json:"started_at"`
	DurationMs int64             `json:"duration_ms"`
}

func newSweepResp(o alert.SweepOutput) sweepResp {
	return sweepResp{
		Candidates: o.Candidates,
		Escalated:  o.Escalated,
		Skipped:    o.Skipped,
		Failed:     o.Failed,
		StartedAt:  response.DateTime(o.StartedAt),
		DurationMs: o.Duration.Milliseconds(),
	}
}

func dateTimePtr(t *time.Time) *response.DateTime {
	if t == nil {
		return nil
	}
	d := response.DateTime(*t)
	return &d
}
