package http

import (
	"strings"

	"dropout-srv/internal/model"
	"dropout-srv/internal/risk"
	"dropout-srv/pkg/response"
)

type subjectReq struct {
	SubjectID string `uri:"subject_id"`
}

func (r subjectReq) validate() error {
	if strings.TrimSpace(r.SubjectID) == "" {
		return errSubjectRequired
	}
	return nil
}

type ownerReq struct {
	OwnerID string `uri:"owner_id"`
}

func (r ownerReq) validate() error {
	if strings.TrimSpace(r.OwnerID) == "" {
		return errOwnerRequired
	}
	return nil
}

type factorResp struct {
	Feature      string  `json:"feature"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
	Impact       string  `json:"impact"`
}

type assessmentResp struct {
	StudentID       string            `json:"student_id"`
	StudentName     string            `json:"student_name"`
	RiskProbability float64           `json:"risk_probability"`
	RiskScore       int               `json:"risk_score"`
	RiskCategory    string            `json:"risk_category"`
	Confidence      float64           `json:"confidence"`
	TopRiskFactors  []factorResp      `json:"top_risk_factors"`
	Recommendations []string          `json:"recommendations"`
	ModelVersion    string            `json:"model_version"`
	PredictionDate  response.DateTime `json:"prediction_date"`
}

func newAssessmentResp(a model.RiskAssessment) assessmentResp {
	factors := make([]factorResp, 0, len(a.Features))
	for _, f := range a.Features {
		factors = append(factors, factorResp{
			Feature:      f.Feature,
			Value:        f.Value,
			Contribution: f.Contribution,
			Impact:       f.Impact,
		})
	}
	recs := a.Recommendations
	if recs == nil {
		recs = []string{}
	}
	return assessmentResp{
		StudentID:       a.StudentID,
		StudentName:     a.StudentName,
		RiskProbability: a.Probability,
		RiskScore:       a.Score,
		RiskCategory:    string(a.Bucket),
		Confidence:      a.Confidence,
		TopRiskFactors:  factors,
		Recommendations: recs,
		ModelVersion:    a.ModelVersion,
		PredictionDate:  response.DateTime(a.PredictionDate),
	}
}

type batchResp struct {
	OwnerID     string           `json:"mentor_id"`
	Total       int              `json:"total"`
	Failed      int              `json:"failed"`
	Assessments []assessmentResp `json:"assessments"`
}

func newBatchResp(o risk.BatchOutput) batchResp {
	items := make([]assessmentResp, 0, len(o.Assessments))
	for _, a := range o.Assessments {
		items = append(items, newAssessmentResp(a))
	}
	return batchResp{
		OwnerID:     o.OwnerID,
		Total:       len(items),
		Failed:      o.Failed,
		Assessments: items,
	}
}

type modelResp struct {
	Version     string            `json:"version"`
	Source      string            `json:"source"`
	Features    []string          `json:"features"`
	Attribution bool              `json:"attribution"`
	LoadedAt    response.DateTime `json:"loaded_at"`
}

func newModelResp(m risk.ModelInfo) modelResp {
	return modelResp{
		Version:     m.Version,
		Source:      m.Source,
		Features:    m.Features,
		Attribution: m.Attribution,
		LoadedAt:    response.DateTime(m.LoadedAt),
	}
}
