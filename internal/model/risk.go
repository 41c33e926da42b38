package model

import "time"

type RiskBucket string

const (
	RiskBucketLow      RiskBucket = "low"
	RiskBucketModerate RiskBucket = "moderate"
	RiskBucketHigh     RiskBucket = "high"
)

const (
	ImpactPositive = "positive"
	ImpactNegative = "negative"
)

// FeatureContribution is one explained feature.
type FeatureContribution struct {
	Feature      string  `json:"feature"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
	Impact       string  `json:"impact"`
}

// RiskAssessment is produced per request and never stored as a whole.
type RiskAssessment struct {
	StudentID       string                `json:"student_id"`
	StudentName     string                `json:"student_name"`
	Probability     float64               `json:"risk_probability"`
	Score           int                   `json:"risk_score"`
	Bucket          RiskBucket            `json:"risk_category"`
	Confidence      float64               `json:"confidence"`
	Features        []FeatureContribution `json:"top_risk_factors"`
	Recommendations []string              `json:"recommendations"`
	ModelVersion    string                `json:"model_version"`
	PredictionDate  time.Time             `json:"prediction_date"`
	AlertRequested  bool                  `json:"alert_requested"`
}

// TopFactorNames returns up to n feature names in explained order.
func (r RiskAssessment) TopFactorNames(n int) []string {
	if n > len(r.Features) {
		n = len(r.Features)
	}
	names := make([]string, 0, n)
	for _, f := range r.Features[:n] {
		names = append(names, f.Feature)
	}
	return names
}
