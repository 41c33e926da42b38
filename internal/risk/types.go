package risk

import (
	"time"

	"dropout-srv/internal/model"
)

// TopFactorCount is how many explained features an assessment reports.
const TopFactorCount = 3

// TopRecommendationFactors is how many leading features may add a targeted recommendation.
const TopRecommendationFactors = 3

// MaxRecommendations caps the recommendation list.
const MaxRecommendations = 5

const (
	DefaultModerateThreshold = 4
	DefaultHighThreshold     = 7
)

// Thresholds split the 1..10 score into buckets: score <= Moderate is low,
// score >= High is high, anything between is moderate.
type Thresholds struct {
	Moderate int
	High     int
}

// Validate checks 1 <= Moderate < High <= 10.
func (t Thresholds) Validate() error {
	if t.Moderate < 1 || t.High > 10 || t.Moderate >= t.High {
		return ErrInvalidThresholds
	}
	return nil
}

type BatchOutput struct {
	OwnerID     string
	Assessments []model.RiskAssessment
	Failed      int
}

type ModelInfo struct {
	Version     string    `json:"version"`
	Source      string    `json:"source"`
	Features    []string  `json:"features"`
	Attribution bool      `json:"attribution"`
	LoadedAt    time.Time `json:"loaded_at"`
}
