package usecase

import (
	"math"

	"dropout-srv/internal/model"
	"dropout-srv/internal/risk"
)

// scoreFor maps a probability onto the 1..10 scale.
func scoreFor(p float64) int {
	s := int(math.Round(p * 10))
	if s < 1 {
		return 1
	}
	if s > 10 {
		return 10
	}
	return s
}

// bucketFor puts boundary scores into the lower of two adjacent buckets.
func bucketFor(score int, t risk.Thresholds) model.RiskBucket {
	switch {
	case score <= t.Moderate:
		return model.RiskBucketLow
	case score >= t.High:
		return model.RiskBucketHigh
	default:
		return model.RiskBucketModerate
	}
}

func confidenceFor(p float64) float64 {
	return math.Max(p, 1-p)
}

func alertWarranted(b model.RiskBucket) bool {
	return b == model.RiskBucketModerate || b == model.RiskBucketHigh
}
