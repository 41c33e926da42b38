package usecase

import (
	"strings"

	"dropout-srv/internal/model"
	"dropout-srv/internal/risk"
)

var baseRecommendations = map[model.RiskBucket][]string{
	model.RiskBucketHigh: {
		"Immediate intervention required - schedule urgent meeting with student",
		"Contact parents/guardians to discuss student's situation",
		"Consider academic support programs or tutoring",
		"Evaluate personal circumstances that may be affecting performance",
	},
	model.RiskBucketModerate: {
		"Schedule regular check-ins with the student",
		"Monitor academic progress closely",
		"Provide additional academic resources if needed",
		"Encourage participation in support groups",
	},
	model.RiskBucketLow: {
		"Continue current support level",
		"Maintain regular monitoring",
		"Recognize and encourage good performance",
	},
}

// factorRules are tried in order; the first keyword found in a feature name wins.
var factorRules = []struct {
	keyword        string
	recommendation string
}{
	{"attendance", "Focus on improving attendance - identify barriers to regular attendance"},
	{"assignment", "Provide additional academic support for assignments"},
	{"engagement", "Work on increasing student engagement in class activities"},
	{"library", "Encourage more study time and library usage"},
	{"disciplinary", "Address behavioral issues through counseling"},
}

// recommend lists the bucket's base actions, then one targeted action per leading
// risk-increasing feature, capped at MaxRecommendations.
func recommend(bucket model.RiskBucket, explained []model.FeatureContribution) []string {
	base, ok := baseRecommendations[bucket]
	if !ok {
		base = baseRecommendations[model.RiskBucketLow]
	}

	out := make([]string, 0, risk.MaxRecommendations+len(base))
	out = append(out, base...)

	top := explained
	if len(top) > risk.TopRecommendationFactors {
		top = top[:risk.TopRecommendationFactors]
	}
	for _, f := range top {
		if f.Impact != model.ImpactPositive {
			continue
		}
		name := strings.ToLower(f.Feature)
		for _, rule := range factorRules {
			if strings.Contains(name, rule.keyword) {
				out = append(out, rule.recommendation)
				break
			}
		}
	}

	if len(out) > risk.MaxRecommendations {
		out = out[:risk.MaxRecommendations]
	}
	return out
}
