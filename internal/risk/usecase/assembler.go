package usecase

import (
	"fmt"
	"math"

	"dropout-srv/internal/model"
	"dropout-srv/internal/risk"
)

// performanceDefaults stand in for signals with no recent records.
var performanceDefaults = model.FeatureMap{
	model.FeatureAttendance:      75,
	model.FeatureAvgAssignment:   70,
	model.FeatureAvgSemester:     70,
	model.FeatureEngagement:      5,
	model.FeatureLibraryHours:    5,
	model.FeatureExtracurricular: 2,
	model.FeatureDisciplinary:    0,
	model.FeatureTrendImproving:  0,
	model.FeatureTrendDeclining:  0,
}

// assemble lays out the subject's features in schema order. Names the subject
// and the aggregate know nothing about resolve to 0.
func assemble(s model.Student, perf model.FeatureMap, schema []string) ([]float64, model.FeatureMap, error) {
	values := make(model.FeatureMap, len(performanceDefaults)+len(model.BranchFeature)+len(model.YearFeature)+1)
	for name, v := range performanceDefaults {
		values[name] = v
	}
	for name, v := range perf {
		values[name] = v
	}

	for _, name := range model.BranchFeature {
		values[name] = 0
	}
	if name, ok := model.BranchFeature[s.Branch]; ok {
		values[name] = 1
	}
	for _, name := range model.YearFeature {
		values[name] = 0
	}
	if name, ok := model.YearFeature[s.Year]; ok {
		values[name] = 1
	}
	values[model.FeatureHasMentor] = boolFeature(s.HasMentor())

	x := make([]float64, len(schema))
	for i, name := range schema {
		v := values[name]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, fmt.Errorf("%w: %s is %v", risk.ErrFeatureError, name, v)
		}
		x[i] = v
	}
	return x, values, nil
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
