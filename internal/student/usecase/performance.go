package usecase

import (
	"context"

	"dropout-srv/internal/model"
	"dropout-srv/internal/student"
	"dropout-srv/internal/student/repository"
)

func (uc *usecase) LatestFeatures(ctx context.Context, id string) (model.FeatureMap, error) {
	records, err := uc.repo.ListPerformance(ctx, repository.ListPerformanceOptions{
		StudentID: id,
		Since:     uc.clock().UTC().Add(-student.PerformanceWindow),
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.student.usecase.LatestFeatures: %v", err)
		return nil, err
	}

	return aggregate(records), nil
}

// aggregate folds records (newest first) into the performance features.
func aggregate(records []model.PerformanceRecord) model.FeatureMap {
	features := model.FeatureMap{}
	if len(records) == 0 {
		return features
	}

	latest := records[0]
	features[model.FeatureAttendance] = latest.AttendancePercentage
	features[model.FeatureEngagement] = latest.EngagementScore
	features[model.FeatureExtracurricular] = latest.ExtracurricularParticipation
	features[model.FeatureDisciplinary] = float64(latest.DisciplinaryIssues)

	var assignments, semesters []float64
	var libraryHours float64
	for _, r := range records {
		for _, v := range r.AssignmentScores {
			assignments = append(assignments, v)
		}
		for _, v := range r.SemesterMarks {
			semesters = append(semesters, v)
		}
		libraryHours += r.LibraryHours
	}
	features[model.FeatureAvgAssignment] = mean(assignments)
	features[model.FeatureAvgSemester] = mean(semesters)
	features[model.FeatureLibraryHours] = libraryHours / student.LibraryWeeks

	if len(records) >= 2 {
		trend := computeTrend(records)
		features[model.FeatureTrendImproving] = boolFeature(trend == student.TrendImproving)
		features[model.FeatureTrendDeclining] = boolFeature(trend == student.TrendDeclining)
	}

	return features
}

func computeTrend(records []model.PerformanceRecord) student.Trend {
	half := len(records) / 2
	recent := periodScore(records[:half])
	older := periodScore(records[half:])

	switch {
	case recent > older*student.TrendUpperRatio:
		return student.TrendImproving
	case recent < older*student.TrendLowerRatio:
		return student.TrendDeclining
	default:
		return student.TrendStable
	}
}

func periodScore(records []model.PerformanceRecord) float64 {
	scores := make([]float64, 0, len(records))
	for _, r := range records {
		scores = append(scores, r.AttendancePercentage+r.EngagementScore)
	}
	return mean(scores)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
