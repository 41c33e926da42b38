package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/model"
	"dropout-srv/internal/risk"
	"dropout-srv/internal/risk/backend"
	"dropout-srv/internal/student"
)

func (uc *implUseCase) Assess(ctx context.Context, sc model.Scope, studentID string) (model.RiskAssessment, error) {
	s, err := uc.studentUC.Detail(ctx, studentID)
	if err != nil {
		if errors.Is(err, student.ErrStudentNotFound) || errors.Is(err, student.ErrInvalidID) {
			uc.metrics.RiskFailed("not_found")
			return model.RiskAssessment{}, risk.ErrSubjectNotFound
		}
		uc.l.Errorf(ctx, "internal.risk.usecase.Assess.Detail: %v", err)
		return model.RiskAssessment{}, err
	}
	if !sc.CanActOn(s.MentorID) {
		return model.RiskAssessment{}, risk.ErrForbidden
	}

	a, err := uc.score(ctx, s)
	if err != nil {
		return model.RiskAssessment{}, err
	}

	a.AlertRequested = alertWarranted(a.Bucket)
	uc.afterAssess(ctx, s, a)

	return a, nil
}

// score runs the pipeline for one subject without side effects.
func (uc *implUseCase) score(ctx context.Context, s model.Student) (model.RiskAssessment, error) {
	loaded, err := uc.holder.Current()
	if err != nil {
		uc.metrics.RiskFailed("model_unavailable")
		return model.RiskAssessment{}, risk.ErrModelUnavailable
	}
	schema := loaded.Model.FeatureNames()

	perf, err := uc.studentUC.LatestFeatures(ctx, s.ID)
	if err != nil {
		uc.l.Warnf(ctx, "internal.risk.usecase.score.LatestFeatures: %s: %v", s.ID, err)
		perf = model.FeatureMap{}
	}

	x, values, err := assemble(s, perf, schema)
	if err != nil {
		uc.metrics.RiskFailed("feature_error")
		uc.l.Warnf(ctx, "internal.risk.usecase.score.assemble: %s: %v", s.ID, err)
		return model.RiskAssessment{}, err
	}

	p, err := loaded.Model.Probability(ctx, x)
	if err != nil {
		if errors.Is(err, backend.ErrFeatureMismatch) {
			uc.metrics.RiskFailed("feature_error")
			return model.RiskAssessment{}, fmt.Errorf("%w: %v", risk.ErrFeatureError, err)
		}
		uc.metrics.RiskFailed("model_unavailable")
		uc.l.Errorf(ctx, "internal.risk.usecase.score.Probability: %v", err)
		return model.RiskAssessment{}, risk.ErrModelUnavailable
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		uc.metrics.RiskFailed("model_unavailable")
		uc.l.Errorf(ctx, "internal.risk.usecase.score.Probability: out of range %v", p)
		return model.RiskAssessment{}, risk.ErrModelUnavailable
	}

	score := scoreFor(p)
	bucket := bucketFor(score, uc.thresholds)
	explained := uc.explain(ctx, loaded, schema, x, values)

	top := explained
	if len(top) > risk.TopFactorCount {
		top = top[:risk.TopFactorCount]
	}

	uc.metrics.RiskAssessed(string(bucket))
	return model.RiskAssessment{
		StudentID:       s.ID,
		StudentName:     s.Name,
		Probability:     p,
		Score:           score,
		Bucket:          bucket,
		Confidence:      confidenceFor(p),
		Features:        top,
		Recommendations: recommend(bucket, explained),
		ModelVersion:    loaded.Model.Version(),
		PredictionDate:  uc.clock().UTC().Truncate(time.Microsecond),
	}, nil
}

// afterAssess persists the score and requests an alert on a detached context,
// so the caller's response never waits for either.
func (uc *implUseCase) afterAssess(ctx context.Context, s model.Student, a model.RiskAssessment) {
	detached := context.WithoutCancel(ctx)

	uc.pending.Add(1)
	go func() {
		defer uc.pending.Done()
		ctx, cancel := context.WithTimeout(detached, sideEffectTimeout)
		defer cancel()

		ok, err := uc.studentUC.UpdateRiskScore(ctx, s.ID, a.Probability, a.PredictionDate)
		if err != nil {
			uc.l.Errorf(ctx, "internal.risk.usecase.afterAssess.UpdateRiskScore: %s: %v", s.ID, err)
		} else if !ok {
			uc.l.Warnf(ctx, "internal.risk.usecase.afterAssess.UpdateRiskScore: %s not updated", s.ID)
		}

		if !a.AlertRequested {
			return
		}
		_, err = uc.alertUC.CreateRiskAlert(ctx, alert.CreateRiskAlertInput{
			StudentID:  s.ID,
			Score:      float64(a.Score),
			Bucket:     a.Bucket,
			TopFactors: a.TopFactorNames(risk.TopFactorCount),
		})
		if err != nil {
			uc.l.Errorf(ctx, "internal.risk.usecase.afterAssess.CreateRiskAlert: %s: %v", s.ID, err)
		}
	}()
}
