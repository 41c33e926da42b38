package usecase

import (
	"context"

	"dropout-srv/internal/model"
	"dropout-srv/internal/risk"
)

func (uc *implUseCase) AssessBatch(ctx context.Context, sc model.Scope, ownerID string) (risk.BatchOutput, error) {
	if !sc.CanActOn(ownerID) {
		return risk.BatchOutput{}, risk.ErrForbidden
	}
	if _, err := uc.holder.Current(); err != nil {
		return risk.BatchOutput{}, risk.ErrModelUnavailable
	}

	students, err := uc.studentUC.ListByMentor(ctx, ownerID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.risk.usecase.AssessBatch.ListByMentor: %v", err)
		return risk.BatchOutput{}, err
	}

	out := risk.BatchOutput{OwnerID: ownerID, Assessments: make([]model.RiskAssessment, 0, len(students))}
	for _, s := range students {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		a, err := uc.score(ctx, s)
		if err != nil {
			uc.l.Warnf(ctx, "internal.risk.usecase.AssessBatch.score: %s: %v", s.ID, err)
			out.Failed++
			continue
		}
		out.Assessments = append(out.Assessments, a)
	}

	return out, nil
}

func (uc *implUseCase) ModelInfo(ctx context.Context) (risk.ModelInfo, error) {
	loaded, err := uc.holder.Current()
	if err != nil {
		return risk.ModelInfo{}, risk.ErrModelUnavailable
	}

	return risk.ModelInfo{
		Version:     loaded.Model.Version(),
		Source:      loaded.Source,
		Features:    loaded.Model.FeatureNames(),
		Attribution: loaded.Attributor != nil,
		LoadedAt:    loaded.LoadedAt,
	}, nil
}
