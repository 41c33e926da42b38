package usecase

import (
	"context"
	"math"
	"slices"

	"dropout-srv/internal/model"
	"dropout-srv/internal/risk/backend"
)

// explain returns contributions ranked by magnitude. A missing or failing
// attribution backend yields an empty list.
func (uc *implUseCase) explain(ctx context.Context, loaded *backend.Loaded, schema []string, x []float64, values model.FeatureMap) []model.FeatureContribution {
	if loaded.Attributor == nil {
		return []model.FeatureContribution{}
	}

	attrs, err := loaded.Attributor.Attribute(ctx, x)
	if err != nil {
		uc.l.Warnf(ctx, "internal.risk.usecase.explain.Attribute: %v", err)
		return []model.FeatureContribution{}
	}

	return rank(schema, values, attrs)
}

// rank orders attributions by descending absolute contribution. Ties keep schema order.
func rank(schema []string, values model.FeatureMap, attrs []backend.Attribution) []model.FeatureContribution {
	index := make(map[string]int, len(schema))
	for i, name := range schema {
		index[name] = i
	}

	slots := make([]*model.FeatureContribution, len(schema))
	for _, a := range attrs {
		i, ok := index[a.Feature]
		if !ok || math.IsNaN(a.Value) {
			continue
		}
		slots[i] = &model.FeatureContribution{
			Feature:      a.Feature,
			Value:        values[a.Feature],
			Contribution: a.Value,
			Impact:       impactOf(a.Value),
		}
	}

	out := make([]model.FeatureContribution, 0, len(attrs))
	for _, c := range slots {
		if c != nil {
			out = append(out, *c)
		}
	}

	slices.SortStableFunc(out, func(a, b model.FeatureContribution) int {
		x, y := math.Abs(a.Contribution), math.Abs(b.Contribution)
		switch {
		case x > y:
			return -1
		case x < y:
			return 1
		default:
			return 0
		}
	})
	return out
}

func impactOf(contribution float64) string {
	if contribution > 0 {
		return model.ImpactPositive
	}
	return model.ImpactNegative
}
