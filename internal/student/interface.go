package student

import (
	"context"
	"time"

	"dropout-srv/internal/model"
)

// UseCase is the subject and performance store consumed by risk scoring and alerting.
//
//go:generate mockery --name UseCase
type UseCase interface {
	Detail(ctx context.Context, id string) (model.Student, error)
	ListByMentor(ctx context.Context, mentorID string) ([]model.Student, error)
	UpdateRiskScore(ctx context.Context, id string, score float64, at time.Time) (bool, error)
	// LatestFeatures aggregates the recent performance window. It returns an empty
	// map when no records exist; callers apply their own defaults.
	LatestFeatures(ctx context.Context, id string) (model.FeatureMap, error)
}
