package risk

import (
	"context"

	"dropout-srv/internal/model"
)

// UseCase is the risk scoring pipeline.
//
//go:generate mockery --name UseCase
type UseCase interface {
	// Assess scores one subject, persists the score and requests an alert when warranted.
	Assess(ctx context.Context, sc model.Scope, studentID string) (model.RiskAssessment, error)
	// AssessBatch scores every active subject of an owner without side effects.
	AssessBatch(ctx context.Context, sc model.Scope, ownerID string) (BatchOutput, error)
	ModelInfo(ctx context.Context) (ModelInfo, error)
	// Drain waits for detached post-assessment work until it finishes or ctx is done.
	Drain(ctx context.Context) error
}
