package repository

import (
	"context"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/model"
)

// TransitionFunc decides the next state of an alert from its current state.
// Returning an error aborts the transition and leaves the record untouched.
type TransitionFunc func(current model.Alert) (model.Alert, error)

//go:generate mockery --name Repository
type Repository interface {
	Create(ctx context.Context, a model.Alert) (model.Alert, error)
	Detail(ctx context.Context, id string) (model.Alert, error)
	// List returns one page, newest first, and the total number of matches.
	List(ctx context.Context, opts ListOptions) ([]model.Alert, int64, error)
	// Transition reads, decides and writes a single alert atomically.
	Transition(ctx context.Context, id string, fn TransitionFunc) (model.Alert, error)
	// ListOverdue returns escalation candidates ordered by deadline, oldest first.
	ListOverdue(ctx context.Context, opts ListOverdueOptions) ([]model.Alert, error)
	Stats(ctx context.Context, opts StatsOptions) (alert.Stats, error)
}
