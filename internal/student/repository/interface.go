package repository

import (
	"context"

	"dropout-srv/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	Detail(ctx context.Context, id string) (model.Student, error)
	List(ctx context.Context, opts ListOptions) ([]model.Student, error)
	UpdateRiskScore(ctx context.Context, opts UpdateRiskScoreOptions) (bool, error)
	// ListPerformance returns records dated on or after Since, newest first.
	ListPerformance(ctx context.Context, opts ListPerformanceOptions) ([]model.PerformanceRecord, error)
}
