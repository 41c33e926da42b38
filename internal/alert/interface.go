package alert

import (
	"context"

	"dropout-srv/internal/model"
)

// UseCase is the alert lifecycle and escalation engine.
//
//go:generate mockery --name UseCase
type UseCase interface {
	// CreateRiskAlert is the path taken by risk scoring. It performs no caller checks.
	CreateRiskAlert(ctx context.Context, ip CreateRiskAlertInput) (model.Alert, error)
	// Create is the manual path; only administrators may use it.
	Create(ctx context.Context, sc model.Scope, ip CreateRiskAlertInput) (model.Alert, error)
	Detail(ctx context.Context, sc model.Scope, id string) (model.Alert, error)
	List(ctx context.Context, sc model.Scope, ip ListInput) (ListOutput, error)
	Update(ctx context.Context, sc model.Scope, id string, ip UpdateInput) (model.Alert, error)
	Acknowledge(ctx context.Context, sc model.Scope, id string, notes string) (model.Alert, error)
	Resolve(ctx context.Context, sc model.Scope, id string, notes string) (model.Alert, error)
	// Sweep runs one escalation pass over overdue alerts.
	Sweep(ctx context.Context) (SweepOutput, error)
	Stats(ctx context.Context, sc model.Scope, ip StatsInput) (Stats, error)
}
