package usecase

import (
	"context"
	"errors"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/alert/repository"
	"dropout-srv/internal/model"
)

// Sweep escalates overdue alerts. A failure on one alert is counted and the
// pass moves on; only a failure to read candidates fails the pass.
func (uc *implUseCase) Sweep(ctx context.Context) (alert.SweepOutput, error) {
	start := uc.now()
	out := alert.SweepOutput{StartedAt: start}
	interval := uc.opts.ReescalationInterval

	candidates, err := uc.repo.ListOverdue(ctx, repository.ListOverdueOptions{
		Now:             start,
		EscalatedBefore: start.Add(-interval),
		Limit:           uc.opts.SweepBatchSize,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Sweep.repo.ListOverdue: %v", err)
		out.Duration = uc.now().Sub(start)
		uc.metrics.SweepFinished("error", 0, out.Duration)
		return out, err
	}
	out.Candidates = len(candidates)

	var (
		admins       []model.User
		adminsLoaded bool
	)
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			uc.l.Warnf(ctx, "internal.alert.usecase.Sweep: interrupted after %d of %d candidates", out.Escalated+out.Skipped+out.Failed, out.Candidates)
			break
		}

		escalated, err := uc.repo.Transition(ctx, c.ID, func(a model.Alert) (model.Alert, error) {
			return applyEscalate(a, start, interval)
		})
		if err != nil {
			if errors.Is(err, alert.ErrNotEscalable) || errors.Is(err, repository.ErrNotFound) {
				out.Skipped++
				continue
			}
			uc.l.Errorf(ctx, "internal.alert.usecase.Sweep.repo.Transition: %s: %v", c.ID, err)
			out.Failed++
			continue
		}
		out.Escalated++
		uc.metrics.AlertTransitioned(string(model.AlertStatusEscalated))

		if !adminsLoaded {
			admins, adminsLoaded = uc.activeAdmins(ctx), true
		}
		uc.notifyEscalation(ctx, escalated, admins, start)
	}

	out.Duration = uc.now().Sub(start)
	uc.metrics.SweepFinished("ok", out.Escalated, out.Duration)
	uc.l.Infof(ctx, "internal.alert.usecase.Sweep: candidates=%d escalated=%d skipped=%d failed=%d took=%s",
		out.Candidates, out.Escalated, out.Skipped, out.Failed, out.Duration)

	return out, ctx.Err()
}
