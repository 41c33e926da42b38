package usecase

import (
	"context"
	"errors"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/alert/repository"
	"dropout-srv/internal/model"
	"dropout-srv/pkg/paginator"
)

func (uc *implUseCase) Detail(ctx context.Context, sc model.Scope, id string) (model.Alert, error) {
	a, err := uc.repo.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Alert{}, alert.ErrAlertNotFound
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.Detail.repo.Detail: %v", err)
		return model.Alert{}, err
	}

	if !sc.CanActOn(a.OwnerID) {
		return model.Alert{}, alert.ErrForbidden
	}
	return a, nil
}

func (uc *implUseCase) List(ctx context.Context, sc model.Scope, ip alert.ListInput) (alert.ListOutput, error) {
	if err := ip.Query.Validate(); err != nil {
		return alert.ListOutput{}, alert.ErrInvalidInput
	}
	if ip.Filter.Status != "" && !ip.Filter.Status.IsValid() {
		return alert.ListOutput{}, alert.ErrInvalidInput
	}
	if ip.Filter.Severity != "" && !ip.Filter.Severity.IsValid() {
		return alert.ListOutput{}, alert.ErrInvalidInput
	}

	filter, err := scopeFilter(sc, ip.Filter)
	if err != nil {
		return alert.ListOutput{}, err
	}
	ip.Query.Adjust()

	alerts, total, err := uc.repo.List(ctx, repository.ListOptions{
		Filter: filter,
		Skip:   ip.Query.Skip,
		Limit:  ip.Query.Limit,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.List.repo.List: %v", err)
		return alert.ListOutput{}, err
	}

	return alert.ListOutput{
		Alerts: alerts,
		Pagin: paginator.Paginator{
			Total: total,
			Count: len(alerts),
			Skip:  ip.Query.Skip,
			Limit: ip.Query.Limit,
		},
	}, nil
}

func (uc *implUseCase) Stats(ctx context.Context, sc model.Scope, ip alert.StatsInput) (alert.Stats, error) {
	filter, err := scopeFilter(sc, alert.Filter{OwnerID: ip.OwnerID})
	if err != nil {
		return alert.Stats{}, err
	}

	stats, err := uc.repo.Stats(ctx, repository.StatsOptions{OwnerID: filter.OwnerID})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Stats.repo.Stats: %v", err)
		return alert.Stats{}, err
	}
	return stats, nil
}

// scopeFilter pins non-administrators to their own alerts.
func scopeFilter(sc model.Scope, f alert.Filter) (alert.Filter, error) {
	switch {
	case sc.IsAdmin():
		return f, nil
	case sc.IsMentor() && sc.UserID != "":
		f.OwnerID = sc.UserID
		return f, nil
	}
	return alert.Filter{}, alert.ErrForbidden
}
