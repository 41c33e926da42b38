package usecase

import (
	"context"
	"errors"
	"strings"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/alert/repository"
	"dropout-srv/internal/model"
	"dropout-srv/internal/user"
)

func (uc *implUseCase) Acknowledge(ctx context.Context, sc model.Scope, id string, notes string) (model.Alert, error) {
	now := uc.now()
	return uc.transition(ctx, "Acknowledge", id, func(a model.Alert) (model.Alert, error) {
		if !sc.CanActOn(a.OwnerID) {
			return model.Alert{}, alert.ErrForbidden
		}
		return applyAcknowledge(a, notes, now)
	})
}

func (uc *implUseCase) Resolve(ctx context.Context, sc model.Scope, id string, notes string) (model.Alert, error) {
	now := uc.now()
	return uc.transition(ctx, "Resolve", id, func(a model.Alert) (model.Alert, error) {
		if !sc.CanActOn(a.OwnerID) {
			return model.Alert{}, alert.ErrForbidden
		}
		return applyResolve(a, notes, now)
	})
}

// Update applies a partial change. A status change goes through the same
// rules as Acknowledge and Resolve; resolved alerts are read-only.
func (uc *implUseCase) Update(ctx context.Context, sc model.Scope, id string, ip alert.UpdateInput) (model.Alert, error) {
	if ip.IsEmpty() {
		return uc.Detail(ctx, sc, id)
	}
	if ip.Status != nil {
		switch *ip.Status {
		case model.AlertStatusAcknowledged, model.AlertStatusResolved:
		case model.AlertStatusActive, model.AlertStatusEscalated:
			return model.Alert{}, alert.ErrInvalidTransition
		default:
			return model.Alert{}, alert.ErrInvalidInput
		}
	}
	if ip.OwnerID != nil {
		if !sc.IsAdmin() {
			return model.Alert{}, alert.ErrForbidden
		}
		if err := uc.validateOwner(ctx, *ip.OwnerID); err != nil {
			return model.Alert{}, err
		}
	}

	now := uc.now()
	return uc.transition(ctx, "Update", id, func(a model.Alert) (model.Alert, error) {
		if !sc.CanActOn(a.OwnerID) {
			return model.Alert{}, alert.ErrForbidden
		}
		if a.Status == model.AlertStatusResolved {
			return model.Alert{}, alert.ErrInvalidTransition
		}

		var notes string
		if ip.Notes != nil {
			notes = *ip.Notes
		}

		var err error
		switch {
		case ip.Status == nil || *ip.Status == a.Status:
			if ip.Notes != nil {
				a.ResponseNotes = notes
			}
			a.UpdatedAt = now
		case *ip.Status == model.AlertStatusAcknowledged:
			if a, err = applyAcknowledge(a, notes, now); err != nil {
				return model.Alert{}, err
			}
		case *ip.Status == model.AlertStatusResolved:
			if a, err = applyResolve(a, notes, now); err != nil {
				return model.Alert{}, err
			}
		}

		if ip.OwnerID != nil {
			a.OwnerID = *ip.OwnerID
		}
		return a, nil
	})
}

func (uc *implUseCase) transition(ctx context.Context, op, id string, fn repository.TransitionFunc) (model.Alert, error) {
	before := model.AlertStatus("")
	a, err := uc.repo.Transition(ctx, id, func(cur model.Alert) (model.Alert, error) {
		before = cur.Status
		return fn(cur)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return model.Alert{}, alert.ErrAlertNotFound
		case errors.Is(err, alert.ErrForbidden), errors.Is(err, alert.ErrInvalidTransition):
			return model.Alert{}, err
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.%s.repo.Transition: %v", op, err)
		return model.Alert{}, err
	}

	if a.Status != before {
		uc.metrics.AlertTransitioned(string(a.Status))
	}
	return a, nil
}

func (uc *implUseCase) validateOwner(ctx context.Context, ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return alert.ErrInvalidInput
	}
	u, err := uc.users.Detail(ctx, ownerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return alert.ErrInvalidInput
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.validateOwner.users.Detail: %v", err)
		return err
	}
	if !u.IsActive || (u.Role != model.RoleMentor && u.Role != model.RoleAdmin) {
		return alert.ErrInvalidInput
	}
	return nil
}
