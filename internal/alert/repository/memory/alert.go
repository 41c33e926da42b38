package memory

import (
	"context"
	"sort"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/alert/repository"
	"dropout-srv/internal/model"
	"dropout-srv/pkg/paginator"

	"github.com/google/uuid"
)

func (r *implRepository) Create(ctx context.Context, a model.Alert) (model.Alert, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.alerts[a.ID]; ok {
		r.l.Warnf(ctx, "internal.alert.repository.memory.Create: duplicate id %s", a.ID)
		return model.Alert{}, repository.ErrAlreadyExists
	}
	r.alerts[a.ID] = &entry{alert: a.Clone()}

	return a.Clone(), nil
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.Alert, error) {
	e, ok := r.get(id)
	if !ok {
		return model.Alert{}, repository.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.alert.Clone(), nil
}

func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Alert, int64, error) {
	var matched []model.Alert
	for _, a := range r.snapshot() {
		if matches(a, opts.Filter) {
			matched = append(matched, a)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	page, p := paginator.PaginateSlice(matched, paginator.OffsetQuery{Skip: opts.Skip, Limit: opts.Limit})
	return page, p.Total, nil
}

func (r *implRepository) Transition(ctx context.Context, id string, fn repository.TransitionFunc) (model.Alert, error) {
	e, ok := r.get(id)
	if !ok {
		r.l.Warnf(ctx, "internal.alert.repository.memory.Transition: unknown id %s", id)
		return model.Alert{}, repository.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := fn(e.alert.Clone())
	if err != nil {
		return model.Alert{}, err
	}
	next.ID = e.alert.ID
	e.alert = next.Clone()

	return next, nil
}

func (r *implRepository) ListOverdue(ctx context.Context, opts repository.ListOverdueOptions) ([]model.Alert, error) {
	var due []model.Alert
	for _, a := range r.snapshot() {
		if a.Status != model.AlertStatusActive && a.Status != model.AlertStatusEscalated {
			continue
		}
		if a.SLADeadline.After(opts.Now) {
			continue
		}
		if a.LastEscalatedAt != nil && a.LastEscalatedAt.After(opts.EscalatedBefore) {
			continue
		}
		due = append(due, a)
	}

	sort.SliceStable(due, func(i, j int) bool {
		if !due[i].SLADeadline.Equal(due[j].SLADeadline) {
			return due[i].SLADeadline.Before(due[j].SLADeadline)
		}
		return due[i].ID < due[j].ID
	})

	if opts.Limit > 0 && opts.Limit < len(due) {
		due = due[:opts.Limit]
	}
	return due, nil
}

func (r *implRepository) Stats(ctx context.Context, opts repository.StatsOptions) (alert.Stats, error) {
	var (
		stats    alert.Stats
		resolved int
		hours    float64
	)
	for _, a := range r.snapshot() {
		if opts.OwnerID != "" && a.OwnerID != opts.OwnerID {
			continue
		}
		stats.TotalAlerts++
		switch a.Status {
		case model.AlertStatusActive:
			stats.ActiveAlerts++
		case model.AlertStatusResolved:
			stats.ResolvedAlerts++
		case model.AlertStatusEscalated:
			stats.EscalatedAlerts++
		}
		if a.ResolvedAt != nil && !a.CreatedAt.IsZero() {
			resolved++
			hours += a.ResolvedAt.Sub(a.CreatedAt).Hours()
		}
	}
	if resolved > 0 {
		stats.AvgResponseTimeHours = hours / float64(resolved)
	}
	return stats, nil
}

func (r *implRepository) get(id string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.alerts[id]
	return e, ok
}

// snapshot copies every alert, taking each entry lock in turn.
func (r *implRepository) snapshot() []model.Alert {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.alerts))
	for _, e := range r.alerts {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	out := make([]model.Alert, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.alert.Clone())
		e.mu.Unlock()
	}
	return out
}

func matches(a model.Alert, f alert.Filter) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.Severity != "" && a.Severity != f.Severity {
		return false
	}
	if f.StudentID != "" && a.StudentID != f.StudentID {
		return false
	}
	if f.OwnerID != "" && a.OwnerID != f.OwnerID {
		return false
	}
	return true
}
