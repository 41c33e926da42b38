package postgres

import (
	"context"
	"database/sql"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/alert/repository"
	"dropout-srv/internal/model"
	"dropout-srv/pkg/paginator"
	postgresPkg "dropout-srv/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

func (r *implRepository) Create(ctx context.Context, a model.Alert) (model.Alert, error) {
	if a.ID == "" {
		a.ID = postgresPkg.NewUUID()
	}

	factors, err := encodeFactors(a.Factors)
	if err != nil {
		return model.Alert{}, errors.Wrap(err, "encode factors")
	}

	_, err = queries.Raw(insertAlertQuery,
		a.ID, a.StudentID, nullString(a.OwnerID), a.RiskScore, string(a.Severity), a.Message, factors,
		string(a.Status), a.SLADeadline, a.CreatedAt, a.UpdatedAt, nullTime(a.AcknowledgedAt),
		nullTime(a.ResolvedAt), nullTime(a.LastEscalatedAt), nullString(a.ResponseNotes), a.EscalationCount,
	).ExecContext(ctx, r.db)
	if err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return model.Alert{}, repository.ErrAlreadyExists
		}
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Create.Exec: %v", err)
		return model.Alert{}, errors.Wrap(err, "insert alert")
	}

	return a.Clone(), nil
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.Alert, error) {
	return r.detail(ctx, r.db, id, "")
}

func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Alert, int64, error) {
	if opts.Limit <= 0 {
		opts.Limit = paginator.DefaultLimit
	}
	countQuery, pageQuery, args := buildListQuery(opts)

	var count countRow
	if err := queries.Raw(countQuery, args...).Bind(ctx, r.db, &count); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.List.Count: %v", err)
		return nil, 0, errors.Wrap(err, "count alerts")
	}

	var rows []alertRow
	pageArgs := append(append([]interface{}{}, args...), opts.Limit, opts.Skip)
	if err := queries.Raw(pageQuery, pageArgs...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.List.Bind: %v", err)
		return nil, 0, errors.Wrap(err, "list alerts")
	}

	alerts, err := r.toModels(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return alerts, count.Count, nil
}

func (r *implRepository) Transition(ctx context.Context, id string, fn repository.TransitionFunc) (model.Alert, error) {
	if !postgresPkg.IsValidUUID(id) {
		return model.Alert{}, repository.ErrNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Transition.BeginTx: %v", err)
		return model.Alert{}, errors.Wrap(err, "begin transition")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, err := r.detail(ctx, tx, id, " FOR UPDATE")
	if err != nil {
		return model.Alert{}, err
	}

	next, err := fn(current.Clone())
	if err != nil {
		return model.Alert{}, err
	}
	next.ID = current.ID

	_, err = queries.Raw(updateTransitionQuery,
		next.ID, nullString(next.OwnerID), string(next.Status), next.UpdatedAt, nullTime(next.AcknowledgedAt),
		nullTime(next.ResolvedAt), nullTime(next.LastEscalatedAt), nullString(next.ResponseNotes), next.EscalationCount,
	).ExecContext(ctx, tx)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Transition.Exec: %v", err)
		return model.Alert{}, errors.Wrap(err, "update alert")
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Transition.Commit: %v", err)
		return model.Alert{}, errors.Wrap(err, "commit transition")
	}

	return next, nil
}

func (r *implRepository) ListOverdue(ctx context.Context, opts repository.ListOverdueOptions) ([]model.Alert, error) {
	if opts.Limit <= 0 {
		opts.Limit = alert.DefaultSweepBatchSize
	}
	query, args := buildOverdueQuery(opts)

	var rows []alertRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.ListOverdue.Bind: %v", err)
		return nil, errors.Wrap(err, "list overdue alerts")
	}
	return r.toModels(ctx, rows)
}

func (r *implRepository) Stats(ctx context.Context, opts repository.StatsOptions) (alert.Stats, error) {
	query, args := buildStatsQuery(opts)

	var row statsRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &row); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Stats.Bind: %v", err)
		return alert.Stats{}, errors.Wrap(err, "alert stats")
	}

	return alert.Stats{
		TotalAlerts:          row.TotalAlerts,
		ActiveAlerts:         row.ActiveAlerts,
		ResolvedAlerts:       row.ResolvedAlerts,
		EscalatedAlerts:      row.EscalatedAlerts,
		AvgResponseTimeHours: row.AvgResponseTimeHours,
	}, nil
}

func (r *implRepository) detail(ctx context.Context, exec boil.ContextExecutor, id, lock string) (model.Alert, error) {
	if !postgresPkg.IsValidUUID(id) {
		return model.Alert{}, repository.ErrNotFound
	}

	var row alertRow
	err := queries.Raw("SELECT "+alertColumns+" FROM alerts WHERE id = $1"+lock, id).Bind(ctx, exec, &row)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return model.Alert{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.alert.repository.postgres.detail.Bind: %v", err)
		return model.Alert{}, errors.Wrap(err, "select alert")
	}

	a, err := row.toModel()
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.detail.toModel: %v", err)
		return model.Alert{}, errors.Wrap(err, "decode alert")
	}
	return a, nil
}

func (r *implRepository) toModels(ctx context.Context, rows []alertRow) ([]model.Alert, error) {
	alerts := make([]model.Alert, 0, len(rows))
	for _, row := range rows {
		a, err := row.toModel()
		if err != nil {
			r.l.Errorf(ctx, "internal.alert.repository.postgres.toModels: %v", err)
			return nil, errors.Wrap(err, "decode alert")
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}
