package postgres

import (
	"context"
	"database/sql"

	"dropout-srv/internal/model"
	"dropout-srv/internal/student/repository"
	postgresPkg "dropout-srv/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
)

func (r *implRepository) Detail(ctx context.Context, id string) (model.Student, error) {
	if !postgresPkg.IsValidUUID(id) {
		return model.Student{}, repository.ErrNotFound
	}

	var row studentRow
	err := queries.Raw("SELECT "+studentColumns+" FROM students WHERE id = $1", id).Bind(ctx, r.db, &row)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return model.Student{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.student.repository.postgres.Detail.Bind: %v", err)
		return model.Student{}, errors.Wrap(err, "select student")
	}

	return row.toModel(), nil
}

func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Student, error) {
	query, args := buildListQuery(opts)

	var rows []studentRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.student.repository.postgres.List.Bind: %v", err)
		return nil, errors.Wrap(err, "list students")
	}

	students := make([]model.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toModel())
	}
	return students, nil
}

func (r *implRepository) UpdateRiskScore(ctx context.Context, opts repository.UpdateRiskScoreOptions) (bool, error) {
	if !postgresPkg.IsValidUUID(opts.ID) {
		return false, nil
	}

	res, err := queries.Raw(
		"UPDATE students SET current_risk_score = $1, last_prediction_date = $2, updated_at = $2 WHERE id = $3",
		opts.Score, opts.At, opts.ID,
	).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.student.repository.postgres.UpdateRiskScore.Exec: %v", err)
		return false, errors.Wrap(err, "update risk score")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "rows affected")
	}
	return n > 0, nil
}
