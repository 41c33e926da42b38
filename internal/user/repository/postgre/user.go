package postgres

import (
	"context"
	"database/sql"

	"dropout-srv/internal/model"
	"dropout-srv/internal/user/repository"
	postgresPkg "dropout-srv/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
)

func (r *implRepository) Detail(ctx context.Context, id string) (model.User, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		return model.User{}, repository.ErrNotFound
	}

	var row userRow
	err := queries.Raw("SELECT "+userColumns+" FROM users WHERE id = $1", id).Bind(ctx, r.db, &row)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return model.User{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.user.repository.postgres.Detail.Bind: %v", err)
		return model.User{}, errors.Wrap(err, "select user")
	}

	return row.toModel(), nil
}

func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.User, error) {
	query, args, err := r.buildListQuery(ctx, opts)
	if err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.List.buildListQuery: %v", err)
		return nil, err
	}

	var rows []userRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.List.Bind: %v", err)
		return nil, errors.Wrap(err, "list users")
	}

	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}
