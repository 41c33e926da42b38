package postgres

import (
	"context"

	"dropout-srv/internal/user/repository"
	postgresPkg "dropout-srv/pkg/postgre"
)

const userColumns = "id, email, name, role, is_active, created_at, updated_at"

func (r *implRepository) buildListQuery(ctx context.Context, opts repository.ListOptions) (string, []interface{}, error) {
	w := &postgresPkg.Where{}

	if len(opts.Filter.IDs) > 0 {
		if err := postgresPkg.ValidateUUIDs(opts.Filter.IDs); err != nil {
			r.l.Errorf(ctx, "internal.user.repository.postgres.buildListQuery.ValidateUUIDs: %v", err)
			return "", nil, err
		}
		w.In("id", opts.Filter.IDs)
	}
	if opts.Filter.Role != "" {
		w.Eq("role", opts.Filter.Role)
	}
	if opts.Filter.IsActive != nil {
		w.Eq("is_active", *opts.Filter.IsActive)
	}

	return "SELECT " + userColumns + " FROM users" + w.SQL() + " ORDER BY created_at ASC", w.Args(), nil
}
