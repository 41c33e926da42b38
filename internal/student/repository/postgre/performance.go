package postgres

import (
	"context"

	"dropout-srv/internal/model"
	"dropout-srv/internal/student/repository"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
)

func (r *implRepository) ListPerformance(ctx context.Context, opts repository.ListPerformanceOptions) ([]model.PerformanceRecord, error) {
	query, args := buildPerformanceQuery(opts)

	var rows []performanceRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.student.repository.postgres.ListPerformance.Bind: %v", err)
		return nil, errors.Wrap(err, "list performance records")
	}

	records := make([]model.PerformanceRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toModel()
		if err != nil {
			r.l.Warnf(ctx, "internal.student.repository.postgres.ListPerformance.toModel: record %s: %v", row.ID, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
