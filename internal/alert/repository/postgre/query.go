package postgres

import (
	"fmt"

	"dropout-srv/internal/alert/repository"
	"dropout-srv/internal/model"
	postgresPkg "dropout-srv/pkg/postgre"
)

const alertColumns = "id, student_id, owner_id, risk_score, severity, message, factors, status, sla_deadline, " +
	"created_at, updated_at, acknowledged_at, resolved_at, last_escalated_at, response_notes, escalation_count"

const insertAlertQuery = "INSERT INTO alerts (" + alertColumns + ") " +
	"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)"

// updateTransitionQuery writes the fields a transition may change. Severity,
// message, factors and the deadline are fixed at creation.
const updateTransitionQuery = "UPDATE alerts SET owner_id = $2, status = $3, updated_at = $4, acknowledged_at = $5, " +
	"resolved_at = $6, last_escalated_at = $7, response_notes = $8, escalation_count = $9 WHERE id = $1"

const statsSelect = "SELECT COUNT(*) AS total_alerts, " +
	"COUNT(*) FILTER (WHERE status = 'active') AS active_alerts, " +
	"COUNT(*) FILTER (WHERE status = 'resolved') AS resolved_alerts, " +
	"COUNT(*) FILTER (WHERE status = 'escalated') AS escalated_alerts, " +
	"COALESCE(AVG(EXTRACT(EPOCH FROM (resolved_at - created_at)) / 3600.0) " +
	"FILTER (WHERE resolved_at IS NOT NULL), 0)::float8 AS avg_response_time_hours " +
	"FROM alerts"

func buildFilter(f repository.ListOptions) *postgresPkg.Where {
	w := &postgresPkg.Where{}
	if f.Filter.Status != "" {
		w.Eq("status", string(f.Filter.Status))
	}
	if f.Filter.Severity != "" {
		w.Eq("severity", string(f.Filter.Severity))
	}
	if f.Filter.StudentID != "" {
		w.Eq("student_id", f.Filter.StudentID)
	}
	if f.Filter.OwnerID != "" {
		w.Eq("owner_id", f.Filter.OwnerID)
	}
	return w
}

func buildListQuery(opts repository.ListOptions) (string, string, []interface{}) {
	w := buildFilter(opts)
	n := w.Next()

	count := "SELECT COUNT(*) AS count FROM alerts" + w.SQL()
	page := fmt.Sprintf("SELECT %s FROM alerts%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		alertColumns, w.SQL(), n, n+1)

	return count, page, w.Args()
}

func buildOverdueQuery(opts repository.ListOverdueOptions) (string, []interface{}) {
	w := &postgresPkg.Where{}
	w.In("status", []string{string(model.AlertStatusActive), string(model.AlertStatusEscalated)})
	w.Cond("sla_deadline <= ?", opts.Now)
	w.Cond("(last_escalated_at IS NULL OR last_escalated_at <= ?)", opts.EscalatedBefore)

	query := fmt.Sprintf("SELECT %s FROM alerts%s ORDER BY sla_deadline ASC, id ASC LIMIT $%d",
		alertColumns, w.SQL(), w.Next())

	return query, append(w.Args(), opts.Limit)
}

func buildStatsQuery(opts repository.StatsOptions) (string, []interface{}) {
	w := &postgresPkg.Where{}
	if opts.OwnerID != "" {
		w.Eq("owner_id", opts.OwnerID)
	}
	return statsSelect + w.SQL(), w.Args()
}
