package postgres

import (
	"dropout-srv/internal/student/repository"
	postgresPkg "dropout-srv/pkg/postgre"
)

const (
	studentColumns = "id, name, scholar_id, email, parent_email, branch, year, mentor_id, is_active, " +
		"current_risk_score, last_prediction_date, created_at, updated_at"
	performanceColumns = "id, student_id, date, attendance_percentage, assignment_scores, semester_marks, " +
		"engagement_score, library_hours, extracurricular_participation, disciplinary_issues"
)

func buildListQuery(opts repository.ListOptions) (string, []interface{}) {
	w := &postgresPkg.Where{}
	if opts.Filter.MentorID != "" {
		w.Eq("mentor_id", opts.Filter.MentorID)
	}
	if opts.Filter.IsActive != nil {
		w.Eq("is_active", *opts.Filter.IsActive)
	}

	return "SELECT " + studentColumns + " FROM students" + w.SQL() + " ORDER BY name ASC", w.Args()
}

func buildPerformanceQuery(opts repository.ListPerformanceOptions) (string, []interface{}) {
	w := &postgresPkg.Where{}
	w.Eq("student_id", opts.StudentID)
	w.Cond("date >= ?", opts.Since)

	return "SELECT " + performanceColumns + " FROM performance_records" + w.SQL() + " ORDER BY date DESC", w.Args()
}
