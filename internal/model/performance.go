package model

import "time"

// PerformanceRecord is one dated observation of a student's academic signals.
type PerformanceRecord struct {
	ID                           string             `json:"id"`
	StudentID                    string             `json:"student_id"`
	Date                         time.Time          `json:"date"`
	AttendancePercentage         float64            `json:"attendance_percentage"`
	AssignmentScores             map[string]float64 `json:"assignment_scores"`
	SemesterMarks                map[string]float64 `json:"semester_marks"`
	EngagementScore              float64            `json:"engagement_score"`
	LibraryHours                 float64            `json:"library_hours"`
	ExtracurricularParticipation float64            `json:"extracurricular_participation"`
	DisciplinaryIssues           int                `json:"disciplinary_issues"`
}

// FeatureMap holds named numeric features for one subject.
type FeatureMap map[string]float64
