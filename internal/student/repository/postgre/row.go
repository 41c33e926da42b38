package postgres

import (
	"time"

	"dropout-srv/internal/model"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/types"
)

type studentRow struct {
	ID                 string       `boil:"id"`
	Name               string       `boil:"name"`
	ScholarID          string       `boil:"scholar_id"`
	Email              string       `boil:"email"`
	ParentEmail        null.String  `boil:"parent_email"`
	Branch             string       `boil:"branch"`
	Year               string       `boil:"year"`
	MentorID           null.String  `boil:"mentor_id"`
	IsActive           bool         `boil:"is_active"`
	CurrentRiskScore   null.Float64 `boil:"current_risk_score"`
	LastPredictionDate null.Time    `boil:"last_prediction_date"`
	CreatedAt          time.Time    `boil:"created_at"`
	UpdatedAt          time.Time    `boil:"updated_at"`
}

func (s studentRow) toModel() model.Student {
	out := model.Student{
		ID:               s.ID,
		Name:             s.Name,
		ScholarID:        s.ScholarID,
		Email:            s.Email,
		ParentEmail:      s.ParentEmail.String,
		Branch:           model.Branch(s.Branch),
		Year:             model.Year(s.Year),
		MentorID:         s.MentorID.String,
		IsActive:         s.IsActive,
		CurrentRiskScore: s.CurrentRiskScore.Float64,
		CreatedAt:        s.CreatedAt.UTC(),
		UpdatedAt:        s.UpdatedAt.UTC(),
	}
	if s.LastPredictionDate.Valid {
		t := s.LastPredictionDate.Time.UTC()
		out.LastPredictionDate = &t
	}
	return out
}

type performanceRow struct {
	ID                           string       `boil:"id"`
	StudentID                    string       `boil:"student_id"`
	Date                         time.Time    `boil:"date"`
	AttendancePercentage         float64      `boil:"attendance_percentage"`
	AssignmentScores             types.JSON   `boil:"assignment_scores"`
	SemesterMarks                types.JSON   `boil:"semester_marks"`
	EngagementScore              float64      `boil:"engagement_score"`
	LibraryHours                 null.Float64 `boil:"library_hours"`
	ExtracurricularParticipation null.Float64 `boil:"extracurricular_participation"`
	DisciplinaryIssues           null.Int     `boil:"disciplinary_issues"`
}

func (p performanceRow) toModel() (model.PerformanceRecord, error) {
	out := model.PerformanceRecord{
		ID:                           p.ID,
		StudentID:                    p.StudentID,
		Date:                         p.Date.UTC(),
		AttendancePercentage:         p.AttendancePercentage,
		EngagementScore:              p.EngagementScore,
		LibraryHours:                 p.LibraryHours.Float64,
		ExtracurricularParticipation: p.ExtracurricularParticipation.Float64,
		DisciplinaryIssues:           p.DisciplinaryIssues.Int,
	}

	var err error
	if out.AssignmentScores, err = decodeScores(p.AssignmentScores); err != nil {
		return model.PerformanceRecord{}, err
	}
	if out.SemesterMarks, err = decodeScores(p.SemesterMarks); err != nil {
		return model.PerformanceRecord{}, err
	}
	return out, nil
}

func decodeScores(raw types.JSON) (map[string]float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[string]float64{}, nil
	}
	scores := map[string]float64{}
	if err := raw.Unmarshal(&scores); err != nil {
		return nil, err
	}
	return scores, nil
}
