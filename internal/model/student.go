package model

import "time"

type Branch string

const (
	BranchCSE   Branch = "Computer Science Engineering"
	BranchECE   Branch = "Electronics and Communication Engineering"
	BranchEEE   Branch = "Electrical and Electronics Engineering"
	BranchMECH  Branch = "Mechanical Engineering"
	BranchCIVIL Branch = "Civil Engineering"
	BranchIT    Branch = "Information Technology"
	BranchOther Branch = "Other"
)

type Year string

const (
	Year1 Year = "1st Year"
	Year2 Year = "2nd Year"
	Year3 Year = "3rd Year"
	Year4 Year = "4th Year"
)

// Student is the subject being risk-scored.
type Student struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	ScholarID          string     `json:"scholar_id"`
	Email              string     `json:"email"`
	ParentEmail        string     `json:"parent_email,omitempty"`
	Branch             Branch     `json:"branch"`
	Year               Year       `json:"year"`
	MentorID           string     `json:"mentor_id,omitempty"`
	IsActive           bool       `json:"is_active"`
	CurrentRiskScore   float64    `json:"current_risk_score"`
	LastPredictionDate *time.Time `json:"last_prediction_date,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// HasMentor reports whether an owner is assigned.
func (s Student) HasMentor() bool {
	return s.MentorID != ""
}
