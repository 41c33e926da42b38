package model

// Feature names produced by the performance aggregate and the subject attributes.
const (
	FeatureAttendance      = "attendance_percentage"
	FeatureAvgAssignment   = "avg_assignment_score"
	FeatureAvgSemester     = "avg_semester_marks"
	FeatureEngagement      = "engagement_score"
	FeatureLibraryHours    = "library_hours_per_week"
	FeatureExtracurricular = "extracurricular_participation"
	FeatureDisciplinary    = "disciplinary_issues"
	FeatureTrendImproving  = "trend_improving"
	FeatureTrendDeclining  = "trend_declining"
	FeatureHasMentor       = "has_mentor"
	FeatureBranchCSE       = "branch_cse"
	FeatureBranchECE       = "branch_ece"
	FeatureBranchEEE       = "branch_eee"
	FeatureBranchMECH      = "branch_mech"
	FeatureBranchCIVIL     = "branch_civil"
	FeatureBranchIT        = "branch_it"
	FeatureYear1           = "year_1"
	FeatureYear2           = "year_2"
	FeatureYear3           = "year_3"
	FeatureYear4           = "year_4"
)

// DefaultFeatureSchema is the feature order used when a model does not declare its own.
var DefaultFeatureSchema = []string{
	FeatureAttendance,
	FeatureAvgAssignment,
	FeatureAvgSemester,
	FeatureEngagement,
	FeatureLibraryHours,
	FeatureExtracurricular,
	FeatureDisciplinary,
	FeatureTrendImproving,
	FeatureTrendDeclining,
	FeatureHasMentor,
	FeatureBranchCSE,
	FeatureBranchECE,
	FeatureBranchEEE,
	FeatureBranchMECH,
	FeatureBranchCIVIL,
	FeatureBranchIT,
	FeatureYear1,
	FeatureYear2,
	FeatureYear3,
	FeatureYear4,
}

// BranchFeature maps a branch to its one-hot feature. Other has none.
var BranchFeature = map[Branch]string{
	BranchCSE:   FeatureBranchCSE,
	BranchECE:   FeatureBranchECE,
	BranchEEE:   FeatureBranchEEE,
	BranchMECH:  FeatureBranchMECH,
	BranchCIVIL: FeatureBranchCIVIL,
	BranchIT:    FeatureBranchIT,
}

// YearFeature maps a study year to its one-hot feature.
var YearFeature = map[Year]string{
	Year1: FeatureYear1,
	Year2: FeatureYear2,
	Year3: FeatureYear3,
	Year4: FeatureYear4,
}
