package model

const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
	RoleAdmin   = "admin"
)

type Scope struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // student, mentor or admin
	JTI      string `json:"jti"`
}

// IsAdmin checks if the scope has admin role
func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// IsMentor checks if the scope has mentor role
func (s Scope) IsMentor() bool {
	return s.Role == RoleMentor
}

// CanActOn reports whether the caller may act on a record owned by ownerID.
func (s Scope) CanActOn(ownerID string) bool {
	if s.IsAdmin() {
		return true
	}
	return s.IsMentor() && ownerID != "" && ownerID == s.UserID
}
