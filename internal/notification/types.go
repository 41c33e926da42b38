package notification

type Kind string

const (
	KindHighRisk     Kind = "high_risk"
	KindModerateRisk Kind = "moderate_risk"
	KindEscalation   Kind = "escalation"
)

type Audience string

const (
	AudienceOwner         Audience = "owner"
	AudienceAdministrator Audience = "administrator"
)

// Recipient is one addressee. Recipients without an e-mail address are skipped by mail senders.
type Recipient struct {
	Name  string
	Email string
}

// Fields are the structured values a template may render.
type Fields struct {
	StudentName  string
	ScholarID    string
	RiskScore    float64
	Factors      []string
	OwnerName    string
	HoursOverdue int
	AlertID      string

	// ResponseHours is the owner's response window quoted in owner mails.
	ResponseHours int
}

// Notification is a transient message, never stored.
type Notification struct {
	Kind       Kind
	Audience   Audience
	Recipients []Recipient
	Fields     Fields
}

// Rendered is a notification turned into a subject line and an HTML body.
type Rendered struct {
	Subject  string
	HTMLBody string
}
