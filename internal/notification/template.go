package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFiles = map[Kind]string{
	KindHighRisk:     "templates/high_risk.html",
	KindModerateRisk: "templates/moderate_risk.html",
	KindEscalation:   "templates/escalation.html",
}

// Renderer turns notifications into subject lines and HTML bodies.
type Renderer struct {
	templates map[Kind]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[Kind]*template.Template, len(templateFiles))}
	for kind, file := range templateFiles {
		t, err := template.ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", kind, err)
		}
		r.templates[kind] = t
	}
	return r, nil
}

func (r *Renderer) Render(n Notification) (Rendered, error) {
	t, ok := r.templates[n.Kind]
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %q", ErrUnknownKind, n.Kind)
	}

	fields := n.Fields
	if fields.ResponseHours <= 0 {
		fields.ResponseHours = DefaultResponseHours
	}
	if fields.OwnerName == "" {
		fields.OwnerName = UnknownOwnerName
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, fields); err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", n.Kind, err)
	}

	return Rendered{Subject: Subject(n.Kind, fields), HTMLBody: buf.String()}, nil
}

// Subject builds the subject line for kind.
func Subject(kind Kind, f Fields) string {
	switch kind {
	case KindHighRisk:
		return fmt.Sprintf("🚨 HIGH RISK ALERT: %s (ID: %s)", f.StudentName, f.ScholarID)
	case KindModerateRisk:
		return fmt.Sprintf("⚠️ Moderate Risk Alert: %s (ID: %s)", f.StudentName, f.ScholarID)
	case KindEscalation:
		return fmt.Sprintf("🔴 ESCALATION: Mentor SLA Breach - %s", f.StudentName)
	default:
		return string(kind)
	}
}
