package notification

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"dropout-srv/pkg/discord"
	pkgLog "dropout-srv/pkg/log"
)

const fieldValueLimit = 1024

type discordDispatcher struct {
	l pkgLog.Logger
	d discord.IDiscord
}

// NewDiscord posts escalations to the administrators' channel. Owner-facing kinds are ignored.
func NewDiscord(l pkgLog.Logger, d discord.IDiscord) Dispatcher {
	return &discordDispatcher{l: l, d: d}
}

func (d *discordDispatcher) Send(ctx context.Context, n Notification) error {
	if n.Kind != KindEscalation {
		return nil
	}

	owner := n.Fields.OwnerName
	if owner == "" {
		owner = UnknownOwnerName
	}

	fields := []discord.EmbedField{
		buildField("Student", fmt.Sprintf("%s (ID: %s)", n.Fields.StudentName, n.Fields.ScholarID), false),
		buildField("Assigned Mentor", owner, true),
		buildField("Hours Overdue", strconv.Itoa(n.Fields.HoursOverdue), true),
	}
	if n.Fields.AlertID != "" {
		fields = append(fields, buildField("Alert", n.Fields.AlertID, false))
	}
	if len(n.Recipients) > 0 {
		names := make([]string, 0, len(n.Recipients))
		for _, r := range n.Recipients {
			names = append(names, r.Name)
		}
		fields = append(fields, buildField("Notified", strings.Join(names, ", "), false))
	}

	return d.d.SendEmbed(ctx, discord.MessageOptions{
		Type:        discord.MessageTypeError,
		Color:       colorFor(n.Fields.HoursOverdue),
		Title:       Subject(n.Kind, n.Fields),
		Description: "Mentor response overdue. The alert has been escalated to administration.",
		Fields:      fields,
		Footer:      &discord.EmbedFooter{Text: discordFooter},
	})
}

// colorFor deepens the embed color the longer an alert stays unanswered.
func colorFor(hoursOverdue int) int {
	switch {
	case hoursOverdue >= 24:
		return 0x8B0000 // Dark red
	case hoursOverdue >= 1:
		return 0xE74C3C // Red
	default:
		return 0xFFA500 // Orange
	}
}

func buildField(name string, value string, inline bool) discord.EmbedField {
	if value == "" {
		value = "N/A"
	}
	if len(value) > fieldValueLimit {
		value = truncateText(value, fieldValueLimit)
	}
	return discord.EmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	}
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max < 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
