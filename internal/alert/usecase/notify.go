package usecase

import (
	"context"
	"errors"
	"time"

	"dropout-srv/internal/model"
	"dropout-srv/internal/notification"
)

func (uc *implUseCase) notifyOwner(ctx context.Context, a model.Alert, s model.Student) {
	var kind notification.Kind
	switch a.Severity {
	case model.SeverityHigh:
		kind = notification.KindHighRisk
	case model.SeverityModerate:
		kind = notification.KindModerateRisk
	default:
		return
	}
	if a.OwnerID == "" {
		return
	}

	owner, err := uc.users.Detail(ctx, a.OwnerID)
	if err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.notifyOwner.users.Detail: %s: %v", a.OwnerID, err)
		uc.metrics.Notified(string(kind), "skipped")
		return
	}

	uc.dispatch(ctx, notification.Notification{
		Kind:       kind,
		Audience:   notification.AudienceOwner,
		Recipients: []notification.Recipient{{Name: owner.Name, Email: owner.Email}},
		Fields: notification.Fields{
			StudentName:   s.Name,
			ScholarID:     s.ScholarID,
			RiskScore:     a.RiskScore,
			Factors:       factorNames(a),
			OwnerName:     owner.Name,
			AlertID:       a.ID,
			ResponseHours: int(uc.opts.ResponseWindow / time.Hour),
		},
	})
}

func (uc *implUseCase) notifyEscalation(ctx context.Context, a model.Alert, admins []model.User, now time.Time) {
	s, err := uc.students.Detail(ctx, a.StudentID)
	if err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.notifyEscalation.students.Detail: %s: %v", a.StudentID, err)
		uc.metrics.Notified(string(notification.KindEscalation), "skipped")
		return
	}

	ownerName := notification.UnknownOwnerName
	if a.OwnerID != "" {
		if owner, err := uc.users.Detail(ctx, a.OwnerID); err == nil {
			ownerName = owner.Name
		} else {
			uc.l.Warnf(ctx, "internal.alert.usecase.notifyEscalation.users.Detail: %s: %v", a.OwnerID, err)
		}
	}

	recipients := make([]notification.Recipient, 0, len(admins))
	for _, u := range admins {
		recipients = append(recipients, notification.Recipient{Name: u.Name, Email: u.Email})
	}

	uc.dispatch(ctx, notification.Notification{
		Kind:       notification.KindEscalation,
		Audience:   notification.AudienceAdministrator,
		Recipients: recipients,
		Fields: notification.Fields{
			StudentName:  s.Name,
			ScholarID:    s.ScholarID,
			RiskScore:    a.RiskScore,
			OwnerName:    ownerName,
			HoursOverdue: hoursOverdue(a, now),
			AlertID:      a.ID,
		},
	})
}

// dispatch sends n and swallows the outcome. Notification failures never fail the caller.
func (uc *implUseCase) dispatch(ctx context.Context, n notification.Notification) {
	err := uc.notifier.Send(ctx, n)
	switch {
	case err == nil:
		uc.metrics.Notified(string(n.Kind), "sent")
	case errors.Is(err, notification.ErrSenderDisabled), errors.Is(err, notification.ErrNoRecipients):
		uc.l.Debugf(ctx, "internal.alert.usecase.dispatch: %s skipped: %v", n.Kind, err)
		uc.metrics.Notified(string(n.Kind), "skipped")
	default:
		uc.l.Warnf(ctx, "internal.alert.usecase.dispatch: %s: %v", n.Kind, err)
		uc.metrics.Notified(string(n.Kind), "failed")
	}
}

func (uc *implUseCase) activeAdmins(ctx context.Context) []model.User {
	admins, err := uc.users.ListActiveAdmins(ctx)
	if err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.activeAdmins: %v", err)
		return nil
	}
	return admins
}

func factorNames(a model.Alert) []string {
	names := make([]string, 0, len(a.Factors))
	for _, f := range a.Factors {
		names = append(names, f.Feature)
	}
	return names
}
