package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/model"
	"dropout-srv/internal/student"
)

func (uc *implUseCase) CreateRiskAlert(ctx context.Context, ip alert.CreateRiskAlertInput) (model.Alert, error) {
	if err := validateCreate(ip); err != nil {
		return model.Alert{}, err
	}
	return uc.create(ctx, ip)
}

func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, ip alert.CreateRiskAlertInput) (model.Alert, error) {
	if !sc.IsAdmin() {
		return model.Alert{}, alert.ErrForbidden
	}
	if err := validateCreate(ip); err != nil {
		return model.Alert{}, err
	}
	return uc.create(ctx, ip)
}

func (uc *implUseCase) create(ctx context.Context, ip alert.CreateRiskAlertInput) (model.Alert, error) {
	s, err := uc.students.Detail(ctx, ip.StudentID)
	if err != nil {
		if errors.Is(err, student.ErrStudentNotFound) || errors.Is(err, student.ErrInvalidID) {
			return model.Alert{}, alert.ErrStudentNotFound
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.create.students.Detail: %v", err)
		return model.Alert{}, err
	}

	now := uc.now()
	a, err := uc.repo.Create(ctx, model.Alert{
		StudentID:   s.ID,
		OwnerID:     s.MentorID,
		RiskScore:   ip.Score,
		Severity:    severityFor(ip.Bucket),
		Message:     buildMessage(s.Name, ip.Bucket, ip.Score),
		Factors:     buildFactors(ip.TopFactors),
		Status:      model.AlertStatusActive,
		SLADeadline: now.Add(uc.opts.ResponseWindow),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.create.repo.Create: %v", err)
		return model.Alert{}, err
	}
	uc.metrics.AlertCreated(string(a.Severity))

	uc.notifyOwner(ctx, a, s)

	return a, nil
}

func validateCreate(ip alert.CreateRiskAlertInput) error {
	if strings.TrimSpace(ip.StudentID) == "" {
		return alert.ErrInvalidInput
	}
	if math.IsNaN(ip.Score) || ip.Score < 0 || ip.Score > 10 {
		return alert.ErrInvalidInput
	}
	return nil
}
