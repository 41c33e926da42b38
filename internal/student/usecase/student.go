package usecase

import (
	"context"
	"time"

	"dropout-srv/internal/model"
	"dropout-srv/internal/student"
	"dropout-srv/internal/student/repository"
)

func (uc *usecase) Detail(ctx context.Context, id string) (model.Student, error) {
	if id == "" {
		return model.Student{}, student.ErrInvalidID
	}

	s, err := uc.repo.Detail(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.Student{}, student.ErrStudentNotFound
		}
		uc.l.Errorf(ctx, "internal.student.usecase.Detail: %v", err)
		return model.Student{}, err
	}

	return s, nil
}

func (uc *usecase) ListByMentor(ctx context.Context, mentorID string) ([]model.Student, error) {
	if mentorID == "" {
		return nil, student.ErrInvalidID
	}

	active := true
	students, err := uc.repo.List(ctx, repository.ListOptions{
		Filter: repository.Filter{MentorID: mentorID, IsActive: &active},
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.student.usecase.ListByMentor: %v", err)
		return nil, err
	}

	return students, nil
}

func (uc *usecase) UpdateRiskScore(ctx context.Context, id string, score float64, at time.Time) (bool, error) {
	ok, err := uc.repo.UpdateRiskScore(ctx, repository.UpdateRiskScoreOptions{
		ID:    id,
		Score: score,
		At:    at.UTC(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.student.usecase.UpdateRiskScore: %v", err)
		return false, err
	}

	return ok, nil
}
