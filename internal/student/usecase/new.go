package usecase

import (
	"time"

	"dropout-srv/internal/student"
	"dropout-srv/internal/student/repository"
	pkgLog "dropout-srv/pkg/log"
)

type usecase struct {
	l     pkgLog.Logger
	repo  repository.Repository
	clock func() time.Time
}

func New(l pkgLog.Logger, repo repository.Repository) student.UseCase {
	return &usecase{
		l:     l,
		repo:  repo,
		clock: time.Now,
	}
}
