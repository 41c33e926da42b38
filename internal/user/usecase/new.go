package usecase

import (
	"dropout-srv/internal/user"
	"dropout-srv/internal/user/repository"
	pkgLog "dropout-srv/pkg/log"
)

type usecase struct {
	l    pkgLog.Logger
	repo repository.Repository
}

func New(l pkgLog.Logger, repo repository.Repository) user.UseCase {
	return &usecase{
		l:    l,
		repo: repo,
	}
}
