package user

import (
	"context"

	"dropout-srv/internal/model"
)

// UseCase is the identity directory: it resolves owners and administrators
// together with the addresses notifications go to.
//
//go:generate mockery --name UseCase
type UseCase interface {
	Detail(ctx context.Context, id string) (model.User, error)
	List(ctx context.Context, ip ListInput) ([]model.User, error)
	ListActiveAdmins(ctx context.Context) ([]model.User, error)
}
