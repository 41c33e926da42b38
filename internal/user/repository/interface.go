package repository

import (
	"context"

	"dropout-srv/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	Detail(ctx context.Context, id string) (model.User, error)
	List(ctx context.Context, opts ListOptions) ([]model.User, error)
}
