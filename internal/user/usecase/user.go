package usecase

import (
	"context"

	"dropout-srv/internal/model"
	"dropout-srv/internal/user"
	"dropout-srv/internal/user/repository"
)

func (uc *usecase) Detail(ctx context.Context, id string) (model.User, error) {
	usr, err := uc.repo.Detail(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.User{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.user.usecase.Detail: %v", err)
		return model.User{}, err
	}

	return usr, nil
}

func (uc *usecase) List(ctx context.Context, ip user.ListInput) ([]model.User, error) {
	switch ip.Filter.Role {
	case "", model.RoleStudent, model.RoleMentor, model.RoleAdmin:
	default:
		return nil, user.ErrInvalidRole
	}

	usrs, err := uc.repo.List(ctx, repository.ListOptions{
		Filter: repository.Filter{
			IDs:      ip.Filter.IDs,
			Role:     ip.Filter.Role,
			IsActive: ip.Filter.IsActive,
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.user.usecase.List: %v", err)
		return nil, err
	}

	return usrs, nil
}

func (uc *usecase) ListActiveAdmins(ctx context.Context) ([]model.User, error) {
	active := true
	return uc.List(ctx, user.ListInput{Filter: user.Filter{Role: model.RoleAdmin, IsActive: &active}})
}
