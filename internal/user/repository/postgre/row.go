package postgres

import (
	"time"

	"dropout-srv/internal/model"
)

type userRow struct {
	ID        string    `boil:"id"`
	Email     string    `boil:"email"`
	Name      string    `boil:"name"`
	Role      string    `boil:"role"`
	IsActive  bool      `boil:"is_active"`
	CreatedAt time.Time `boil:"created_at"`
	UpdatedAt time.Time `boil:"updated_at"`
}

func (u userRow) toModel() model.User {
	return model.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}
