package users

import (
	"context"

	"github.com/ysolovyov/knorozov/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, login string, passwordHash string) error
	UpdateRoles(ctx context.Context, login string, newRoles []string) error
	Delete(ctx context.Context, login string) error
}
