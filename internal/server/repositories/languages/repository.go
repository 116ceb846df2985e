package languages

import (
	"context"

	"github.com/ysolovyov/knorozov/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, language *models.Language) (*models.Language, error)
	GetByCode(ctx context.Context, code string) (*models.Language, error)
	// List returns all languages ordered by code ascending.
	List(ctx context.Context) ([]*models.Language, error)
	UpdateName(ctx context.Context, code string, name string) error
	Delete(ctx context.Context, code string) error
}
