package pages

import (
	"context"

	"github.com/ysolovyov/knorozov/internal/server/models"
)

// Repository stores translation pages. Entry-level mutations mirror the
// semantics of single-document array updates: they match the page by name
// and silently affect nothing when the page (or entry) is absent — existence
// checks belong to the service layer.
type Repository interface {
	Create(ctx context.Context, name string) (*models.Page, error)
	GetByName(ctx context.Context, name string) (*models.Page, error)
	// List returns all pages with their entries, ordered by name ascending.
	List(ctx context.Context) ([]*models.Page, error)
	Delete(ctx context.Context, name string) error

	// AddEntry appends an entry with an empty translation map. Adding to a
	// missing page, or re-adding an existing key, affects nothing.
	AddEntry(ctx context.Context, pageName string, key string) error
	// RemoveEntry removes the entry with the matching key, if any.
	RemoveEntry(ctx context.Context, pageName string, key string) error
	// SetTranslation sets translations[lang] = text on the matching entry in
	// a single atomic update: concurrent writers for different languages on
	// the same entry must not lose either write.
	SetTranslation(ctx context.Context, pageName string, key string, lang string, text string) error
}
