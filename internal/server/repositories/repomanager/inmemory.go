package repomanager

import (
	"context"
	"database/sql"

	"github.com/ysolovyov/knorozov/internal/dbx"
	"github.com/ysolovyov/knorozov/internal/server/repositories/languages"
	"github.com/ysolovyov/knorozov/internal/server/repositories/pages"
	"github.com/ysolovyov/knorozov/internal/server/repositories/users"
)

// InMemoryRepositoryManager holds stateful in-memory repositories and hands
// out the same instances regardless of the DB handle. Used by tests.
type InMemoryRepositoryManager struct {
	users     *users.InMemoryRepository
	languages *languages.InMemoryRepository
	pages     *pages.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:     users.NewInMemoryRepository(),
		languages: languages.NewInMemoryRepository(),
		pages:     pages.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Languages(db dbx.DBTX) languages.Repository {
	return m.languages
}

func (m *InMemoryRepositoryManager) Pages(db dbx.DBTX) pages.Repository {
	return m.pages
}
