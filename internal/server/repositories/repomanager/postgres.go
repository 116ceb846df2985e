package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ysolovyov/knorozov/internal/dbx"
	"github.com/ysolovyov/knorozov/internal/server/migrations"
	"github.com/ysolovyov/knorozov/internal/server/repositories/languages"
	"github.com/ysolovyov/knorozov/internal/server/repositories/pages"
	"github.com/ysolovyov/knorozov/internal/server/repositories/users"
)

// PostgresRepositoryManager constructs Postgres repositories bound to the
// given handle, which may be a *sql.DB or an open transaction.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Languages(db dbx.DBTX) languages.Repository {
	return languages.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Pages(db dbx.DBTX) pages.Repository {
	return pages.NewPostgresRepository(db)
}
