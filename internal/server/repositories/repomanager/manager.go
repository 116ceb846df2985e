// Package repomanager bundles the per-collection repositories behind one
// interface so services can obtain repositories bound to either a plain DB
// handle or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/ysolovyov/knorozov/internal/dbx"
	"github.com/ysolovyov/knorozov/internal/server/repositories/languages"
	"github.com/ysolovyov/knorozov/internal/server/repositories/pages"
	"github.com/ysolovyov/knorozov/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Languages(db dbx.DBTX) languages.Repository
	Pages(db dbx.DBTX) pages.Repository
}
