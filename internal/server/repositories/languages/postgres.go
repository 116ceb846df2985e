package languages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ysolovyov/knorozov/internal/common"
	"github.com/ysolovyov/knorozov/internal/dbx"
	"github.com/ysolovyov/knorozov/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, language *models.Language) (*models.Language, error) {
	query :=
		`INSERT INTO languages (code, name)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, language.Code, language.Name).Scan(&language.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return language, nil
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*models.Language, error) {
	query :=
		`SELECT id, code, name FROM languages
		 WHERE code = $1
		 `

	language := &models.Language{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(&language.ID, &language.Code, &language.Name)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return language, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Language, error) {
	query :=
		`SELECT id, code, name FROM languages
		 ORDER BY code, name
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Language{}
	for rows.Next() {
		language := &models.Language{}
		if err := rows.Scan(&language.ID, &language.Code, &language.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, language)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateName(ctx context.Context, code string, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE languages SET name = $2 WHERE code = $1`, code, name)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM languages WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
