package pages

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ysolovyov/knorozov/internal/common"
	"github.com/ysolovyov/knorozov/internal/dbx"
	"github.com/ysolovyov/knorozov/internal/server/models"
)

// PostgresRepository stores each page as a row in pages plus its entries in
// page_entries. Entry order is insertion order (id ascending); translations
// live in a jsonb column so a single UPDATE merges one language atomically.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, name string) (*models.Page, error) {
	page := &models.Page{Name: name, Entries: []models.TranslationEntry{}}

	query :=
		`INSERT INTO pages (name)
		 VALUES ($1)
		 RETURNING id
		 `

	if err := r.db.QueryRowContext(ctx, query, name).Scan(&page.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return page, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Page, error) {
	page := &models.Page{Entries: []models.TranslationEntry{}}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM pages WHERE name = $1`, name).Scan(&page.ID, &page.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	entries, err := r.loadEntries(ctx, page.ID)
	if err != nil {
		return nil, err
	}
	page.Entries = entries

	return page, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Page, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM pages ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Page{}
	for rows.Next() {
		page := &models.Page{Entries: []models.TranslationEntry{}}
		if err := rows.Scan(&page.ID, &page.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for _, page := range result {
		entries, err := r.loadEntries(ctx, page.ID)
		if err != nil {
			return nil, err
		}
		page.Entries = entries
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, name string) error {
	// page_entries go with the page via ON DELETE CASCADE
	res, err := r.db.ExecContext(ctx, `DELETE FROM pages WHERE name = $1`, name)
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

func (r *PostgresRepository) AddEntry(ctx context.Context, pageName string, key string) error {
	query :=
		`INSERT INTO page_entries (page_id, key)
		 SELECT id, $2 FROM pages WHERE name = $1
		 ON CONFLICT (page_id, key) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, pageName, key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) RemoveEntry(ctx context.Context, pageName string, key string) error {
	query :=
		`DELETE FROM page_entries pe
		 USING pages p
		 WHERE pe.page_id = p.id AND p.name = $1 AND pe.key = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, pageName, key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) SetTranslation(ctx context.Context, pageName string, key string, lang string, text string) error {
	query :=
		`UPDATE page_entries pe
		 SET translations = pe.translations || jsonb_build_object($3::text, $4::text)
		 FROM pages p
		 WHERE pe.page_id = p.id AND p.name = $1 AND pe.key = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, pageName, key, lang, text); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) loadEntries(ctx context.Context, pageID string) ([]models.TranslationEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, translations FROM page_entries WHERE page_id = $1 ORDER BY id`, pageID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	entries := []models.TranslationEntry{}
	for rows.Next() {
		entry := models.TranslationEntry{}
		var translationsJSON []byte
		if err := rows.Scan(&entry.Key, &translationsJSON); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(translationsJSON, &entry.Translations); err != nil {
			return nil, fmt.Errorf("translations unmarshal error: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}
