package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ysolovyov/knorozov/internal/common"
	"github.com/ysolovyov/knorozov/internal/server/models"
	"github.com/ysolovyov/knorozov/internal/server/repositories/repomanager"
	"github.com/ysolovyov/knorozov/internal/server/roles"
)

// UndefinedTranslation is returned for a language that has no stored value
// for an entry. Clients depend on the literal string.
const UndefinedTranslation = "undefined"

// TranslationService implements CRUD over languages, translation pages and
// per-language entry values, applying the role policy before any mutation.
type TranslationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTranslationService(db *sql.DB, m repomanager.RepositoryManager) *TranslationService {
	return &TranslationService{db: db, repomanager: m}
}

// ListLanguages returns all languages sorted by code.
func (s *TranslationService) ListLanguages(ctx context.Context) ([]*models.Language, error) {
	return s.repomanager.Languages(s.db).List(ctx)
}

// GetLanguage returns the language with the given code.
func (s *TranslationService) GetLanguage(ctx context.Context, code string) (*models.Language, error) {
	return s.repomanager.Languages(s.db).GetByCode(ctx, code)
}

// CreateLanguage registers a new language; admin only.
func (s *TranslationService) CreateLanguage(ctx context.Context, actor *models.User, code string, name string) (*models.Language, error) {
	if !roles.CanManage(actor.Roles) {
		return nil, common.ErrorForbidden
	}

	repo := s.repomanager.Languages(s.db)

	if _, err := repo.GetByCode(ctx, code); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	return repo.Create(ctx, &models.Language{Code: code, Name: name})
}

// UpdateLanguage replaces a language's display name; admin only.
func (s *TranslationService) UpdateLanguage(ctx context.Context, actor *models.User, code string, name string) error {
	if !roles.CanManage(actor.Roles) {
		return common.ErrorForbidden
	}

	repo := s.repomanager.Languages(s.db)

	if _, err := repo.GetByCode(ctx, code); err != nil {
		return err
	}

	return repo.UpdateName(ctx, code, name)
}

// DeleteLanguage removes a language; admin only. References to the code from
// user roles and stored translations are left in place.
func (s *TranslationService) DeleteLanguage(ctx context.Context, actor *models.User, code string) error {
	if !roles.CanManage(actor.Roles) {
		return common.ErrorForbidden
	}

	repo := s.repomanager.Languages(s.db)

	if _, err := repo.GetByCode(ctx, code); err != nil {
		return err
	}

	return repo.Delete(ctx, code)
}

// ListPages returns all translation pages sorted by name.
func (s *TranslationService) ListPages(ctx context.Context) ([]*models.Page, error) {
	return s.repomanager.Pages(s.db).List(ctx)
}

// GetPage returns the page with the given name, entries included.
func (s *TranslationService) GetPage(ctx context.Context, name string) (*models.Page, error) {
	return s.repomanager.Pages(s.db).GetByName(ctx, name)
}

// CreatePage creates an empty translation page; admin only.
func (s *TranslationService) CreatePage(ctx context.Context, actor *models.User, name string) (*models.Page, error) {
	if !roles.CanManage(actor.Roles) {
		return nil, common.ErrorForbidden
	}

	repo := s.repomanager.Pages(s.db)

	if _, err := repo.GetByName(ctx, name); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	return repo.Create(ctx, name)
}

// DeletePage removes a page with all its entries; admin only.
func (s *TranslationService) DeletePage(ctx context.Context, actor *models.User, name string) error {
	if !roles.CanManage(actor.Roles) {
		return common.ErrorForbidden
	}

	repo := s.repomanager.Pages(s.db)

	if _, err := repo.GetByName(ctx, name); err != nil {
		return err
	}

	return repo.Delete(ctx, name)
}

// CreateEntry appends a new entry with an empty translation map; admin only.
// A missing page is treated as having no entries: the duplicate check passes
// and the append silently matches nothing.
func (s *TranslationService) CreateEntry(ctx context.Context, actor *models.User, pageName string, key string) error {
	if !roles.CanManage(actor.Roles) {
		return common.ErrorForbidden
	}

	repo := s.repomanager.Pages(s.db)

	page, err := repo.GetByName(ctx, pageName)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	if page != nil && page.Entry(key) != nil {
		return common.ErrorAlreadyExists
	}

	return repo.AddEntry(ctx, pageName, key)
}

// DeleteEntry removes the entry with the matching key; admin only.
func (s *TranslationService) DeleteEntry(ctx context.Context, actor *models.User, pageName string, key string) error {
	if !roles.CanManage(actor.Roles) {
		return common.ErrorForbidden
	}

	repo := s.repomanager.Pages(s.db)

	page, err := repo.GetByName(ctx, pageName)
	if err != nil {
		return err
	}
	if page.Entry(key) == nil {
		return common.ErrorNotFound
	}

	return repo.RemoveEntry(ctx, pageName, key)
}

// GetTranslation returns the stored text for (page, key, lang), or the
// "undefined" sentinel when the language has no value yet. No auth required.
func (s *TranslationService) GetTranslation(ctx context.Context, pageName string, key string, lang string) (string, error) {
	page, err := s.repomanager.Pages(s.db).GetByName(ctx, pageName)
	if err != nil {
		return "", err
	}

	entry := page.Entry(key)
	if entry == nil {
		return "", common.ErrorNotFound
	}

	text, ok := entry.Translations[lang]
	if !ok {
		return UndefinedTranslation, nil
	}
	return text, nil
}

// SetTranslation stores the text for (page, key, lang). The acting user must
// hold the language's role or be admin. The store-level update is a single
// atomic statement, so concurrent writers for different languages on the
// same entry cannot lose each other's writes.
func (s *TranslationService) SetTranslation(ctx context.Context, actor *models.User, pageName string, key string, lang string, text string) error {
	if !roles.CanEditLanguage(actor.Roles, lang) {
		return common.ErrorForbidden
	}

	repo := s.repomanager.Pages(s.db)

	page, err := repo.GetByName(ctx, pageName)
	if err != nil {
		return err
	}
	if page.Entry(key) == nil {
		return common.ErrorNotFound
	}

	return repo.SetTranslation(ctx, pageName, key, lang, text)
}
