package pages

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ysolovyov/knorozov/internal/common"
	"github.com/ysolovyov/knorozov/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used by tests and local
// development.
type InMemoryRepository struct {
	mu    sync.RWMutex
	pages map[string]*models.Page // keyed by name
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{pages: make(map[string]*models.Page)}
}

func clonePage(p *models.Page) *models.Page {
	c := &models.Page{ID: p.ID, Name: p.Name, Entries: make([]models.TranslationEntry, 0, len(p.Entries))}
	for _, e := range p.Entries {
		translations := make(map[string]string, len(e.Translations))
		for k, v := range e.Translations {
			translations[k] = v
		}
		c.Entries = append(c.Entries, models.TranslationEntry{Key: e.Key, Translations: translations})
	}
	return c
}

func (r *InMemoryRepository) Create(ctx context.Context, name string) (*models.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pages[name]; ok {
		return nil, common.ErrorAlreadyExists
	}

	page := &models.Page{ID: uuid.NewString(), Name: name, Entries: []models.TranslationEntry{}}
	r.pages[name] = page

	return clonePage(page), nil
}

func (r *InMemoryRepository) GetByName(ctx context.Context, name string) (*models.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, ok := r.pages[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clonePage(page), nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*models.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Page, 0, len(r.pages))
	for _, p := range r.pages {
		result = append(result, clonePage(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pages[name]; !ok {
		return common.ErrorNotFound
	}
	delete(r.pages, name)
	return nil
}

func (r *InMemoryRepository) AddEntry(ctx context.Context, pageName string, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	page, ok := r.pages[pageName]
	if !ok {
		// matches nothing, affects nothing
		return nil
	}

	if page.Entry(key) != nil {
		return nil
	}

	page.Entries = append(page.Entries, models.TranslationEntry{
		Key:          key,
		Translations: map[string]string{},
	})
	return nil
}

func (r *InMemoryRepository) RemoveEntry(ctx context.Context, pageName string, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	page, ok := r.pages[pageName]
	if !ok {
		return nil
	}

	for i := range page.Entries {
		if page.Entries[i].Key == key {
			page.Entries = append(page.Entries[:i], page.Entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *InMemoryRepository) SetTranslation(ctx context.Context, pageName string, key string, lang string, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	page, ok := r.pages[pageName]
	if !ok {
		return nil
	}

	entry := page.Entry(key)
	if entry == nil {
		return nil
	}
	entry.Translations[lang] = text
	return nil
}
