package languages

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
	mu        sync.RWMutex
	languages map[string]*models.Language // keyed by code
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{languages: make(map[string]*models.Language)}
}

func (r *InMemoryRepository) Create(ctx context.Context, language *models.Language) (*models.Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.languages[language.Code]; ok {
		return nil, common.ErrorAlreadyExists
	}

	stored := *language
	stored.ID = uuid.NewString()
	r.languages[language.Code] = &stored

	result := stored
	return &result, nil
}

func (r *InMemoryRepository) GetByCode(ctx context.Context, code string) (*models.Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	language, ok := r.languages[code]
	if !ok {
		return nil, common.ErrorNotFound
	}
	result := *language
	return &result, nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*models.Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Language, 0, len(r.languages))
	for _, l := range r.languages {
		c := *l
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })

	return result, nil
}

func (r *InMemoryRepository) UpdateName(ctx context.Context, code string, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	language, ok := r.languages[code]
	if !ok {
		return common.ErrorNotFound
	}
	language.Name = name
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.languages[code]; !ok {
		return common.ErrorNotFound
	}
	delete(r.languages, code)
	return nil
}
