package users

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ysolovyov/knorozov/internal/common"
	"github.com/ysolovyov/knorozov/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used by tests and local
// development. It ignores any transactional handle.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User // keyed by login
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*models.User)}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Roles = append([]string(nil), u.Roles...)
	return &c
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Login]; ok {
		return nil, common.ErrorAlreadyExists
	}

	stored := cloneUser(user)
	stored.ID = uuid.NewString()
	r.users[user.Login] = stored

	return cloneUser(stored), nil
}

func (r *InMemoryRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(user), nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, cloneUser(u))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Login < result[j].Login })

	return result, nil
}

func (r *InMemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *InMemoryRepository) UpdatePassword(ctx context.Context, login string, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[login]
	if !ok {
		return common.ErrorNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *InMemoryRepository) UpdateRoles(ctx context.Context, login string, newRoles []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[login]
	if !ok {
		return common.ErrorNotFound
	}
	user.Roles = append([]string(nil), newRoles...)
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, login string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[login]; !ok {
		return common.ErrorNotFound
	}
	delete(r.users, login)
	return nil
}
