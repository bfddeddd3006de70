package memory

import (
	"context"
	"sync"

	"github.com/rlfpro/rocket-fantasy/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.Profile
}

func NewUserRepository() *UserRepository {
	return &UserRepository{items: make(map[string]user.Profile)}
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[userID]
	return p, ok, nil
}

func (r *UserRepository) GetByIDs(_ context.Context, userIDs []string) ([]user.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.Profile, 0, len(userIDs))
	for _, id := range userIDs {
		if p, ok := r.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *UserRepository) Upsert(_ context.Context, p user.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[p.ID] = p
	return nil
}
