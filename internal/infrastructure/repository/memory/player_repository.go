package memory

import (
	"context"
	"sync"

	"github.com/rlfpro/rocket-fantasy/internal/domain/player"
)

type PlayerRepository struct {
	mu         sync.RWMutex
	items      map[string]player.Player
	byPlatform map[string]string
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		items:      make(map[string]player.Player),
		byPlatform: make(map[string]string),
	}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := r.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) GetByPlatformID(_ context.Context, platformID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPlatform[platformID]
	if !ok {
		return player.Player{}, false, nil
	}
	p, ok := r.items[id]
	return p, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[p.ID] = p
	r.byPlatform[p.PlatformID] = p.ID
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[p.ID] = p
	r.byPlatform[p.PlatformID] = p.ID
	return nil
}
