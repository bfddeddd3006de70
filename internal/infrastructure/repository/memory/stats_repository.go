package memory

import (
	"context"
	"sync"

	"github.com/rlfpro/rocket-fantasy/internal/domain/stats"
)

type StatsRepository struct {
	mu    sync.RWMutex
	items map[string]stats.PlayerEventStats
	order []string
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{items: make(map[string]stats.PlayerEventStats)}
}

func (r *StatsRepository) ListByEvent(_ context.Context, eventID string) ([]stats.PlayerEventStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.PlayerEventStats, 0)
	for _, key := range r.order {
		item, ok := r.items[key]
		if ok && item.EventID == eventID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *StatsRepository) GetByPlayerAndEvent(_ context.Context, playerID, eventID string) (stats.PlayerEventStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[statsKey(playerID, eventID)]
	return item, ok, nil
}

func (r *StatsRepository) Upsert(_ context.Context, line stats.PlayerEventStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := statsKey(line.PlayerID, line.EventID)
	if _, exists := r.items[key]; !exists {
		r.order = append(r.order, key)
	}
	r.items[key] = line
	return nil
}

func statsKey(playerID, eventID string) string {
	return playerID + "::" + eventID
}
