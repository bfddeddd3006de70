package memory

import (
	"context"
	"sync"

	"github.com/rlfpro/rocket-fantasy/internal/domain/roster"
)

type RosterRepository struct {
	mu    sync.RWMutex
	items map[string]roster.Roster
	// order preserves insertion so leaderboard ties keep a stable order.
	order []string
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{items: make(map[string]roster.Roster)}
}

func (r *RosterRepository) GetByOwner(_ context.Context, userID, leagueID, eventID string) (roster.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[rosterKey(userID, leagueID, eventID)]
	if !ok {
		return roster.Roster{}, false, nil
	}

	return cloneRoster(item), true, nil
}

func (r *RosterRepository) ListByLeagueAndEvent(_ context.Context, leagueID, eventID string) ([]roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Roster, 0)
	for _, key := range r.order {
		item, ok := r.items[key]
		if !ok {
			continue
		}
		if item.LeagueID == leagueID && item.EventID == eventID {
			out = append(out, cloneRoster(item))
		}
	}

	return out, nil
}

func (r *RosterRepository) Upsert(_ context.Context, item roster.Roster) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := rosterKey(item.UserID, item.LeagueID, item.EventID)
	if _, exists := r.items[key]; !exists {
		r.order = append(r.order, key)
	}
	r.items[key] = cloneRoster(item)
	return nil
}

func (r *RosterRepository) DeleteByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.order[:0]
	for _, key := range r.order {
		item, ok := r.items[key]
		if ok && item.LeagueID == leagueID {
			delete(r.items, key)
			continue
		}
		kept = append(kept, key)
	}
	r.order = kept
	return nil
}

func rosterKey(userID, leagueID, eventID string) string {
	return userID + "::" + leagueID + "::" + eventID
}

func cloneRoster(r roster.Roster) roster.Roster {
	copied := r
	copied.Picks = append([]roster.Pick(nil), r.Picks...)
	return copied
}
