package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rlfpro/rocket-fantasy/internal/domain/league"
)

type LeagueRepository struct {
	mu      sync.RWMutex
	items   map[string]league.League
	members map[string]league.Membership
}

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{
		items:   make(map[string]league.League),
		members: make(map[string]league.Membership),
	}
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	return l, ok, nil
}

func (r *LeagueRepository) GetByName(_ context.Context, name string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.items {
		if l.Name == name {
			return l, true, nil
		}
	}
	return league.League{}, false, nil
}

func (r *LeagueRepository) GetGlobal(_ context.Context) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.items {
		if l.IsGlobal {
			return l, true, nil
		}
	}
	return league.League{}, false, nil
}

func (r *LeagueRepository) ListForUser(_ context.Context, userID string) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	memberships := make([]league.Membership, 0)
	for _, m := range r.members {
		if m.UserID == userID {
			memberships = append(memberships, m)
		}
	}
	sort.Slice(memberships, func(i, j int) bool {
		return memberships[i].JoinedAt.Before(memberships[j].JoinedAt)
	})

	out := make([]league.League, 0, len(memberships)+1)
	for _, l := range r.items {
		if l.IsGlobal {
			out = append(out, l)
			break
		}
	}
	for _, m := range memberships {
		l, ok := r.items[m.LeagueID]
		if !ok || l.IsGlobal {
			continue
		}
		out = append(out, l)
	}

	return out, nil
}

func (r *LeagueRepository) Create(_ context.Context, l league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[l.ID] = l
	return nil
}

func (r *LeagueRepository) Delete(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, leagueID)
	for key, m := range r.members {
		if m.LeagueID == leagueID {
			delete(r.members, key)
		}
	}
	return nil
}

func (r *LeagueRepository) AddMember(_ context.Context, m league.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := membershipKey(m.LeagueID, m.UserID)
	if _, exists := r.members[key]; exists {
		return nil
	}
	r.members[key] = m
	return nil
}

func (r *LeagueRepository) IsMember(_ context.Context, leagueID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.members[membershipKey(leagueID, userID)]
	return ok, nil
}

func membershipKey(leagueID, userID string) string {
	return leagueID + "::" + userID
}
