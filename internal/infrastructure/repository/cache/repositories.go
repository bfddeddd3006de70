package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/rlfpro/rocket-fantasy/internal/domain/event"
	"github.com/rlfpro/rocket-fantasy/internal/domain/league"
	"github.com/rlfpro/rocket-fantasy/internal/domain/player"
	"github.com/rlfpro/rocket-fantasy/internal/domain/stats"
	basecache "github.com/rlfpro/rocket-fantasy/internal/platform/cache"
)

// EventRepository caches the event list and lookups. Events are append-only
// so Create only needs to drop the list key.
type EventRepository struct {
	next  event.Repository
	cache *basecache.Store
}

func NewEventRepository(next event.Repository, cache *basecache.Store) *EventRepository {
	return &EventRepository{next: next, cache: cache}
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	v, err := r.cache.GetOrLoad(ctx, "event:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]event.Event(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]event.Event)
	return append([]event.Event(nil), items...), nil
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (event.Event, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "event:id:"+eventID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return cachedEvent{value: item, exists: exists}, nil
	})
	if err != nil {
		return event.Event{}, false, err
	}

	cached, _ := v.(cachedEvent)
	return cached.value, cached.exists, nil
}

func (r *EventRepository) GetByBallchasingGroupID(ctx context.Context, groupID string) (event.Event, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "event:group:"+groupID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByBallchasingGroupID(ctx, groupID)
		if err != nil {
			return nil, err
		}
		return cachedEvent{value: item, exists: exists}, nil
	})
	if err != nil {
		return event.Event{}, false, err
	}

	cached, _ := v.(cachedEvent)
	return cached.value, cached.exists, nil
}

func (r *EventRepository) Create(ctx context.Context, e event.Event) error {
	if err := r.next.Create(ctx, e); err != nil {
		return err
	}
	r.cache.Delete(ctx, "event:list")
	r.cache.Delete(ctx, "event:group:"+e.BallchasingGroupID)
	return nil
}

type cachedEvent struct {
	value  event.Event
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:id:"+playerID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayer{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayer)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	key := "player:ids:" + strings.Join(ids, ",")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByPlatformID(ctx context.Context, platformID string) (player.Player, bool, error) {
	// Import paths read-modify-write on platform id; caching here would
	// serve stale prices mid-import.
	return r.next.GetByPlatformID(ctx, platformID)
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	if err := r.next.Create(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx, p.ID)
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	if err := r.next.Update(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx, p.ID)
	return nil
}

func (r *PlayerRepository) invalidate(ctx context.Context, playerID string) {
	r.cache.Delete(ctx, "player:id:"+playerID)
	r.cache.DeletePrefix(ctx, "player:ids:")
}

type cachedPlayer struct {
	value  player.Player
	exists bool
}

type StatsRepository struct {
	next  stats.Repository
	cache *basecache.Store
}

func NewStatsRepository(next stats.Repository, cache *basecache.Store) *StatsRepository {
	return &StatsRepository{next: next, cache: cache}
}

func (r *StatsRepository) ListByEvent(ctx context.Context, eventID string) ([]stats.PlayerEventStats, error) {
	v, err := r.cache.GetOrLoad(ctx, "stats:event:"+eventID, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return append([]stats.PlayerEventStats(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]stats.PlayerEventStats)
	return append([]stats.PlayerEventStats(nil), items...), nil
}

func (r *StatsRepository) GetByPlayerAndEvent(ctx context.Context, playerID, eventID string) (stats.PlayerEventStats, bool, error) {
	key := "stats:line:" + playerID + ":" + eventID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByPlayerAndEvent(ctx, playerID, eventID)
		if err != nil {
			return nil, err
		}
		return cachedStatLine{value: item, exists: exists}, nil
	})
	if err != nil {
		return stats.PlayerEventStats{}, false, err
	}

	cached, _ := v.(cachedStatLine)
	return cached.value, cached.exists, nil
}

func (r *StatsRepository) Upsert(ctx context.Context, line stats.PlayerEventStats) error {
	if err := r.next.Upsert(ctx, line); err != nil {
		return err
	}
	r.cache.Delete(ctx, "stats:event:"+line.EventID)
	r.cache.Delete(ctx, "stats:line:"+line.PlayerID+":"+line.EventID)
	return nil
}

type cachedStatLine struct {
	value  stats.PlayerEventStats
	exists bool
}

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "league:id:"+leagueID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeague)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) GetByName(ctx context.Context, name string) (league.League, bool, error) {
	return r.next.GetByName(ctx, name)
}

func (r *LeagueRepository) GetGlobal(ctx context.Context) (league.League, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "league:global", func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetGlobal(ctx)
		if err != nil {
			return nil, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeague)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) ListForUser(ctx context.Context, userID string) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, "league:user:"+userID, func(ctx context.Context) (any, error) {
		items, err := r.next.ListForUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) error {
	if err := r.next.Create(ctx, l); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "league:")
	return nil
}

func (r *LeagueRepository) Delete(ctx context.Context, leagueID string) error {
	if err := r.next.Delete(ctx, leagueID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "league:")
	return nil
}

func (r *LeagueRepository) AddMember(ctx context.Context, m league.Membership) error {
	if err := r.next.AddMember(ctx, m); err != nil {
		return err
	}
	r.cache.Delete(ctx, "league:user:"+m.UserID)
	r.cache.Delete(ctx, "league:member:"+m.LeagueID+":"+m.UserID)
	return nil
}

func (r *LeagueRepository) IsMember(ctx context.Context, leagueID, userID string) (bool, error) {
	key := "league:member:" + leagueID + ":" + userID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return r.next.IsMember(ctx, leagueID, userID)
	})
	if err != nil {
		return false, err
	}

	isMember, _ := v.(bool)
	return isMember, nil
}

type cachedLeague struct {
	value  league.League
	exists bool
}
