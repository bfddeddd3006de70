package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rlfpro/rocket-fantasy/internal/domain/event"
	"github.com/rlfpro/rocket-fantasy/internal/domain/league"
	"github.com/rlfpro/rocket-fantasy/internal/domain/player"
	"github.com/rlfpro/rocket-fantasy/internal/domain/stats"
	"github.com/rlfpro/rocket-fantasy/internal/infrastructure/repository/memory"
	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type seqIDGenerator struct {
	prefix  string
	counter atomic.Int64
}

func (g *seqIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%03d", g.prefix, g.counter.Add(1)), nil
}

type testFixture struct {
	leagueRepo *memory.LeagueRepository
	eventRepo  *memory.EventRepository
	playerRepo *memory.PlayerRepository
	statsRepo  *memory.StatsRepository
	rosterRepo *memory.RosterRepository
	userRepo   *memory.UserRepository
}

// newTestFixture loads the seed data the memory-backed service boots with.
func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	ctx := context.Background()

	f := &testFixture{
		leagueRepo: memory.NewLeagueRepository(),
		eventRepo:  memory.NewEventRepository(),
		playerRepo: memory.NewPlayerRepository(),
		statsRepo:  memory.NewStatsRepository(),
		rosterRepo: memory.NewRosterRepository(),
		userRepo:   memory.NewUserRepository(),
	}

	for _, l := range memory.SeedLeagues() {
		if err := f.leagueRepo.Create(ctx, l); err != nil {
			t.Fatalf("seed league: %v", err)
		}
	}
	for _, e := range memory.SeedEvents() {
		if err := f.eventRepo.Create(ctx, e); err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}
	for _, p := range memory.SeedPlayers() {
		if err := f.playerRepo.Create(ctx, p); err != nil {
			t.Fatalf("seed player: %v", err)
		}
	}
	for _, line := range memory.SeedStats() {
		if err := f.statsRepo.Upsert(ctx, line); err != nil {
			t.Fatalf("seed stats: %v", err)
		}
	}

	return f
}

func (f *testFixture) addLeague(t *testing.T, l league.League) {
	t.Helper()
	if err := f.leagueRepo.Create(context.Background(), l); err != nil {
		t.Fatalf("add league: %v", err)
	}
}

func (f *testFixture) addMember(t *testing.T, leagueID, userID string) {
	t.Helper()
	m := league.Membership{LeagueID: leagueID, UserID: userID, JoinedAt: time.Now().UTC()}
	if err := f.leagueRepo.AddMember(context.Background(), m); err != nil {
		t.Fatalf("add member: %v", err)
	}
}

func (f *testFixture) addPlayer(t *testing.T, p player.Player) {
	t.Helper()
	if err := f.playerRepo.Create(context.Background(), p); err != nil {
		t.Fatalf("add player: %v", err)
	}
}

func (f *testFixture) addStats(t *testing.T, line stats.PlayerEventStats) {
	t.Helper()
	if err := f.statsRepo.Upsert(context.Background(), line); err != nil {
		t.Fatalf("add stats: %v", err)
	}
}

func (f *testFixture) addEvent(t *testing.T, e event.Event) {
	t.Helper()
	if err := f.eventRepo.Create(context.Background(), e); err != nil {
		t.Fatalf("add event: %v", err)
	}
}

func testLogger() *logging.Logger {
	return logging.NewNop()
}
