package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rlfpro/rocket-fantasy/internal/domain/roster"
	"github.com/rlfpro/rocket-fantasy/internal/infrastructure/repository/memory"
)

func newLeagueService(t *testing.T, f *testFixture) *LeagueService {
	t.Helper()
	return NewLeagueService(f.leagueRepo, f.rosterRepo, &seqIDGenerator{prefix: "league"}, testLogger())
}

func TestLeagueServiceCreateLeague(t *testing.T) {
	f := newTestFixture(t)
	svc := newLeagueService(t, f)

	now := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	created, err := svc.CreateLeague(t.Context(), CreateLeagueInput{
		UserID:   "user-1",
		Name:     "  Office League  ",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("create league failed: %v", err)
	}

	if created.ID != "league-001" {
		t.Fatalf("unexpected league id: %s", created.ID)
	}
	if created.Name != "Office League" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.CreatorID != "user-1" {
		t.Fatalf("unexpected creator: %s", created.CreatorID)
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("unexpected created at: %v", created.CreatedAt)
	}

	member, err := f.leagueRepo.IsMember(t.Context(), created.ID, "user-1")
	if err != nil {
		t.Fatalf("is member: %v", err)
	}
	if !member {
		t.Fatal("creator should be a member of the new league")
	}

	_, err = svc.CreateLeague(t.Context(), CreateLeagueInput{
		UserID: "user-2",
		Name:   "Office League",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected duplicate name to be rejected, got %v", err)
	}
}

func TestLeagueServiceJoinLeague(t *testing.T) {
	f := newTestFixture(t)
	svc := newLeagueService(t, f)

	created, err := svc.CreateLeague(t.Context(), CreateLeagueInput{
		UserID:   "owner-1",
		Name:     "Locked League",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("create league failed: %v", err)
	}

	tests := []struct {
		name      string
		input     JoinLeagueInput
		targetErr error
	}{
		{
			name:  "correct password",
			input: JoinLeagueInput{UserID: "user-1", Name: "Locked League", Password: "secret"},
		},
		{
			name:      "wrong password",
			input:     JoinLeagueInput{UserID: "user-2", Name: "Locked League", Password: "nope"},
			targetErr: ErrUnauthorized,
		},
		{
			name:      "unknown league",
			input:     JoinLeagueInput{UserID: "user-2", Name: "Ghost League", Password: ""},
			targetErr: ErrNotFound,
		},
		{
			name:      "missing user",
			input:     JoinLeagueInput{Name: "Locked League", Password: "secret"},
			targetErr: ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.JoinLeague(t.Context(), tc.input)
			if tc.targetErr != nil {
				if !errors.Is(err, tc.targetErr) {
					t.Fatalf("expected %v, got %v", tc.targetErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("join failed: %v", err)
			}
			if got.ID != created.ID {
				t.Fatalf("unexpected league id: %s", got.ID)
			}
		})
	}

	// Joining again is idempotent.
	if _, err := svc.JoinLeague(t.Context(), JoinLeagueInput{
		UserID:   "user-1",
		Name:     "Locked League",
		Password: "secret",
	}); err != nil {
		t.Fatalf("repeat join failed: %v", err)
	}
}

func TestLeagueServiceListLeagues(t *testing.T) {
	f := newTestFixture(t)
	svc := newLeagueService(t, f)

	if _, err := svc.CreateLeague(t.Context(), CreateLeagueInput{
		UserID: "user-1",
		Name:   "Mine",
	}); err != nil {
		t.Fatalf("create league failed: %v", err)
	}

	leagues, err := svc.ListLeagues(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("list leagues failed: %v", err)
	}
	if len(leagues) != 2 {
		t.Fatalf("expected global plus owned league, got %d", len(leagues))
	}
	if !leagues[0].IsGlobal {
		t.Fatalf("expected the global league first, got %s", leagues[0].ID)
	}

	onlyGlobal, err := svc.ListLeagues(t.Context(), "user-2")
	if err != nil {
		t.Fatalf("list leagues failed: %v", err)
	}
	if len(onlyGlobal) != 1 || !onlyGlobal[0].IsGlobal {
		t.Fatalf("expected only the global league, got %+v", onlyGlobal)
	}
}

func TestLeagueServiceDeleteLeague(t *testing.T) {
	f := newTestFixture(t)
	svc := newLeagueService(t, f)

	created, err := svc.CreateLeague(t.Context(), CreateLeagueInput{
		UserID: "owner-1",
		Name:   "Doomed League",
	})
	if err != nil {
		t.Fatalf("create league failed: %v", err)
	}

	orphan := roster.Roster{
		ID:       "r1",
		UserID:   "owner-1",
		LeagueID: created.ID,
		EventID:  memory.EventIDMajor1,
	}
	if err := f.rosterRepo.Upsert(context.Background(), orphan); err != nil {
		t.Fatalf("seed roster: %v", err)
	}

	if err := svc.DeleteLeague(t.Context(), "user-2", created.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected non-creator delete to be unauthorized, got %v", err)
	}
	if err := svc.DeleteLeague(t.Context(), "owner-1", memory.GlobalLeagueID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected global league delete to be rejected, got %v", err)
	}
	if err := svc.DeleteLeague(t.Context(), "owner-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected missing league delete to 404, got %v", err)
	}

	if err := svc.DeleteLeague(t.Context(), "owner-1", created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, exists, err := f.leagueRepo.GetByID(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	if exists {
		t.Fatal("league should be gone")
	}

	_, exists, err = f.rosterRepo.GetByOwner(t.Context(), "owner-1", created.ID, memory.EventIDMajor1)
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if exists {
		t.Fatal("league rosters should be deleted with the league")
	}
}
