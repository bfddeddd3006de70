package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rlfpro/rocket-fantasy/internal/domain/league"
	"github.com/rlfpro/rocket-fantasy/internal/domain/roster"
	"github.com/rlfpro/rocket-fantasy/internal/infrastructure/repository/memory"
)

func newRosterService(t *testing.T, f *testFixture) (*RosterService, *Autosaver) {
	t.Helper()

	saver := NewAutosaver(f.rosterRepo, time.Hour, nil, testLogger())
	svc := NewRosterService(
		f.leagueRepo,
		f.eventRepo,
		f.playerRepo,
		f.statsRepo,
		f.rosterRepo,
		saver,
		roster.DefaultRules(),
		&seqIDGenerator{prefix: "roster"},
		testLogger(),
	)
	return svc, saver
}

func globalRef(userID string) RosterRef {
	return RosterRef{UserID: userID, LeagueID: memory.GlobalLeagueID, EventID: memory.EventIDMajor1}
}

func TestRosterServiceAddPickSnapshotsPlayer(t *testing.T) {
	f := newTestFixture(t)
	svc, _ := newRosterService(t, f)

	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	got, err := svc.AddPick(t.Context(), globalRef("user-1"), "pro-jstn")
	if err != nil {
		t.Fatalf("add pick failed: %v", err)
	}

	if got.ID != "roster-001" {
		t.Fatalf("unexpected roster id: %s", got.ID)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("expected timestamps %v, got created=%v updated=%v", now, got.CreatedAt, got.UpdatedAt)
	}
	if len(got.Picks) != 1 {
		t.Fatalf("expected 1 pick, got %d", len(got.Picks))
	}

	pick := got.Picks[0]
	if pick.PlayerName != "jstn." {
		t.Fatalf("expected snapshotted name jstn., got %s", pick.PlayerName)
	}
	if pick.Price != 3350 {
		t.Fatalf("expected snapshotted price 3350, got %d", pick.Price)
	}
	if pick.Stats.Goals != 31 {
		t.Fatalf("expected snapshotted goals 31, got %d", pick.Stats.Goals)
	}

	// The write stays staged until the autosave window or an explicit save.
	_, exists, err := f.rosterRepo.GetByOwner(t.Context(), "user-1", memory.GlobalLeagueID, memory.EventIDMajor1)
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if exists {
		t.Fatal("roster must not be persisted before a flush")
	}
}

func TestRosterServiceAddPickErrors(t *testing.T) {
	f := newTestFixture(t)
	f.addLeague(t, league.League{
		ID:        "private-1",
		Name:      "Private",
		Password:  "secret",
		CreatorID: "owner-1",
		CreatedAt: time.Now().UTC(),
	})
	f.addMember(t, "private-1", "owner-1")

	svc, _ := newRosterService(t, f)

	tests := []struct {
		name      string
		ref       RosterRef
		playerID  string
		targetErr error
	}{
		{
			name:      "missing user",
			ref:       RosterRef{LeagueID: memory.GlobalLeagueID, EventID: memory.EventIDMajor1},
			playerID:  "pro-jstn",
			targetErr: ErrInvalidInput,
		},
		{
			name:      "missing player id",
			ref:       globalRef("user-1"),
			playerID:  "  ",
			targetErr: ErrInvalidInput,
		},
		{
			name:      "unknown league",
			ref:       RosterRef{UserID: "user-1", LeagueID: "nope", EventID: memory.EventIDMajor1},
			playerID:  "pro-jstn",
			targetErr: ErrNotFound,
		},
		{
			name:      "non-member of private league",
			ref:       RosterRef{UserID: "user-1", LeagueID: "private-1", EventID: memory.EventIDMajor1},
			playerID:  "pro-jstn",
			targetErr: ErrUnauthorized,
		},
		{
			name:      "unknown event",
			ref:       RosterRef{UserID: "user-1", LeagueID: memory.GlobalLeagueID, EventID: "nope"},
			playerID:  "pro-jstn",
			targetErr: ErrNotFound,
		},
		{
			name:      "unknown player",
			ref:       globalRef("user-1"),
			playerID:  "pro-unknown",
			targetErr: ErrNotFound,
		},
		{
			name:      "player without stats for event",
			ref:       RosterRef{UserID: "user-1", LeagueID: memory.GlobalLeagueID, EventID: memory.EventIDMajor2},
			playerID:  "pro-jstn",
			targetErr: ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddPick(t.Context(), tc.ref, tc.playerID)
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestRosterServiceAddPickEnforcesRules(t *testing.T) {
	f := newTestFixture(t)
	svc, _ := newRosterService(t, f)

	ref := globalRef("user-1")
	if _, err := svc.AddPick(t.Context(), ref, "pro-jstn"); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	_, err := svc.AddPick(t.Context(), ref, "pro-jstn")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected duplicate pick to be invalid input, got %v", err)
	}

	// jstn (3350) + rise (2280) + ajack (2460) + daniel (2540) leaves 1370,
	// not enough for any remaining seeded player.
	for _, playerID := range []string{"pro-rise", "pro-ajack", "pro-daniel"} {
		if _, err := svc.AddPick(t.Context(), ref, playerID); err != nil {
			t.Fatalf("add %s failed: %v", playerID, err)
		}
	}

	_, err = svc.AddPick(t.Context(), ref, "pro-garrettg")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected over-budget pick to be rejected, got %v", err)
	}
}

func TestRosterServiceRemovePick(t *testing.T) {
	f := newTestFixture(t)
	svc, _ := newRosterService(t, f)

	ref := globalRef("user-1")
	if _, err := svc.AddPick(t.Context(), ref, "pro-jstn"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	got, err := svc.RemovePick(t.Context(), ref, "pro-jstn")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(got.Picks) != 0 {
		t.Fatalf("expected empty roster, got %d picks", len(got.Picks))
	}

	// Removing an absent player is a no-op, not an error.
	again, err := svc.RemovePick(t.Context(), ref, "pro-jstn")
	if err != nil {
		t.Fatalf("remove absent failed: %v", err)
	}
	if len(again.Picks) != 0 {
		t.Fatalf("expected empty roster, got %d picks", len(again.Picks))
	}
}

func TestRosterServiceRenameTeam(t *testing.T) {
	f := newTestFixture(t)
	svc, _ := newRosterService(t, f)

	ref := globalRef("user-1")
	got, err := svc.RenameTeam(t.Context(), ref, "  Whiff City  ")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if got.TeamName != "Whiff City" {
		t.Fatalf("expected trimmed name, got %q", got.TeamName)
	}

	longName := make([]byte, maxTeamNameLength+1)
	for i := range longName {
		longName[i] = 'x'
	}
	_, err = svc.RenameTeam(t.Context(), ref, string(longName))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected long name to be rejected, got %v", err)
	}

	_, err = svc.RenameTeam(t.Context(), ref, "   ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected empty name to be rejected, got %v", err)
	}
}

func TestRosterServiceGetRosterMergesStagedState(t *testing.T) {
	f := newTestFixture(t)
	svc, _ := newRosterService(t, f)

	ref := globalRef("user-1")
	if _, err := svc.AddPick(t.Context(), ref, "pro-jstn"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	got, err := svc.GetRoster(t.Context(), ref)
	if err != nil {
		t.Fatalf("get roster failed: %v", err)
	}
	if len(got.Picks) != 1 {
		t.Fatalf("expected the staged pick to be visible, got %d picks", len(got.Picks))
	}

	empty, err := svc.GetRoster(t.Context(), RosterRef{
		UserID:   "user-2",
		LeagueID: memory.GlobalLeagueID,
		EventID:  memory.EventIDMajor1,
	})
	if err != nil {
		t.Fatalf("get empty roster failed: %v", err)
	}
	if len(empty.Picks) != 0 || empty.ID != "" {
		t.Fatalf("expected a fresh empty roster, got %+v", empty)
	}
}

func TestRosterServiceSaveNow(t *testing.T) {
	f := newTestFixture(t)
	svc, saver := newRosterService(t, f)

	ref := globalRef("user-1")
	if _, err := svc.AddPick(t.Context(), ref, "pro-jstn"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	saved, err := svc.SaveNow(t.Context(), ref)
	if err != nil {
		t.Fatalf("save now failed: %v", err)
	}
	if len(saved.Picks) != 1 {
		t.Fatalf("expected 1 pick, got %d", len(saved.Picks))
	}

	persisted, exists, err := f.rosterRepo.GetByOwner(context.Background(), "user-1", memory.GlobalLeagueID, memory.EventIDMajor1)
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if !exists {
		t.Fatal("expected roster to be persisted")
	}
	if persisted.ID != saved.ID {
		t.Fatalf("persisted id %s does not match saved id %s", persisted.ID, saved.ID)
	}

	if _, ok := saver.Staged("user-1", memory.GlobalLeagueID, memory.EventIDMajor1); ok {
		t.Fatal("staged state should be cleared after save")
	}

	// SaveNow without staged changes returns the persisted state.
	again, err := svc.SaveNow(t.Context(), ref)
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if again.ID != saved.ID {
		t.Fatalf("expected persisted roster back, got id %s", again.ID)
	}
}
