package roster

import (
	"errors"
	"testing"
)

func pickWithPrice(playerID string, price int64) Pick {
	return Pick{PlayerID: playerID, PlayerName: playerID, Price: price}
}

func TestAddPick(t *testing.T) {
	rules := DefaultRules()

	base := Roster{
		ID:       "roster-1",
		UserID:   "user-1",
		LeagueID: "global",
		EventID:  "event-1",
		Picks: []Pick{
			pickWithPrice("p1", 3000),
			pickWithPrice("p2", 2500),
		},
	}

	tests := []struct {
		name      string
		roster    Roster
		pick      Pick
		rules     Rules
		targetErr error
	}{
		{
			name:   "valid pick",
			roster: base,
			pick:   pickWithPrice("p3", 2000),
			rules:  rules,
		},
		{
			name:      "duplicate player",
			roster:    base,
			pick:      pickWithPrice("p1", 2000),
			rules:     rules,
			targetErr: ErrDuplicatePlayer,
		},
		{
			name: "roster full",
			roster: Roster{Picks: []Pick{
				pickWithPrice("p1", 100),
				pickWithPrice("p2", 100),
				pickWithPrice("p3", 100),
				pickWithPrice("p4", 100),
				pickWithPrice("p5", 100),
				pickWithPrice("p6", 100),
			}},
			pick:      pickWithPrice("p7", 100),
			rules:     rules,
			targetErr: ErrRosterFull,
		},
		{
			name:      "budget exceeded",
			roster:    base,
			pick:      pickWithPrice("p3", 7000),
			rules:     rules,
			targetErr: ErrBudgetExceeded,
		},
		{
			name: "full roster reports full before budget",
			roster: Roster{Picks: []Pick{
				pickWithPrice("p1", 2000),
				pickWithPrice("p2", 2000),
				pickWithPrice("p3", 2000),
				pickWithPrice("p4", 2000),
				pickWithPrice("p5", 2000),
				pickWithPrice("p6", 2000),
			}},
			pick:      pickWithPrice("p7", 9999),
			rules:     rules,
			targetErr: ErrRosterFull,
		},
		{
			name:   "exact budget is allowed",
			roster: base,
			pick:   pickWithPrice("p3", 6500),
			rules:  rules,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AddPick(tc.roster, tc.pick, tc.rules)
			if tc.targetErr != nil {
				if !errors.Is(err, tc.targetErr) {
					t.Fatalf("expected %v, got %v", tc.targetErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("add pick failed: %v", err)
			}
			if !got.Contains(tc.pick.PlayerID) {
				t.Fatalf("expected roster to contain %s", tc.pick.PlayerID)
			}
			if len(got.Picks) != len(tc.roster.Picks)+1 {
				t.Fatalf("expected %d picks, got %d", len(tc.roster.Picks)+1, len(got.Picks))
			}
		})
	}
}

func TestAddPickDoesNotMutateInput(t *testing.T) {
	original := Roster{Picks: []Pick{pickWithPrice("p1", 1000)}}

	got, err := AddPick(original, pickWithPrice("p2", 1000), DefaultRules())
	if err != nil {
		t.Fatalf("add pick failed: %v", err)
	}

	got.Picks[0].PlayerID = "mutated"
	if original.Picks[0].PlayerID != "p1" {
		t.Fatalf("input roster was mutated: %s", original.Picks[0].PlayerID)
	}
	if len(original.Picks) != 1 {
		t.Fatalf("input roster pick count changed: %d", len(original.Picks))
	}
}

func TestRemovePick(t *testing.T) {
	r := Roster{Picks: []Pick{
		pickWithPrice("p1", 1000),
		pickWithPrice("p2", 2000),
		pickWithPrice("p3", 3000),
	}}

	got := RemovePick(r, "p2")
	if len(got.Picks) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(got.Picks))
	}
	if got.Contains("p2") {
		t.Fatal("expected p2 to be removed")
	}
	if got.Picks[0].PlayerID != "p1" || got.Picks[1].PlayerID != "p3" {
		t.Fatalf("expected remaining order p1,p3, got %s,%s", got.Picks[0].PlayerID, got.Picks[1].PlayerID)
	}

	unchanged := RemovePick(r, "missing")
	if len(unchanged.Picks) != 3 {
		t.Fatalf("removing a missing player should be a no-op, got %d picks", len(unchanged.Picks))
	}
}

func TestRemainingBudget(t *testing.T) {
	rules := DefaultRules()

	empty := Roster{}
	if got := RemainingBudget(empty, rules); got != rules.Budget {
		t.Fatalf("expected full budget %d, got %d", rules.Budget, got)
	}

	r := Roster{Picks: []Pick{
		pickWithPrice("p1", 4000),
		pickWithPrice("p2", 3500),
	}}
	if got := RemainingBudget(r, rules); got != 4500 {
		t.Fatalf("expected 4500 remaining, got %d", got)
	}

	over := Roster{Picks: []Pick{pickWithPrice("p1", rules.Budget + 1000)}}
	if got := RemainingBudget(over, rules); got != 0 {
		t.Fatalf("expected clamped remaining 0, got %d", got)
	}
}

func TestValidateBasic(t *testing.T) {
	valid := Roster{ID: "r1", UserID: "u1", LeagueID: "l1", EventID: "e1"}
	if err := valid.ValidateBasic(); err != nil {
		t.Fatalf("expected valid roster, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Roster)
	}{
		{name: "missing id", mutate: func(r *Roster) { r.ID = "" }},
		{name: "missing user", mutate: func(r *Roster) { r.UserID = "" }},
		{name: "missing league", mutate: func(r *Roster) { r.LeagueID = "" }},
		{name: "missing event", mutate: func(r *Roster) { r.EventID = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mutate(&r)
			if err := r.ValidateBasic(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
