package roster

import (
	"errors"
	"fmt"
)

var (
	ErrRosterFull      = errors.New("roster is full")
	ErrBudgetExceeded  = errors.New("budget exceeded")
	ErrDuplicatePlayer = errors.New("player already in roster")
)

// Rules stores roster validation parameters.
type Rules struct {
	MaxPicks int
	Budget   int64
}

func DefaultRules() Rules {
	return Rules{
		MaxPicks: 6,
		Budget:   12000,
	}
}

// AddPick returns a copy of r with pick appended. The size check runs before
// the budget check so a full roster always reports ErrRosterFull.
func AddPick(r Roster, pick Pick, rules Rules) (Roster, error) {
	if pick.PlayerID == "" {
		return Roster{}, fmt.Errorf("player id is required")
	}
	if r.Contains(pick.PlayerID) {
		return Roster{}, fmt.Errorf("%w: %s", ErrDuplicatePlayer, pick.PlayerID)
	}
	if len(r.Picks) >= rules.MaxPicks {
		return Roster{}, fmt.Errorf("%w: max=%d", ErrRosterFull, rules.MaxPicks)
	}
	if r.TotalCost()+pick.Price > rules.Budget {
		return Roster{}, fmt.Errorf("%w: budget=%d used=%d price=%d", ErrBudgetExceeded, rules.Budget, r.TotalCost(), pick.Price)
	}

	out := r
	out.Picks = make([]Pick, 0, len(r.Picks)+1)
	out.Picks = append(out.Picks, r.Picks...)
	out.Picks = append(out.Picks, pick)
	return out, nil
}

// RemovePick returns a copy of r without playerID. Removing a player that is
// not in the roster is a no-op.
func RemovePick(r Roster, playerID string) Roster {
	out := r
	out.Picks = make([]Pick, 0, len(r.Picks))
	for _, pick := range r.Picks {
		if pick.PlayerID == playerID {
			continue
		}
		out.Picks = append(out.Picks, pick)
	}
	return out
}

// RemainingBudget is never negative for rosters built through AddPick.
func RemainingBudget(r Roster, rules Rules) int64 {
	remaining := rules.Budget - r.TotalCost()
	if remaining < 0 {
		return 0
	}
	return remaining
}
