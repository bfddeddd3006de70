package roster

import (
	"fmt"
	"time"

	"github.com/rlfpro/rocket-fantasy/internal/domain/stats"
)

// Pick is one selected player in a roster. Price and Stats are snapshots
// taken at selection time so later imports do not shift a saved roster.
type Pick struct {
	PlayerID   string
	PlayerName string
	Price      int64
	Stats      stats.Line
}

// Roster is one user's team for a (league, event) pair.
type Roster struct {
	ID        string
	UserID    string
	LeagueID  string
	EventID   string
	TeamName  string
	Picks     []Pick
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Roster) ValidateBasic() error {
	if r.ID == "" {
		return fmt.Errorf("roster id is required")
	}
	if r.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if r.LeagueID == "" {
		return fmt.Errorf("league id is required")
	}
	if r.EventID == "" {
		return fmt.Errorf("event id is required")
	}

	return nil
}

// TotalCost sums pick prices at full precision.
func (r Roster) TotalCost() int64 {
	var total int64
	for _, pick := range r.Picks {
		total += pick.Price
	}
	return total
}

// Contains reports whether playerID is already picked.
func (r Roster) Contains(playerID string) bool {
	for _, pick := range r.Picks {
		if pick.PlayerID == playerID {
			return true
		}
	}
	return false
}
