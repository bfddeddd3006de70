package league

import (
	"fmt"
	"time"
)

// League groups users into a shared leaderboard. The global league always
// exists and cannot be deleted. Password is optional and compared verbatim;
// the web client never treated it as a credential worth hashing.
type League struct {
	ID        string
	Name      string
	Password  string
	CreatorID string
	IsGlobal  bool
	CreatedAt time.Time
}

// Membership records that a user participates in a league.
type Membership struct {
	LeagueID string
	UserID   string
	JoinedAt time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if !l.IsGlobal && l.CreatorID == "" {
		return fmt.Errorf("league creator id is required")
	}

	return nil
}
