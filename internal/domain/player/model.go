package player

import (
	"fmt"
	"time"
)

// Player is a selectable pro in the fantasy pool. PlatformID is the stable
// replay-platform identity (e.g. "steam:765611..."); Name is the display name
// seen in the most recent import.
type Player struct {
	ID         string
	PlatformID string
	Name       string
	Price      int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.PlatformID == "" {
		return fmt.Errorf("player platform id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Price <= 0 {
		return fmt.Errorf("player price must be greater than zero")
	}

	return nil
}
