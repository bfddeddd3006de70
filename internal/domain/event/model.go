package event

import (
	"fmt"
	"time"
)

// Event is one tournament or replay group that rosters are built against.
// BallchasingGroupID links the event to its source replay group.
type Event struct {
	ID                 string
	Name               string
	BallchasingGroupID string
	CreatedAt          time.Time
}

func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if e.Name == "" {
		return fmt.Errorf("event name is required")
	}

	return nil
}
