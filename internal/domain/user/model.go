package user

import (
	"fmt"
	"time"
)

// Profile holds the public identity shown on leaderboards.
type Profile struct {
	ID          string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile id is required")
	}
	if p.DisplayName == "" {
		return fmt.Errorf("profile display name is required")
	}

	return nil
}
