package stats

import "fmt"

// Line is the per-player stat line extracted from replay data. Fields absent
// in the source payload stay zero.
type Line struct {
	Goals   int
	Assists int
	Saves   int
	Shots   int
	Demos   int
	Score   int
}

// PlayerEventStats binds a stat line to one player for one event.
type PlayerEventStats struct {
	PlayerID string
	EventID  string
	Line     Line
}

func (s PlayerEventStats) Validate() error {
	if s.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}
	if s.EventID == "" {
		return fmt.Errorf("event id is required")
	}
	if s.Line.Goals < 0 || s.Line.Assists < 0 || s.Line.Saves < 0 || s.Line.Shots < 0 || s.Line.Demos < 0 {
		return fmt.Errorf("stat counts cannot be negative")
	}

	return nil
}
