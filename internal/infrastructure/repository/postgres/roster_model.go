package postgres

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rlfpro/rocket-fantasy/internal/domain/roster"
	"github.com/rlfpro/rocket-fantasy/internal/domain/stats"
)

type rosterTableModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	LeagueID  string    `db:"league_id"`
	EventID   string    `db:"event_id"`
	TeamName  string    `db:"team_name"`
	Picks     []byte    `db:"selected_players"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// pickDoc is the JSONB shape of one roster pick. The column is parsed into
// typed picks on read; raw documents never leave the repository.
type pickDoc struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Price      int64  `json:"price"`
	Goals      int    `json:"goals"`
	Assists    int    `json:"assists"`
	Saves      int    `json:"saves"`
	Shots      int    `json:"shots"`
	Demos      int    `json:"demos"`
	Score      int    `json:"score"`
}

func encodePicks(picks []roster.Pick) ([]byte, error) {
	docs := make([]pickDoc, 0, len(picks))
	for _, pick := range picks {
		docs = append(docs, pickDoc{
			PlayerID:   pick.PlayerID,
			PlayerName: pick.PlayerName,
			Price:      pick.Price,
			Goals:      pick.Stats.Goals,
			Assists:    pick.Stats.Assists,
			Saves:      pick.Stats.Saves,
			Shots:      pick.Stats.Shots,
			Demos:      pick.Stats.Demos,
			Score:      pick.Stats.Score,
		})
	}

	raw, err := sonic.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("marshal roster picks: %w", err)
	}
	return raw, nil
}

func decodePicks(raw []byte) ([]roster.Pick, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var docs []pickDoc
	if err := sonic.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("unmarshal roster picks: %w", err)
	}

	picks := make([]roster.Pick, 0, len(docs))
	for _, doc := range docs {
		if doc.PlayerID == "" {
			return nil, fmt.Errorf("roster pick without player id")
		}
		picks = append(picks, roster.Pick{
			PlayerID:   doc.PlayerID,
			PlayerName: doc.PlayerName,
			Price:      doc.Price,
			Stats: stats.Line{
				Goals:   doc.Goals,
				Assists: doc.Assists,
				Saves:   doc.Saves,
				Shots:   doc.Shots,
				Demos:   doc.Demos,
				Score:   doc.Score,
			},
		})
	}
	return picks, nil
}

func (m rosterTableModel) toDomain() (roster.Roster, error) {
	picks, err := decodePicks(m.Picks)
	if err != nil {
		return roster.Roster{}, err
	}

	return roster.Roster{
		ID:        m.ID,
		UserID:    m.UserID,
		LeagueID:  m.LeagueID,
		EventID:   m.EventID,
		TeamName:  m.TeamName,
		Picks:     picks,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
