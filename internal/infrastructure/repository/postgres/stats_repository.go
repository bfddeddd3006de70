package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rlfpro/rocket-fantasy/internal/domain/stats"
)

type statsTableModel struct {
	PlayerID string `db:"player_id"`
	EventID  string `db:"event_id"`
	Goals    int    `db:"goals"`
	Assists  int    `db:"assists"`
	Saves    int    `db:"saves"`
	Shots    int    `db:"shots"`
	Demos    int    `db:"demos"`
	Score    int    `db:"score"`
}

func (m statsTableModel) toDomain() stats.PlayerEventStats {
	return stats.PlayerEventStats{
		PlayerID: m.PlayerID,
		EventID:  m.EventID,
		Line: stats.Line{
			Goals:   m.Goals,
			Assists: m.Assists,
			Saves:   m.Saves,
			Shots:   m.Shots,
			Demos:   m.Demos,
			Score:   m.Score,
		},
	}
}

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) ListByEvent(ctx context.Context, eventID string) ([]stats.PlayerEventStats, error) {
	const query = `
SELECT player_id, event_id, goals, assists, saves, shots, demos, score
FROM player_event_stats
WHERE event_id = $1
ORDER BY player_id`

	var rows []statsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("list event stats: %w", err)
	}

	out := make([]stats.PlayerEventStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *StatsRepository) GetByPlayerAndEvent(ctx context.Context, playerID, eventID string) (stats.PlayerEventStats, bool, error) {
	const query = `
SELECT player_id, event_id, goals, assists, saves, shots, demos, score
FROM player_event_stats
WHERE player_id = $1
  AND event_id = $2`

	var row statsTableModel
	if err := r.db.GetContext(ctx, &row, query, playerID, eventID); err != nil {
		if isNotFound(err) {
			return stats.PlayerEventStats{}, false, nil
		}
		return stats.PlayerEventStats{}, false, fmt.Errorf("get player event stats: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *StatsRepository) Upsert(ctx context.Context, line stats.PlayerEventStats) error {
	const query = `
INSERT INTO player_event_stats (player_id, event_id, goals, assists, saves, shots, demos, score)
VALUES (:player_id, :event_id, :goals, :assists, :saves, :shots, :demos, :score)
ON CONFLICT (player_id, event_id)
DO UPDATE SET
    goals = EXCLUDED.goals,
    assists = EXCLUDED.assists,
    saves = EXCLUDED.saves,
    shots = EXCLUDED.shots,
    demos = EXCLUDED.demos,
    score = EXCLUDED.score,
    updated_at = NOW()`

	boundSQL, boundArgs, err := sqlx.Named(query, map[string]any{
		"player_id": line.PlayerID,
		"event_id":  line.EventID,
		"goals":     line.Line.Goals,
		"assists":   line.Line.Assists,
		"saves":     line.Line.Saves,
		"shots":     line.Line.Shots,
		"demos":     line.Line.Demos,
		"score":     line.Line.Score,
	})
	if err != nil {
		return fmt.Errorf("bind upsert stats query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)
	if _, err := r.db.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
		return fmt.Errorf("upsert player event stats: %w", err)
	}

	return nil
}
