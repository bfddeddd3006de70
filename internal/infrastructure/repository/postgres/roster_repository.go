package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rlfpro/rocket-fantasy/internal/domain/roster"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetByOwner(ctx context.Context, userID, leagueID, eventID string) (roster.Roster, bool, error) {
	const query = `
SELECT id, user_id, league_id, event_id, team_name, selected_players, created_at, updated_at
FROM fantasy_teams
WHERE user_id = $1
  AND league_id = $2
  AND event_id = $3`

	var row rosterTableModel
	if err := r.db.GetContext(ctx, &row, query, userID, leagueID, eventID); err != nil {
		if isNotFound(err) {
			return roster.Roster{}, false, nil
		}
		return roster.Roster{}, false, fmt.Errorf("get roster: %w", err)
	}

	item, err := row.toDomain()
	if err != nil {
		return roster.Roster{}, false, err
	}
	return item, true, nil
}

func (r *RosterRepository) ListByLeagueAndEvent(ctx context.Context, leagueID, eventID string) ([]roster.Roster, error) {
	const query = `
SELECT id, user_id, league_id, event_id, team_name, selected_players, created_at, updated_at
FROM fantasy_teams
WHERE league_id = $1
  AND event_id = $2
ORDER BY created_at, id`

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, leagueID, eventID); err != nil {
		return nil, fmt.Errorf("list rosters: %w", err)
	}

	out := make([]roster.Roster, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *RosterRepository) Upsert(ctx context.Context, item roster.Roster) error {
	picks, err := encodePicks(item.Picks)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO fantasy_teams (id, user_id, league_id, event_id, team_name, selected_players)
VALUES (:id, :user_id, :league_id, :event_id, :team_name, :selected_players)
ON CONFLICT (user_id, league_id, event_id)
DO UPDATE SET
    team_name = EXCLUDED.team_name,
    selected_players = EXCLUDED.selected_players,
    updated_at = NOW()`

	args := map[string]any{
		"id":               item.ID,
		"user_id":          item.UserID,
		"league_id":        item.LeagueID,
		"event_id":         item.EventID,
		"team_name":        item.TeamName,
		"selected_players": picks,
	}
	boundSQL, boundArgs, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind upsert roster query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)
	if _, err := r.db.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
		return fmt.Errorf("upsert roster: %w", err)
	}

	return nil
}

func (r *RosterRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	const query = `DELETE FROM fantasy_teams WHERE league_id = $1`

	if _, err := r.db.ExecContext(ctx, query, leagueID); err != nil {
		return fmt.Errorf("delete rosters by league: %w", err)
	}
	return nil
}
