package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rlfpro/rocket-fantasy/internal/domain/league"
)

type leagueTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Password  string    `db:"password"`
	CreatorID string    `db:"creator_id"`
	IsGlobal  bool      `db:"is_global"`
	CreatedAt time.Time `db:"created_at"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:        m.ID,
		Name:      m.Name,
		Password:  m.Password,
		CreatorID: m.CreatorID,
		IsGlobal:  m.IsGlobal,
		CreatedAt: m.CreatedAt,
	}
}

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	const query = `
SELECT id, name, password, creator_id, is_global, created_at
FROM leagues
WHERE id = $1`

	return r.getOne(ctx, query, leagueID)
}

func (r *LeagueRepository) GetByName(ctx context.Context, name string) (league.League, bool, error) {
	const query = `
SELECT id, name, password, creator_id, is_global, created_at
FROM leagues
WHERE name = $1`

	return r.getOne(ctx, query, name)
}

func (r *LeagueRepository) GetGlobal(ctx context.Context) (league.League, bool, error) {
	const query = `
SELECT id, name, password, creator_id, is_global, created_at
FROM leagues
WHERE is_global
ORDER BY created_at
LIMIT 1`

	return r.getOne(ctx, query)
}

func (r *LeagueRepository) ListForUser(ctx context.Context, userID string) ([]league.League, error) {
	const query = `
SELECT l.id, l.name, l.password, l.creator_id, l.is_global, l.created_at
FROM leagues l
LEFT JOIN league_memberships m
  ON m.league_id = l.id AND m.user_id = $1
WHERE l.is_global OR m.user_id IS NOT NULL
ORDER BY l.is_global DESC, m.joined_at, l.id`

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list leagues for user: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) error {
	const query = `
INSERT INTO leagues (id, name, password, creator_id, is_global)
VALUES (:id, :name, :password, :creator_id, :is_global)`

	boundSQL, boundArgs, err := sqlx.Named(query, map[string]any{
		"id":         l.ID,
		"name":       l.Name,
		"password":   l.Password,
		"creator_id": l.CreatorID,
		"is_global":  l.IsGlobal,
	})
	if err != nil {
		return fmt.Errorf("bind create league query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)
	if _, err := r.db.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
		return fmt.Errorf("create league: %w", err)
	}

	return nil
}

func (r *LeagueRepository) Delete(ctx context.Context, leagueID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for league delete: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM league_memberships WHERE league_id = $1`, leagueID); err != nil {
		return fmt.Errorf("delete league memberships: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM leagues WHERE id = $1 AND NOT is_global`, leagueID); err != nil {
		return fmt.Errorf("delete league: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit league delete tx: %w", err)
	}
	return nil
}

func (r *LeagueRepository) AddMember(ctx context.Context, m league.Membership) error {
	const query = `
INSERT INTO league_memberships (league_id, user_id, joined_at)
VALUES (:league_id, :user_id, :joined_at)
ON CONFLICT (league_id, user_id) DO NOTHING`

	boundSQL, boundArgs, err := sqlx.Named(query, map[string]any{
		"league_id": m.LeagueID,
		"user_id":   m.UserID,
		"joined_at": m.JoinedAt,
	})
	if err != nil {
		return fmt.Errorf("bind add member query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)
	if _, err := r.db.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
		return fmt.Errorf("add league member: %w", err)
	}

	return nil
}

func (r *LeagueRepository) IsMember(ctx context.Context, leagueID, userID string) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM league_memberships
    WHERE league_id = $1 AND user_id = $2
)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, leagueID, userID); err != nil {
		return false, fmt.Errorf("check league membership: %w", err)
	}
	return exists, nil
}

func (r *LeagueRepository) getOne(ctx context.Context, query string, args ...any) (league.League, bool, error) {
	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}

	return row.toDomain(), true, nil
}
