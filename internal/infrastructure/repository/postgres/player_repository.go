package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rlfpro/rocket-fantasy/internal/domain/player"
)

type playerTableModel struct {
	ID         string    `db:"id"`
	PlatformID string    `db:"platform_id"`
	Name       string    `db:"name"`
	Price      int64     `db:"price"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:         m.ID,
		PlatformID: m.PlatformID,
		Name:       m.Name,
		Price:      m.Price,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	const query = `
SELECT id, platform_id, name, price, created_at, updated_at
FROM players
WHERE id = $1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	const query = `
SELECT id, platform_id, name, price, created_at, updated_at
FROM players
WHERE id IN (?)`

	boundSQL, boundArgs, err := sqlx.In(query, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("bind get players query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, boundSQL, boundArgs...); err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetByPlatformID(ctx context.Context, platformID string) (player.Player, bool, error) {
	const query = `
SELECT id, platform_id, name, price, created_at, updated_at
FROM players
WHERE platform_id = $1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, platformID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by platform id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	const query = `
INSERT INTO players (id, platform_id, name, price)
VALUES (:id, :platform_id, :name, :price)
ON CONFLICT (platform_id)
DO UPDATE SET
    name = EXCLUDED.name,
    price = EXCLUDED.price,
    updated_at = NOW()`

	boundSQL, boundArgs, err := sqlx.Named(query, map[string]any{
		"id":          p.ID,
		"platform_id": p.PlatformID,
		"name":        p.Name,
		"price":       p.Price,
	})
	if err != nil {
		return fmt.Errorf("bind create player query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)
	if _, err := r.db.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
		return fmt.Errorf("create player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	const query = `
UPDATE players
SET name = :name,
    price = :price,
    updated_at = NOW()
WHERE id = :id`

	boundSQL, boundArgs, err := sqlx.Named(query, map[string]any{
		"id":    p.ID,
		"name":  p.Name,
		"price": p.Price,
	})
	if err != nil {
		return fmt.Errorf("bind update player query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)
	if _, err := r.db.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
		return fmt.Errorf("update player: %w", err)
	}

	return nil
}
