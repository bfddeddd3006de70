package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rlfpro/rocket-fantasy/internal/domain/user"
)

type profileTableModel struct {
	ID          string    `db:"id"`
	DisplayName string    `db:"display_name"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (m profileTableModel) toDomain() user.Profile {
	return user.Profile{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.Profile, bool, error) {
	const query = `
SELECT id, display_name, created_at, updated_at
FROM profiles
WHERE id = $1`

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if isNotFound(err) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []string) ([]user.Profile, error) {
	if len(userIDs) == 0 {
		return []user.Profile{}, nil
	}

	const query = `
SELECT id, display_name, created_at, updated_at
FROM profiles
WHERE id IN (?)`

	boundSQL, boundArgs, err := sqlx.In(query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("bind get profiles query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, boundSQL, boundArgs...); err != nil {
		return nil, fmt.Errorf("get profiles by ids: %w", err)
	}

	out := make([]user.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *UserRepository) Upsert(ctx context.Context, p user.Profile) error {
	const query = `
INSERT INTO profiles (id, display_name)
VALUES (:id, :display_name)
ON CONFLICT (id)
DO UPDATE SET
    display_name = EXCLUDED.display_name,
    updated_at = NOW()`

	boundSQL, boundArgs, err := sqlx.Named(query, map[string]any{
		"id":           p.ID,
		"display_name": p.DisplayName,
	})
	if err != nil {
		return fmt.Errorf("bind upsert profile query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)
	if _, err := r.db.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}
