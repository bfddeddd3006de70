package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rlfpro/rocket-fantasy/internal/domain/event"
)

type eventTableModel struct {
	ID                 string         `db:"id"`
	Name               string         `db:"name"`
	BallchasingGroupID sql.NullString `db:"ballchasing_group_id"`
	CreatedAt          time.Time      `db:"created_at"`
}

func (m eventTableModel) toDomain() event.Event {
	return event.Event{
		ID:                 m.ID,
		Name:               m.Name,
		BallchasingGroupID: m.BallchasingGroupID.String,
		CreatedAt:          m.CreatedAt,
	}
}

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	const query = `
SELECT id, name, ballchasing_group_id, created_at
FROM events
ORDER BY created_at DESC, id`

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (event.Event, bool, error) {
	const query = `
SELECT id, name, ballchasing_group_id, created_at
FROM events
WHERE id = $1`

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, eventID); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *EventRepository) GetByBallchasingGroupID(ctx context.Context, groupID string) (event.Event, bool, error) {
	const query = `
SELECT id, name, ballchasing_group_id, created_at
FROM events
WHERE ballchasing_group_id = $1`

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, groupID); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event by group id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *EventRepository) Create(ctx context.Context, e event.Event) error {
	const query = `
INSERT INTO events (id, name, ballchasing_group_id)
VALUES (:id, :name, :ballchasing_group_id)`

	groupID := sql.NullString{String: e.BallchasingGroupID, Valid: e.BallchasingGroupID != ""}
	boundSQL, boundArgs, err := sqlx.Named(query, map[string]any{
		"id":                   e.ID,
		"name":                 e.Name,
		"ballchasing_group_id": groupID,
	})
	if err != nil {
		return fmt.Errorf("bind create event query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)
	if _, err := r.db.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}
