package stats

import "context"

// Repository describes stat-line persistence needs from use cases.
type Repository interface {
	ListByEvent(ctx context.Context, eventID string) ([]PlayerEventStats, error)
	GetByPlayerAndEvent(ctx context.Context, playerID, eventID string) (PlayerEventStats, bool, error)
	Upsert(ctx context.Context, line PlayerEventStats) error
}
