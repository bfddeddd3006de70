package event

import "context"

// Repository describes event persistence needs from use cases.
type Repository interface {
	// List returns events ordered most recent first.
	List(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, eventID string) (Event, bool, error)
	GetByBallchasingGroupID(ctx context.Context, groupID string) (Event, bool, error)
	Create(ctx context.Context, e Event) error
}
