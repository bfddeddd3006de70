package user

import "context"

// Repository describes profile persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, userID string) (Profile, bool, error)
	GetByIDs(ctx context.Context, userIDs []string) ([]Profile, error)
	Upsert(ctx context.Context, p Profile) error
}
