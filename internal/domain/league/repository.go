package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	GetByName(ctx context.Context, name string) (League, bool, error)
	GetGlobal(ctx context.Context) (League, bool, error)
	// ListForUser returns the global league first, then the user's
	// memberships ordered by join time.
	ListForUser(ctx context.Context, userID string) ([]League, error)
	Create(ctx context.Context, l League) error
	Delete(ctx context.Context, leagueID string) error
	AddMember(ctx context.Context, m Membership) error
	IsMember(ctx context.Context, leagueID, userID string) (bool, error)
}
