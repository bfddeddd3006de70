package roster

import "context"

// Repository describes roster persistence needs from use cases.
type Repository interface {
	GetByOwner(ctx context.Context, userID, leagueID, eventID string) (Roster, bool, error)
	ListByLeagueAndEvent(ctx context.Context, leagueID, eventID string) ([]Roster, error)
	Upsert(ctx context.Context, r Roster) error
	DeleteByLeague(ctx context.Context, leagueID string) error
}
