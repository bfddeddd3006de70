package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rlfpro/rocket-fantasy/internal/domain/event"
	"github.com/rlfpro/rocket-fantasy/internal/domain/player"
	"github.com/rlfpro/rocket-fantasy/internal/domain/scoring"
	"github.com/rlfpro/rocket-fantasy/internal/domain/stats"
	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
)

// CatalogEntry is one selectable player for an event with the snapshot a
// roster pick would take.
type CatalogEntry struct {
	PlayerID   string
	PlayerName string
	Price      int64
	Stats      stats.Line
	Points     float64
}

// CatalogService serves the event list and per-event player catalogs.
type CatalogService struct {
	eventRepo  event.Repository
	playerRepo player.Repository
	statsRepo  stats.Repository
	logger     *logging.Logger
}

func NewCatalogService(
	eventRepo event.Repository,
	playerRepo player.Repository,
	statsRepo stats.Repository,
	logger *logging.Logger,
) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}

	return &CatalogService{
		eventRepo:  eventRepo,
		playerRepo: playerRepo,
		statsRepo:  statsRepo,
		logger:     logger,
	}
}

// ListEvents returns events most recent first.
func (s *CatalogService) ListEvents(ctx context.Context) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListEvents")
	defer span.End()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}

// EventCatalog joins an event's stat lines with the player pool. Players
// missing from the pool are skipped rather than failing the whole catalog.
func (s *CatalogService) EventCatalog(ctx context.Context, eventID string) ([]CatalogEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.EventCatalog")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	_, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	lines, err := s.statsRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event stats: %w", err)
	}
	if len(lines) == 0 {
		return []CatalogEntry{}, nil
	}

	playerIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		playerIDs = append(playerIDs, line.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players: %w", err)
	}
	playerByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	entries := make([]CatalogEntry, 0, len(lines))
	for _, line := range lines {
		p, ok := playerByID[line.PlayerID]
		if !ok {
			s.logger.WarnContext(ctx, "stat line without player",
				"player_id", line.PlayerID,
				"event_id", eventID,
			)
			continue
		}
		entries = append(entries, CatalogEntry{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Price:      p.Price,
			Stats:      line.Line,
			Points:     scoring.Round2(scoring.Score(line.Line)),
		})
	}

	return entries, nil
}
