package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rlfpro/rocket-fantasy/internal/domain/event"
	"github.com/rlfpro/rocket-fantasy/internal/domain/player"
	"github.com/rlfpro/rocket-fantasy/internal/domain/stats"
	idgen "github.com/rlfpro/rocket-fantasy/internal/platform/id"
	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
)

const (
	defaultImportWorkers = 4
	maxImportWorkers     = 16

	basePlayerPrice = 1000
)

// ReplayGroupProvider fetches aggregated replay-group stats from the replay
// platform.
type ReplayGroupProvider interface {
	FetchGroup(ctx context.Context, groupID string) (ExternalReplayGroup, error)
}

type ExternalReplayGroup struct {
	GroupID string
	Name    string
	Players []ExternalReplayPlayer
}

type ExternalReplayPlayer struct {
	Platform         string
	PlatformPlayerID string
	Name             string
	Goals            int
	Assists          int
	Saves            int
	Shots            int
	Demos            int
	Score            int
}

// PlatformID is the stable identity used to deduplicate players across
// imports.
func (p ExternalReplayPlayer) PlatformID() string {
	return p.Platform + ":" + p.PlatformPlayerID
}

type ImportGroupInput struct {
	GroupID    string
	EventName  string
	MaxWorkers int
}

type ImportResult struct {
	EventID        string `json:"event_id"`
	EventName      string `json:"event_name"`
	GroupID        string `json:"group_id"`
	PlayerCount    int    `json:"player_count"`
	CreatedPlayers int    `json:"created_players"`
	UpdatedPlayers int    `json:"updated_players"`
	FailedPlayers  int    `json:"failed_players"`
	WorkerCount    int    `json:"worker_count"`
}

// ImportService pulls a replay group and materializes its event, players and
// per-event stat lines. Player prices are derived from the stat line on
// every import; roster picks keep their snapshots so past rosters stay put.
type ImportService struct {
	provider   ReplayGroupProvider
	eventRepo  event.Repository
	playerRepo player.Repository
	statsRepo  stats.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewImportService(
	provider ReplayGroupProvider,
	eventRepo event.Repository,
	playerRepo player.Repository,
	statsRepo stats.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ImportService{
		provider:   provider,
		eventRepo:  eventRepo,
		playerRepo: playerRepo,
		statsRepo:  statsRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *ImportService) ImportGroup(ctx context.Context, input ImportGroupInput) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportGroup")
	defer span.End()

	input.GroupID = strings.TrimSpace(input.GroupID)
	input.EventName = strings.TrimSpace(input.EventName)
	if input.GroupID == "" {
		return ImportResult{}, fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}
	if s.provider == nil {
		return ImportResult{}, fmt.Errorf("%w: replay group provider is not configured", ErrDependencyUnavailable)
	}

	group, err := s.provider.FetchGroup(ctx, input.GroupID)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: fetch replay group: %v", ErrDependencyUnavailable, err)
	}
	if len(group.Players) == 0 {
		return ImportResult{}, fmt.Errorf("%w: replay group %s has no players", ErrInvalidInput, input.GroupID)
	}

	eventName := input.EventName
	if eventName == "" {
		eventName = group.Name
	}
	ev, err := s.getOrCreateEvent(ctx, input.GroupID, eventName)
	if err != nil {
		return ImportResult{}, err
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultImportWorkers
	}
	if workerCount > maxImportWorkers {
		workerCount = maxImportWorkers
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ImportResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var created, updated, failed atomic.Int32
	var workers sync.WaitGroup
	for _, extPlayer := range group.Players {
		extPlayer := extPlayer
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			wasCreated, importErr := s.importPlayer(ctx, ev.ID, extPlayer)
			if importErr != nil {
				failed.Add(1)
				s.logger.ErrorContext(ctx, "import player failed",
					"event_id", ev.ID,
					"platform_id", extPlayer.PlatformID(),
					"error", importErr,
				)
				return
			}
			if wasCreated {
				created.Add(1)
			} else {
				updated.Add(1)
			}
		}); err != nil {
			workers.Done()
			failed.Add(1)
			s.logger.ErrorContext(ctx, "submit import task failed",
				"platform_id", extPlayer.PlatformID(),
				"error", err,
			)
		}
	}
	workers.Wait()

	result := ImportResult{
		EventID:        ev.ID,
		EventName:      ev.Name,
		GroupID:        input.GroupID,
		PlayerCount:    len(group.Players),
		CreatedPlayers: int(created.Load()),
		UpdatedPlayers: int(updated.Load()),
		FailedPlayers:  int(failed.Load()),
		WorkerCount:    workerCount,
	}

	s.logger.InfoContext(ctx, "replay group imported",
		"group_id", input.GroupID,
		"event_id", ev.ID,
		"player_count", result.PlayerCount,
		"created_players", result.CreatedPlayers,
		"updated_players", result.UpdatedPlayers,
		"failed_players", result.FailedPlayers,
	)

	return result, nil
}

func (s *ImportService) getOrCreateEvent(ctx context.Context, groupID, eventName string) (event.Event, error) {
	existing, exists, err := s.eventRepo.GetByBallchasingGroupID(ctx, groupID)
	if err != nil {
		return event.Event{}, fmt.Errorf("get event by group id: %w", err)
	}
	if exists {
		return existing, nil
	}

	if eventName == "" {
		eventName = groupID
	}
	id, err := s.idGen.NewID()
	if err != nil {
		return event.Event{}, fmt.Errorf("generate event id: %w", err)
	}
	created := event.Event{
		ID:                 id,
		Name:               eventName,
		BallchasingGroupID: groupID,
		CreatedAt:          s.now().UTC(),
	}
	if err := created.Validate(); err != nil {
		return event.Event{}, fmt.Errorf("validate event: %w", err)
	}
	if err := s.eventRepo.Create(ctx, created); err != nil {
		return event.Event{}, fmt.Errorf("create event: %w", err)
	}

	return created, nil
}

func (s *ImportService) importPlayer(ctx context.Context, eventID string, ext ExternalReplayPlayer) (bool, error) {
	if ext.PlatformPlayerID == "" {
		return false, fmt.Errorf("player platform id is required")
	}

	line := stats.Line{
		Goals:   ext.Goals,
		Assists: ext.Assists,
		Saves:   ext.Saves,
		Shots:   ext.Shots,
		Demos:   ext.Demos,
		Score:   ext.Score,
	}
	price := derivePrice(line)
	now := s.now().UTC()

	existing, exists, err := s.playerRepo.GetByPlatformID(ctx, ext.PlatformID())
	if err != nil {
		return false, fmt.Errorf("get player by platform id: %w", err)
	}

	var p player.Player
	wasCreated := false
	if exists {
		p = existing
		if ext.Name != "" {
			p.Name = ext.Name
		}
		p.Price = price
		p.UpdatedAt = now
		if err := s.playerRepo.Update(ctx, p); err != nil {
			return false, fmt.Errorf("update player: %w", err)
		}
	} else {
		id, err := s.idGen.NewID()
		if err != nil {
			return false, fmt.Errorf("generate player id: %w", err)
		}
		name := ext.Name
		if name == "" {
			name = ext.PlatformID()
		}
		p = player.Player{
			ID:         id,
			PlatformID: ext.PlatformID(),
			Name:       name,
			Price:      price,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := p.Validate(); err != nil {
			return false, fmt.Errorf("validate player: %w", err)
		}
		if err := s.playerRepo.Create(ctx, p); err != nil {
			return false, fmt.Errorf("create player: %w", err)
		}
		wasCreated = true
	}

	record := stats.PlayerEventStats{
		PlayerID: p.ID,
		EventID:  eventID,
		Line:     line,
	}
	if err := record.Validate(); err != nil {
		return false, fmt.Errorf("validate stat line: %w", err)
	}
	if err := s.statsRepo.Upsert(ctx, record); err != nil {
		return false, fmt.Errorf("upsert stat line: %w", err)
	}

	return wasCreated, nil
}

// derivePrice floors at the base price so fringe players stay affordable but
// never free.
func derivePrice(line stats.Line) int64 {
	price := int64(line.Goals)*50 + int64(line.Assists)*30 + int64(line.Saves)*20
	if price < basePlayerPrice {
		return basePlayerPrice
	}
	return price
}
