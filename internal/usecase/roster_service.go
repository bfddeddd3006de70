package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rlfpro/rocket-fantasy/internal/domain/event"
	"github.com/rlfpro/rocket-fantasy/internal/domain/league"
	"github.com/rlfpro/rocket-fantasy/internal/domain/player"
	"github.com/rlfpro/rocket-fantasy/internal/domain/roster"
	"github.com/rlfpro/rocket-fantasy/internal/domain/stats"
	idgen "github.com/rlfpro/rocket-fantasy/internal/platform/id"
	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
)

const maxTeamNameLength = 60

// RosterRef identifies one user's roster for a (league, event) pair.
type RosterRef struct {
	UserID   string
	LeagueID string
	EventID  string
}

// RosterService owns roster reads and mutations. Mutations stage the updated
// state in the autosaver; the debounced flush performs the actual write.
type RosterService struct {
	leagueRepo league.Repository
	eventRepo  event.Repository
	playerRepo player.Repository
	statsRepo  stats.Repository
	rosterRepo roster.Repository
	autosaver  *Autosaver
	rules      roster.Rules
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(
	leagueRepo league.Repository,
	eventRepo event.Repository,
	playerRepo player.Repository,
	statsRepo stats.Repository,
	rosterRepo roster.Repository,
	autosaver *Autosaver,
	rules roster.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		leagueRepo: leagueRepo,
		eventRepo:  eventRepo,
		playerRepo: playerRepo,
		statsRepo:  statsRepo,
		rosterRepo: rosterRepo,
		autosaver:  autosaver,
		rules:      rules,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *RosterService) Rules() roster.Rules {
	return s.rules
}

// GetRoster returns the user's roster with any unflushed staged changes
// applied. A user without a saved roster gets an empty one.
func (s *RosterService) GetRoster(ctx context.Context, ref RosterRef) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetRoster")
	defer span.End()

	ref, err := s.cleanRef(ref)
	if err != nil {
		return roster.Roster{}, err
	}
	if err := s.authorizeLeague(ctx, ref.UserID, ref.LeagueID); err != nil {
		return roster.Roster{}, err
	}

	return s.currentRoster(ctx, ref)
}

// AddPick adds a player to the roster, snapshotting price and event stats.
func (s *RosterService) AddPick(ctx context.Context, ref RosterRef, playerID string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddPick")
	defer span.End()

	ref, err := s.cleanRef(ref)
	if err != nil {
		return roster.Roster{}, err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return roster.Roster{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if err := s.authorizeLeague(ctx, ref.UserID, ref.LeagueID); err != nil {
		return roster.Roster{}, err
	}
	if err := s.validateEvent(ctx, ref.EventID); err != nil {
		return roster.Roster{}, err
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return roster.Roster{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	line, hasLine, err := s.statsRepo.GetByPlayerAndEvent(ctx, playerID, ref.EventID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get player event stats: %w", err)
	}
	if !hasLine {
		return roster.Roster{}, fmt.Errorf("%w: player=%s has no stats for event=%s", ErrNotFound, playerID, ref.EventID)
	}

	current, err := s.currentRoster(ctx, ref)
	if err != nil {
		return roster.Roster{}, err
	}

	pick := roster.Pick{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Price:      p.Price,
		Stats:      line.Line,
	}
	updated, err := roster.AddPick(current, pick, s.rules)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.stage(ctx, ref, updated)
}

// RemovePick drops a player from the roster. Removing an absent player is a
// no-op that still returns the current state.
func (s *RosterService) RemovePick(ctx context.Context, ref RosterRef, playerID string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RemovePick")
	defer span.End()

	ref, err := s.cleanRef(ref)
	if err != nil {
		return roster.Roster{}, err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return roster.Roster{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if err := s.authorizeLeague(ctx, ref.UserID, ref.LeagueID); err != nil {
		return roster.Roster{}, err
	}

	current, err := s.currentRoster(ctx, ref)
	if err != nil {
		return roster.Roster{}, err
	}
	if !current.Contains(playerID) {
		return current, nil
	}

	return s.stage(ctx, ref, roster.RemovePick(current, playerID))
}

// RenameTeam updates the roster's display name.
func (s *RosterService) RenameTeam(ctx context.Context, ref RosterRef, name string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RenameTeam")
	defer span.End()

	ref, err := s.cleanRef(ref)
	if err != nil {
		return roster.Roster{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return roster.Roster{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if len(name) > maxTeamNameLength {
		return roster.Roster{}, fmt.Errorf("%w: team name exceeds %d characters", ErrInvalidInput, maxTeamNameLength)
	}
	if err := s.authorizeLeague(ctx, ref.UserID, ref.LeagueID); err != nil {
		return roster.Roster{}, err
	}

	current, err := s.currentRoster(ctx, ref)
	if err != nil {
		return roster.Roster{}, err
	}
	current.TeamName = name

	return s.stage(ctx, ref, current)
}

// SaveNow flushes any staged state immediately instead of waiting for the
// quiescence window.
func (s *RosterService) SaveNow(ctx context.Context, ref RosterRef) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SaveNow")
	defer span.End()

	ref, err := s.cleanRef(ref)
	if err != nil {
		return roster.Roster{}, err
	}
	if err := s.authorizeLeague(ctx, ref.UserID, ref.LeagueID); err != nil {
		return roster.Roster{}, err
	}

	flushed, had, err := s.autosaver.Flush(ctx, ref.UserID)
	if err != nil {
		return roster.Roster{}, err
	}
	if had {
		s.logger.InfoContext(ctx, "roster saved",
			"user_id", ref.UserID,
			"league_id", flushed.LeagueID,
			"event_id", flushed.EventID,
			"pick_count", len(flushed.Picks),
		)
		return flushed, nil
	}

	return s.currentRoster(ctx, ref)
}

func (s *RosterService) currentRoster(ctx context.Context, ref RosterRef) (roster.Roster, error) {
	if staged, ok := s.autosaver.Staged(ref.UserID, ref.LeagueID, ref.EventID); ok {
		return staged, nil
	}

	saved, exists, err := s.rosterRepo.GetByOwner(ctx, ref.UserID, ref.LeagueID, ref.EventID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get roster: %w", err)
	}
	if exists {
		return saved, nil
	}

	return roster.Roster{
		UserID:   ref.UserID,
		LeagueID: ref.LeagueID,
		EventID:  ref.EventID,
	}, nil
}

func (s *RosterService) stage(ctx context.Context, ref RosterRef, updated roster.Roster) (roster.Roster, error) {
	now := s.now().UTC()
	if updated.ID == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return roster.Roster{}, fmt.Errorf("generate roster id: %w", err)
		}
		updated.ID = id
		updated.CreatedAt = now
	}
	updated.UpdatedAt = now

	if err := s.autosaver.Stage(updated); err != nil {
		return roster.Roster{}, err
	}

	s.logger.DebugContext(ctx, "roster change staged",
		"user_id", ref.UserID,
		"league_id", ref.LeagueID,
		"event_id", ref.EventID,
		"pick_count", len(updated.Picks),
	)

	return updated, nil
}

func (s *RosterService) cleanRef(ref RosterRef) (RosterRef, error) {
	ref.UserID = strings.TrimSpace(ref.UserID)
	ref.LeagueID = strings.TrimSpace(ref.LeagueID)
	ref.EventID = strings.TrimSpace(ref.EventID)

	if ref.UserID == "" {
		return RosterRef{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if ref.LeagueID == "" {
		return RosterRef{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if ref.EventID == "" {
		return RosterRef{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	return ref, nil
}

func (s *RosterService) authorizeLeague(ctx context.Context, userID, leagueID string) error {
	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if l.IsGlobal {
		return nil
	}

	member, err := s.leagueRepo.IsMember(ctx, leagueID, userID)
	if err != nil {
		return fmt.Errorf("check league membership: %w", err)
	}
	if !member {
		return fmt.Errorf("%w: not a member of league=%s", ErrUnauthorized, leagueID)
	}

	return nil
}

func (s *RosterService) validateEvent(ctx context.Context, eventID string) error {
	_, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	return nil
}
