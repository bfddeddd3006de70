package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rlfpro/rocket-fantasy/internal/domain/league"
	"github.com/rlfpro/rocket-fantasy/internal/domain/roster"
	idgen "github.com/rlfpro/rocket-fantasy/internal/platform/id"
	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
)

const maxLeagueNameLength = 40

// CreateLeagueInput is the incoming payload for league creation. Password is
// optional; an empty password makes the league open to anyone who knows its
// name.
type CreateLeagueInput struct {
	UserID   string
	Name     string
	Password string
}

// JoinLeagueInput joins by name plus password, matching the web client flow.
type JoinLeagueInput struct {
	UserID   string
	Name     string
	Password string
}

type LeagueService struct {
	leagueRepo league.Repository
	rosterRepo roster.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	rosterRepo roster.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		rosterRepo: rosterRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// ListLeagues returns the global league followed by the user's memberships.
func (s *LeagueService) ListLeagues(ctx context.Context, userID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	leagues, err := s.leagueRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

// CreateLeague creates a league and joins the creator.
func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	input.Password = strings.TrimSpace(input.Password)

	if input.UserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if len(input.Name) > maxLeagueNameLength {
		return league.League{}, fmt.Errorf("%w: league name exceeds %d characters", ErrInvalidInput, maxLeagueNameLength)
	}

	_, exists, err := s.leagueRepo.GetByName(ctx, input.Name)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by name: %w", err)
	}
	if exists {
		return league.League{}, fmt.Errorf("%w: league name %q is taken", ErrInvalidInput, input.Name)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}

	now := s.now().UTC()
	created := league.League{
		ID:        id,
		Name:      input.Name,
		Password:  input.Password,
		CreatorID: input.UserID,
		CreatedAt: now,
	}
	if err := created.Validate(); err != nil {
		return league.League{}, fmt.Errorf("validate league: %w", err)
	}

	if err := s.leagueRepo.Create(ctx, created); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}
	if err := s.leagueRepo.AddMember(ctx, league.Membership{
		LeagueID: created.ID,
		UserID:   input.UserID,
		JoinedAt: now,
	}); err != nil {
		return league.League{}, fmt.Errorf("join created league: %w", err)
	}

	s.logger.InfoContext(ctx, "league created",
		"league_id", created.ID,
		"league_name", created.Name,
		"creator_id", input.UserID,
	)

	return created, nil
}

// JoinLeague adds the user to a league looked up by name. Joining a league
// the user is already in succeeds without a second membership row.
func (s *LeagueService) JoinLeague(ctx context.Context, input JoinLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinLeague")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	input.Password = strings.TrimSpace(input.Password)

	if input.UserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}

	found, exists, err := s.leagueRepo.GetByName(ctx, input.Name)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by name: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league %q", ErrNotFound, input.Name)
	}
	if found.Password != "" && found.Password != input.Password {
		return league.League{}, fmt.Errorf("%w: wrong league password", ErrUnauthorized)
	}

	member, err := s.leagueRepo.IsMember(ctx, found.ID, input.UserID)
	if err != nil {
		return league.League{}, fmt.Errorf("check league membership: %w", err)
	}
	if member {
		return found, nil
	}

	if err := s.leagueRepo.AddMember(ctx, league.Membership{
		LeagueID: found.ID,
		UserID:   input.UserID,
		JoinedAt: s.now().UTC(),
	}); err != nil {
		return league.League{}, fmt.Errorf("add league member: %w", err)
	}

	s.logger.InfoContext(ctx, "league joined",
		"league_id", found.ID,
		"user_id", input.UserID,
	)

	return found, nil
}

// DeleteLeague removes a league and its rosters. Only the creator may
// delete, and the global league is never deletable.
func (s *LeagueService) DeleteLeague(ctx context.Context, userID, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.DeleteLeague")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" || leagueID == "" {
		return fmt.Errorf("%w: user_id and league_id are required", ErrInvalidInput)
	}

	found, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if found.IsGlobal {
		return fmt.Errorf("%w: the global league cannot be deleted", ErrInvalidInput)
	}
	if found.CreatorID != userID {
		return fmt.Errorf("%w: only the creator can delete league=%s", ErrUnauthorized, leagueID)
	}

	if err := s.rosterRepo.DeleteByLeague(ctx, leagueID); err != nil {
		return fmt.Errorf("delete league rosters: %w", err)
	}
	if err := s.leagueRepo.Delete(ctx, leagueID); err != nil {
		return fmt.Errorf("delete league: %w", err)
	}

	s.logger.InfoContext(ctx, "league deleted",
		"league_id", leagueID,
		"user_id", userID,
	)

	return nil
}
