package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rlfpro/rocket-fantasy/internal/domain/league"
	"github.com/rlfpro/rocket-fantasy/internal/domain/roster"
	"github.com/rlfpro/rocket-fantasy/internal/domain/scoring"
	"github.com/rlfpro/rocket-fantasy/internal/domain/user"
	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
)

// LeaderboardEntry is one ranked roster. Points carry display rounding;
// ranking is computed on the unrounded sums.
type LeaderboardEntry struct {
	Position    int
	UserID      string
	DisplayName string
	TeamName    string
	Points      float64
	Grade       scoring.Grade
	PickCount   int
}

// LeaderboardService ranks all rosters of a (league, event) pair. Read-only.
type LeaderboardService struct {
	leagueRepo league.Repository
	rosterRepo roster.Repository
	userRepo   user.Repository
	logger     *logging.Logger
}

func NewLeaderboardService(
	leagueRepo league.Repository,
	rosterRepo roster.Repository,
	userRepo user.Repository,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		leagueRepo: leagueRepo,
		rosterRepo: rosterRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (s *LeaderboardService) Leaderboard(ctx context.Context, leagueID, eventID string) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	eventID = strings.TrimSpace(eventID)
	if leagueID == "" || eventID == "" {
		return nil, fmt.Errorf("%w: league_id and event_id are required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	rosters, err := s.rosterRepo.ListByLeagueAndEvent(ctx, leagueID, eventID)
	if err != nil {
		return nil, fmt.Errorf("list rosters: %w", err)
	}
	if len(rosters) == 0 {
		return []LeaderboardEntry{}, nil
	}

	names, err := s.displayNames(ctx, rosters)
	if err != nil {
		return nil, err
	}

	type scored struct {
		r      roster.Roster
		points float64
	}
	ranked := make([]scored, 0, len(rosters))
	for _, r := range rosters {
		var total float64
		for _, pick := range r.Picks {
			total += scoring.Score(pick.Stats)
		}
		ranked = append(ranked, scored{r: r, points: total})
	}

	// Stable keeps repository order for exact ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].points > ranked[j].points
	})

	entries := make([]LeaderboardEntry, 0, len(ranked))
	for idx, item := range ranked {
		avg := 0.0
		if len(item.r.Picks) > 0 {
			avg = item.points / float64(len(item.r.Picks))
		}

		displayName := names[item.r.UserID]
		if displayName == "" {
			displayName = item.r.UserID
		}

		entries = append(entries, LeaderboardEntry{
			Position:    idx + 1,
			UserID:      item.r.UserID,
			DisplayName: displayName,
			TeamName:    item.r.TeamName,
			Points:      scoring.Round2(item.points),
			Grade:       scoring.GradeFor(avg),
			PickCount:   len(item.r.Picks),
		})
	}

	return entries, nil
}

func (s *LeaderboardService) displayNames(ctx context.Context, rosters []roster.Roster) (map[string]string, error) {
	userIDs := make([]string, 0, len(rosters))
	seen := make(map[string]struct{}, len(rosters))
	for _, r := range rosters {
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		userIDs = append(userIDs, r.UserID)
	}

	profiles, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}

	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.DisplayName
	}
	return names, nil
}
