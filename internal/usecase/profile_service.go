package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rlfpro/rocket-fantasy/internal/domain/user"
	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
)

// ProfileService keeps leaderboard display names in sync with the identity
// provider.
type ProfileService struct {
	userRepo user.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewProfileService(userRepo user.Repository, logger *logging.Logger) *ProfileService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ProfileService{
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Ensure records the user's display name, writing only when it changed.
func (s *ProfileService) Ensure(ctx context.Context, userID, displayName string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Ensure")
	defer span.End()

	userID = strings.TrimSpace(userID)
	displayName = strings.TrimSpace(displayName)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if displayName == "" {
		displayName = userID
	}

	existing, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if exists && existing.DisplayName == displayName {
		return nil
	}

	now := s.now().UTC()
	profile := user.Profile{
		ID:          userID,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if exists {
		profile.CreatedAt = existing.CreatedAt
	}
	if err := s.userRepo.Upsert(ctx, profile); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}
