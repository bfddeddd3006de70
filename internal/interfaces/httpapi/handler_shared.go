package httpapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rlfpro/rocket-fantasy/internal/domain/event"
	"github.com/rlfpro/rocket-fantasy/internal/domain/league"
	"github.com/rlfpro/rocket-fantasy/internal/domain/roster"
	"github.com/rlfpro/rocket-fantasy/internal/domain/scoring"
	"github.com/rlfpro/rocket-fantasy/internal/domain/user"
	"github.com/rlfpro/rocket-fantasy/internal/usecase"
)

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// ensureProfile mirrors the caller's display name into the profile store so
// leaderboards can resolve names. Failures are logged, never surfaced.
func (h *Handler) ensureProfile(ctx context.Context, principal user.Principal) {
	if h.profileService == nil {
		return
	}

	name := strings.TrimSpace(principal.DisplayName)
	if name == "" {
		name = principal.UserID
	}
	if err := h.profileService.Ensure(ctx, principal.UserID, name); err != nil {
		h.logger.WarnContext(ctx, "ensure profile failed", "user_id", principal.UserID, "error", err)
	}
}

type createLeagueRequest struct {
	Name     string `json:"name" validate:"required,max=40"`
	Password string `json:"password" validate:"omitempty,max=72"`
}

type joinLeagueRequest struct {
	Name     string `json:"name" validate:"required,max=40"`
	Password string `json:"password" validate:"omitempty,max=72"`
}

type addRosterPickRequest struct {
	LeagueID string `json:"league_id" validate:"required"`
	EventID  string `json:"event_id" validate:"required"`
	PlayerID string `json:"player_id" validate:"required"`
}

type renameRosterTeamRequest struct {
	LeagueID string `json:"league_id" validate:"required"`
	EventID  string `json:"event_id" validate:"required"`
	TeamName string `json:"team_name" validate:"required,max=60"`
}

type saveRosterRequest struct {
	LeagueID string `json:"league_id" validate:"required"`
	EventID  string `json:"event_id" validate:"required"`
}

type importReplaysJobRequest struct {
	GroupID    string `json:"group_id" validate:"required"`
	EventName  string `json:"event_name" validate:"omitempty,max=100"`
	MaxWorkers int    `json:"max_workers" validate:"omitempty,min=1,max=16"`
}

type eventDTO struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	BallchasingGroupID string    `json:"ballchasing_group_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func eventToDTO(e event.Event) eventDTO {
	return eventDTO{
		ID:                 e.ID,
		Name:               e.Name,
		BallchasingGroupID: e.BallchasingGroupID,
		CreatedAt:          e.CreatedAt,
	}
}

type statLineDTO struct {
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
	Saves   int `json:"saves"`
	Shots   int `json:"shots"`
	Demos   int `json:"demos"`
	Score   int `json:"score"`
}

type catalogEntryDTO struct {
	PlayerID   string      `json:"player_id"`
	PlayerName string      `json:"player_name"`
	Price      int64       `json:"price"`
	Stats      statLineDTO `json:"stats"`
	Points     float64     `json:"points"`
}

func catalogEntryToDTO(entry usecase.CatalogEntry) catalogEntryDTO {
	return catalogEntryDTO{
		PlayerID:   entry.PlayerID,
		PlayerName: entry.PlayerName,
		Price:      entry.Price,
		Stats: statLineDTO{
			Goals:   entry.Stats.Goals,
			Assists: entry.Stats.Assists,
			Saves:   entry.Stats.Saves,
			Shots:   entry.Stats.Shots,
			Demos:   entry.Stats.Demos,
			Score:   entry.Stats.Score,
		},
		Points: entry.Points,
	}
}

type leaderboardEntryDTO struct {
	Position    int     `json:"position"`
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	TeamName    string  `json:"team_name"`
	Points      float64 `json:"points"`
	Grade       string  `json:"grade"`
	PickCount   int     `json:"pick_count"`
}

func leaderboardEntryToDTO(entry usecase.LeaderboardEntry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		Position:    entry.Position,
		UserID:      entry.UserID,
		DisplayName: entry.DisplayName,
		TeamName:    entry.TeamName,
		Points:      entry.Points,
		Grade:       string(entry.Grade),
		PickCount:   entry.PickCount,
	}
}

type leagueDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatorID   string    `json:"creator_id,omitempty"`
	IsGlobal    bool      `json:"is_global"`
	HasPassword bool      `json:"has_password"`
	CreatedAt   time.Time `json:"created_at"`
}

func leagueToDTO(l league.League) leagueDTO {
	return leagueDTO{
		ID:          l.ID,
		Name:        l.Name,
		CreatorID:   l.CreatorID,
		IsGlobal:    l.IsGlobal,
		HasPassword: l.Password != "",
		CreatedAt:   l.CreatedAt,
	}
}

type rosterPickDTO struct {
	PlayerID   string      `json:"player_id"`
	PlayerName string      `json:"player_name"`
	Price      int64       `json:"price"`
	Stats      statLineDTO `json:"stats"`
	Points     float64     `json:"points"`
}

type rosterDTO struct {
	LeagueID        string          `json:"league_id"`
	EventID         string          `json:"event_id"`
	TeamName        string          `json:"team_name"`
	Picks           []rosterPickDTO `json:"picks"`
	TotalCost       int64           `json:"total_cost"`
	RemainingBudget int64           `json:"remaining_budget"`
	Budget          int64           `json:"budget"`
	MaxPicks        int             `json:"max_picks"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

func rosterToDTO(r roster.Roster, rules roster.Rules) rosterDTO {
	picks := make([]rosterPickDTO, 0, len(r.Picks))
	for _, pick := range r.Picks {
		picks = append(picks, rosterPickDTO{
			PlayerID:   pick.PlayerID,
			PlayerName: pick.PlayerName,
			Price:      pick.Price,
			Stats: statLineDTO{
				Goals:   pick.Stats.Goals,
				Assists: pick.Stats.Assists,
				Saves:   pick.Stats.Saves,
				Shots:   pick.Stats.Shots,
				Demos:   pick.Stats.Demos,
				Score:   pick.Stats.Score,
			},
			Points: scoring.Round2(scoring.Score(pick.Stats)),
		})
	}

	dto := rosterDTO{
		LeagueID:        r.LeagueID,
		EventID:         r.EventID,
		TeamName:        r.TeamName,
		Picks:           picks,
		TotalCost:       r.TotalCost(),
		RemainingBudget: roster.RemainingBudget(r, rules),
		Budget:          rules.Budget,
		MaxPicks:        rules.MaxPicks,
	}
	if !r.UpdatedAt.IsZero() {
		updatedAt := r.UpdatedAt
		dto.UpdatedAt = &updatedAt
	}

	return dto
}
