package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/rlfpro/rocket-fantasy/internal/usecase"
)

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	ref := usecase.RosterRef{
		UserID:   principal.UserID,
		LeagueID: strings.TrimSpace(r.URL.Query().Get("league_id")),
		EventID:  strings.TrimSpace(r.URL.Query().Get("event_id")),
	}

	current, err := h.rosterService.GetRoster(ctx, ref)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "user_id", ref.UserID, "league_id", ref.LeagueID, "event_id", ref.EventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(current, h.rosterService.Rules()))
}

func (h *Handler) AddRosterPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddRosterPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req addRosterPickRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.ensureProfile(ctx, principal)

	ref := usecase.RosterRef{UserID: principal.UserID, LeagueID: req.LeagueID, EventID: req.EventID}
	updated, err := h.rosterService.AddPick(ctx, ref, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "add roster pick failed", "user_id", ref.UserID, "league_id", ref.LeagueID, "event_id", ref.EventID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(updated, h.rosterService.Rules()))
}

func (h *Handler) RemoveRosterPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveRosterPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	ref := usecase.RosterRef{
		UserID:   principal.UserID,
		LeagueID: strings.TrimSpace(r.URL.Query().Get("league_id")),
		EventID:  strings.TrimSpace(r.URL.Query().Get("event_id")),
	}

	updated, err := h.rosterService.RemovePick(ctx, ref, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove roster pick failed", "user_id", ref.UserID, "league_id", ref.LeagueID, "event_id", ref.EventID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(updated, h.rosterService.Rules()))
}

func (h *Handler) RenameRosterTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenameRosterTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req renameRosterTeamRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.ensureProfile(ctx, principal)

	ref := usecase.RosterRef{UserID: principal.UserID, LeagueID: req.LeagueID, EventID: req.EventID}
	updated, err := h.rosterService.RenameTeam(ctx, ref, req.TeamName)
	if err != nil {
		h.logger.WarnContext(ctx, "rename roster team failed", "user_id", ref.UserID, "league_id", ref.LeagueID, "event_id", ref.EventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(updated, h.rosterService.Rules()))
}

func (h *Handler) SaveRosterNow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveRosterNow")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req saveRosterRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	ref := usecase.RosterRef{UserID: principal.UserID, LeagueID: req.LeagueID, EventID: req.EventID}
	saved, err := h.rosterService.SaveNow(ctx, ref)
	if err != nil {
		h.logger.WarnContext(ctx, "save roster failed", "user_id", ref.UserID, "league_id", ref.LeagueID, "event_id", ref.EventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(saved, h.rosterService.Rules()))
}
