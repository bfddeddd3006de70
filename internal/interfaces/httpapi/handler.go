package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
	"github.com/rlfpro/rocket-fantasy/internal/usecase"
)

type Handler struct {
	catalogService     *usecase.CatalogService
	leaderboardService *usecase.LeaderboardService
	leagueService      *usecase.LeagueService
	rosterService      *usecase.RosterService
	profileService     *usecase.ProfileService
	importService      *usecase.ImportService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	leaderboardService *usecase.LeaderboardService,
	leagueService *usecase.LeagueService,
	rosterService *usecase.RosterService,
	profileService *usecase.ProfileService,
	importService *usecase.ImportService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalogService:     catalogService,
		leaderboardService: leaderboardService,
		leagueService:      leagueService,
		rosterService:      rosterService,
		profileService:     profileService,
		importService:      importService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	events, err := h.catalogService.ListEvents(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list events failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEventCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventCatalog")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	entries, err := h.catalogService.EventCatalog(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get event catalog failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]catalogEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, catalogEntryToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	eventID := strings.TrimSpace(r.PathValue("eventID"))
	entries, err := h.leaderboardService.Leaderboard(ctx, leagueID, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "league_id", leagueID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardEntryToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
