package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rlfpro/rocket-fantasy/internal/usecase"
)

// RunImportReplaysJob runs a replay-group import synchronously. QStash calls
// this route back after the importer enqueues a group.
func (h *Handler) RunImportReplaysJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunImportReplaysJob")
	defer span.End()

	if h.importService == nil {
		writeError(ctx, w, fmt.Errorf("%w: import service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req importReplaysJobRequest
	if err := decoder.Decode(&req); err != nil {
		if !errors.Is(err, io.EOF) {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.importService.ImportGroup(ctx, usecase.ImportGroupInput{
		GroupID:    req.GroupID,
		EventName:  req.EventName,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "import replays job failed", "group_id", req.GroupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "import replays job finished",
		"group_id", result.GroupID,
		"event_id", result.EventID,
		"player_count", result.PlayerCount,
		"created_players", result.CreatedPlayers,
		"updated_players", result.UpdatedPlayers,
		"failed_players", result.FailedPlayers,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}
