package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/rlfpro/rocket-fantasy/internal/domain/roster"
	"github.com/rlfpro/rocket-fantasy/internal/domain/user"
	"github.com/rlfpro/rocket-fantasy/internal/infrastructure/repository/memory"
	idgen "github.com/rlfpro/rocket-fantasy/internal/platform/id"
	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
	"github.com/rlfpro/rocket-fantasy/internal/usecase"
)

const testInternalJobToken = "job-token-1"

type stubVerifier struct {
	principals map[string]user.Principal
}

func (v *stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: token rejected", usecase.ErrUnauthorized)
	}
	return principal, nil
}

// newTestRouter builds the full middleware chain on memory repositories.
func newTestRouter(t *testing.T, importService *usecase.ImportService) http.Handler {
	t.Helper()
	ctx := context.Background()
	logger := logging.NewNop()

	leagueRepo := memory.NewLeagueRepository()
	eventRepo := memory.NewEventRepository()
	playerRepo := memory.NewPlayerRepository()
	statsRepo := memory.NewStatsRepository()
	rosterRepo := memory.NewRosterRepository()
	userRepo := memory.NewUserRepository()

	for _, l := range memory.SeedLeagues() {
		if err := leagueRepo.Create(ctx, l); err != nil {
			t.Fatalf("seed league: %v", err)
		}
	}
	for _, e := range memory.SeedEvents() {
		if err := eventRepo.Create(ctx, e); err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}
	for _, p := range memory.SeedPlayers() {
		if err := playerRepo.Create(ctx, p); err != nil {
			t.Fatalf("seed player: %v", err)
		}
	}
	for _, line := range memory.SeedStats() {
		if err := statsRepo.Upsert(ctx, line); err != nil {
			t.Fatalf("seed stats: %v", err)
		}
	}

	ids := idgen.NewRandomGenerator()
	saver := usecase.NewAutosaver(rosterRepo, time.Hour, nil, logger)

	handler := NewHandler(
		usecase.NewCatalogService(eventRepo, playerRepo, statsRepo, logger),
		usecase.NewLeaderboardService(leagueRepo, rosterRepo, userRepo, logger),
		usecase.NewLeagueService(leagueRepo, rosterRepo, ids, logger),
		usecase.NewRosterService(leagueRepo, eventRepo, playerRepo, statsRepo, rosterRepo, saver, roster.DefaultRules(), ids, logger),
		usecase.NewProfileService(userRepo, logger),
		importService,
		logger,
	)

	verifier := &stubVerifier{principals: map[string]user.Principal{
		"token-user-1": {UserID: "user-1", Email: "one@example.com", DisplayName: "Player One"},
		"token-user-2": {UserID: "user-2", Email: "two@example.com", DisplayName: "Player Two"},
	}}

	return NewRouter(handler, verifier, logger, true, []string{"*"}, testInternalJobToken)
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body %q: %v", rec.Body.String(), err)
	}
	data, _ := body["data"].(map[string]any)
	return data
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListEventsIsPublic(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/v1/events", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	events, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected event array, got %v", body["data"])
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 seeded events, got %d", len(events))
	}
}

func TestGetEventCatalog(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/v1/events/rlcs-2026-major-1/catalog", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	missing := doJSON(t, router, http.MethodGet, "/v1/events/nope/catalog", "", "")
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown event, got %d", missing.Code)
	}
}

func TestRosterRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		method string
		path   string
	}{
		{method: http.MethodGet, path: "/v1/roster?league_id=global&event_id=rlcs-2026-major-1"},
		{method: http.MethodPost, path: "/v1/roster/players"},
		{method: http.MethodPost, path: "/v1/roster/save"},
		{method: http.MethodPut, path: "/v1/roster/name"},
		{method: http.MethodGet, path: "/v1/leagues"},
	}

	for _, tc := range tests {
		rec := doJSON(t, router, tc.method, tc.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/v1/leagues", "bad-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for rejected token, got %d", rec.Code)
	}
}

func TestRosterAddPickFlow(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/v1/roster/players", "token-user-1",
		`{"league_id":"global","event_id":"rlcs-2026-major-1","player_id":"pro-jstn"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data := decodeData(t, rec)
	picks, _ := data["picks"].([]any)
	if len(picks) != 1 {
		t.Fatalf("expected 1 pick, got %v", data["picks"])
	}
	if got := data["total_cost"].(float64); got != 3350 {
		t.Fatalf("expected total cost 3350, got %v", got)
	}
	if got := data["remaining_budget"].(float64); got != 8650 {
		t.Fatalf("expected remaining budget 8650, got %v", got)
	}
	if got := data["max_picks"].(float64); got != 6 {
		t.Fatalf("expected max picks 6, got %v", got)
	}

	dup := doJSON(t, router, http.MethodPost, "/v1/roster/players", "token-user-1",
		`{"league_id":"global","event_id":"rlcs-2026-major-1","player_id":"pro-jstn"}`)
	if dup.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate pick, got %d", dup.Code)
	}

	// The staged state is visible on reads before any save.
	get := doJSON(t, router, http.MethodGet, "/v1/roster?league_id=global&event_id=rlcs-2026-major-1", "token-user-1", "")
	if get.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", get.Code, get.Body.String())
	}
	getData := decodeData(t, get)
	if got, _ := getData["picks"].([]any); len(got) != 1 {
		t.Fatalf("expected staged pick on read, got %v", getData["picks"])
	}

	save := doJSON(t, router, http.MethodPost, "/v1/roster/save", "token-user-1",
		`{"league_id":"global","event_id":"rlcs-2026-major-1"}`)
	if save.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", save.Code, save.Body.String())
	}
}

func TestRosterValidationFailures(t *testing.T) {
	router := newTestRouter(t, nil)

	missingField := doJSON(t, router, http.MethodPost, "/v1/roster/players", "token-user-1",
		`{"league_id":"global","event_id":"rlcs-2026-major-1"}`)
	if missingField.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing player_id, got %d", missingField.Code)
	}

	unknownField := doJSON(t, router, http.MethodPost, "/v1/roster/players", "token-user-1",
		`{"league_id":"global","event_id":"rlcs-2026-major-1","player_id":"pro-jstn","bogus":true}`)
	if unknownField.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", unknownField.Code)
	}
}

func TestRenameRosterTeam(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPut, "/v1/roster/name", "token-user-1",
		`{"league_id":"global","event_id":"rlcs-2026-major-1","team_name":"Whiff City"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data := decodeData(t, rec)
	if got, _ := data["team_name"].(string); got != "Whiff City" {
		t.Fatalf("expected renamed team, got %q", got)
	}
}

func TestLeagueLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t, nil)

	created := doJSON(t, router, http.MethodPost, "/v1/leagues", "token-user-1",
		`{"name":"Office League","password":"hunter2"}`)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", created.Code, created.Body.String())
	}

	data := decodeData(t, created)
	leagueID, _ := data["id"].(string)
	if leagueID == "" {
		t.Fatalf("expected league id in response, got %v", data)
	}
	if got, _ := data["has_password"].(bool); !got {
		t.Fatal("expected has_password=true")
	}
	if _, leaked := data["password"]; leaked {
		t.Fatal("league password must never appear in responses")
	}

	wrongPassword := doJSON(t, router, http.MethodPost, "/v1/leagues/join", "token-user-2",
		`{"name":"Office League","password":"nope"}`)
	if wrongPassword.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", wrongPassword.Code)
	}

	joined := doJSON(t, router, http.MethodPost, "/v1/leagues/join", "token-user-2",
		`{"name":"Office League","password":"hunter2"}`)
	if joined.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", joined.Code, joined.Body.String())
	}

	notCreator := doJSON(t, router, http.MethodDelete, "/v1/leagues/"+leagueID, "token-user-2", "")
	if notCreator.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-creator delete, got %d", notCreator.Code)
	}

	deleted := doJSON(t, router, http.MethodDelete, "/v1/leagues/"+leagueID, "token-user-1", "")
	if deleted.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", deleted.Code, deleted.Body.String())
	}

	globalDelete := doJSON(t, router, http.MethodDelete, "/v1/leagues/global", "token-user-1", "")
	if globalDelete.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for global league delete, got %d", globalDelete.Code)
	}
}

func TestLeaderboardUsesProfileNames(t *testing.T) {
	router := newTestRouter(t, nil)

	add := doJSON(t, router, http.MethodPost, "/v1/roster/players", "token-user-1",
		`{"league_id":"global","event_id":"rlcs-2026-major-1","player_id":"pro-jstn"}`)
	if add.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", add.Code)
	}
	save := doJSON(t, router, http.MethodPost, "/v1/roster/save", "token-user-1",
		`{"league_id":"global","event_id":"rlcs-2026-major-1"}`)
	if save.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", save.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/v1/leagues/global/events/rlcs-2026-major-1/leaderboard", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	entries, _ := body["data"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected 1 leaderboard entry, got %v", body["data"])
	}
	entry, _ := entries[0].(map[string]any)
	// AddRosterPick syncs the caller's display name into the profile store.
	if got, _ := entry["display_name"].(string); got != "Player One" {
		t.Fatalf("expected display name Player One, got %q", got)
	}
	if got, _ := entry["grade"].(string); got == "" {
		t.Fatal("expected a grade in the leaderboard entry")
	}
}

func TestInternalImportJobRoute(t *testing.T) {
	router := newTestRouter(t, nil)

	noToken := doJSON(t, router, http.MethodPost, "/v1/internal/jobs/import-replays", "",
		`{"group_id":"g1"}`)
	if noToken.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without job token, got %d", noToken.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/import-replays", strings.NewReader(`{"group_id":"g1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Job-Token", testInternalJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// No import service wired: the route authenticates but reports the
	// dependency as unavailable.
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without import service, got %d: %s", rec.Code, rec.Body.String())
	}
}
