package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/events", handler.ListEvents)
	mux.HandleFunc("GET /v1/events/{eventID}/catalog", handler.GetEventCatalog)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/events/{eventID}/leaderboard", handler.GetLeaderboard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedLeagueRoutes(mux, handler, verifier)
	registerAuthorizedRosterRoutes(mux, handler, verifier)
}

func registerAuthorizedLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.ListMyLeagues)))
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("POST /v1/leagues/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinLeague)))
	mux.Handle("DELETE /v1/leagues/{leagueID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteLeague)))
}

func registerAuthorizedRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/roster", RequireAuth(verifier, http.HandlerFunc(handler.GetRoster)))
	mux.Handle("POST /v1/roster/players", RequireAuth(verifier, http.HandlerFunc(handler.AddRosterPick)))
	mux.Handle("DELETE /v1/roster/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveRosterPick)))
	mux.Handle("PUT /v1/roster/name", RequireAuth(verifier, http.HandlerFunc(handler.RenameRosterTeam)))
	mux.Handle("POST /v1/roster/save", RequireAuth(verifier, http.HandlerFunc(handler.SaveRosterNow)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/import-replays", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunImportReplaysJob)))
}
