package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rlfpro/rocket-fantasy/internal/config"
	"github.com/rlfpro/rocket-fantasy/internal/domain/event"
	"github.com/rlfpro/rocket-fantasy/internal/domain/league"
	"github.com/rlfpro/rocket-fantasy/internal/domain/player"
	"github.com/rlfpro/rocket-fantasy/internal/domain/roster"
	"github.com/rlfpro/rocket-fantasy/internal/domain/stats"
	"github.com/rlfpro/rocket-fantasy/internal/domain/user"
	"github.com/rlfpro/rocket-fantasy/internal/infrastructure/account/identity"
	"github.com/rlfpro/rocket-fantasy/internal/infrastructure/replaystats"
	cacherepo "github.com/rlfpro/rocket-fantasy/internal/infrastructure/repository/cache"
	"github.com/rlfpro/rocket-fantasy/internal/infrastructure/repository/memory"
	"github.com/rlfpro/rocket-fantasy/internal/infrastructure/repository/postgres"
	"github.com/rlfpro/rocket-fantasy/internal/interfaces/httpapi"
	basecache "github.com/rlfpro/rocket-fantasy/internal/platform/cache"
	idgen "github.com/rlfpro/rocket-fantasy/internal/platform/id"
	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
	"github.com/rlfpro/rocket-fantasy/internal/platform/resilience"
	"github.com/rlfpro/rocket-fantasy/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	events  event.Repository
	players player.Repository
	stats   stats.Repository
	leagues league.Repository
	rosters roster.Repository
	users   user.Repository
}

// NewHTTPServer wires repositories, services and the HTTP router from config.
// The returned cleanup flushes pending autosaves and releases the database
// handle; call it after the server has stopped accepting requests.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, db, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.events = cacherepo.NewEventRepository(repos.events, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.stats = cacherepo.NewStatsRepository(repos.stats, store)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	ids := idgen.NewRandomGenerator()
	autosaver := usecase.NewAutosaver(repos.rosters, cfg.AutosaveWindow, nil, logger)

	catalogSvc := usecase.NewCatalogService(repos.events, repos.players, repos.stats, logger)
	leaderboardSvc := usecase.NewLeaderboardService(repos.leagues, repos.rosters, repos.users, logger)
	leagueSvc := usecase.NewLeagueService(repos.leagues, repos.rosters, ids, logger)
	rosterSvc := usecase.NewRosterService(
		repos.leagues,
		repos.events,
		repos.players,
		repos.stats,
		repos.rosters,
		autosaver,
		roster.DefaultRules(),
		ids,
		logger,
	)
	profileSvc := usecase.NewProfileService(repos.users, logger)

	var provider usecase.ReplayGroupProvider
	if cfg.BallchasingToken != "" {
		provider = replaystats.NewClient(replaystats.Config{
			BaseURL: cfg.BallchasingBaseURL,
			Token:   cfg.BallchasingToken,
			Timeout: cfg.BallchasingTimeout,
			Breaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.BallchasingCircuitEnabled,
				FailureThreshold: cfg.BallchasingCircuitFailureCount,
				OpenTimeout:      cfg.BallchasingCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.BallchasingCircuitHalfOpenMaxReq,
			},
		}, logger)
	} else {
		logger.Warn("replay import disabled", "reason", "BALLCHASING_TOKEN is empty")
	}
	importSvc := usecase.NewImportService(provider, repos.events, repos.players, repos.stats, ids, logger)

	verifier := identity.NewClient(
		&http.Client{Timeout: cfg.IdentityTimeout},
		cfg.IdentityBaseURL,
		cfg.IdentityIntrospectPath,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.IdentityCircuitEnabled,
			FailureThreshold: cfg.IdentityCircuitFailureCount,
			OpenTimeout:      cfg.IdentityCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.IdentityCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(catalogSvc, leaderboardSvc, leagueSvc, rosterSvc, profileSvc, importSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func(ctx context.Context) error {
		if err := autosaver.FlushAll(ctx); err != nil {
			logger.ErrorContext(ctx, "flush pending autosaves on shutdown failed", "error", err)
		}
		if db != nil {
			return db.Close()
		}
		return nil
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	if cfg.DBURL == "" {
		logger.Info("running with in-memory repositories", "reason", "DB_URL is empty")
		repos, err := seedMemoryRepositories()
		return repos, nil, err
	}

	db, err := otelsqlx.Connect("postgres",
		normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect database: %w", err)
	}

	return repositories{
		events:  postgres.NewEventRepository(db),
		players: postgres.NewPlayerRepository(db),
		stats:   postgres.NewStatsRepository(db),
		leagues: postgres.NewLeagueRepository(db),
		rosters: postgres.NewRosterRepository(db),
		users:   postgres.NewUserRepository(db),
	}, db, nil
}

func seedMemoryRepositories() (repositories, error) {
	ctx := context.Background()

	leagueRepo := memory.NewLeagueRepository()
	for _, l := range memory.SeedLeagues() {
		if err := leagueRepo.Create(ctx, l); err != nil {
			return repositories{}, fmt.Errorf("seed league %s: %w", l.ID, err)
		}
	}

	eventRepo := memory.NewEventRepository()
	for _, e := range memory.SeedEvents() {
		if err := eventRepo.Create(ctx, e); err != nil {
			return repositories{}, fmt.Errorf("seed event %s: %w", e.ID, err)
		}
	}

	playerRepo := memory.NewPlayerRepository()
	for _, p := range memory.SeedPlayers() {
		if err := playerRepo.Create(ctx, p); err != nil {
			return repositories{}, fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	statsRepo := memory.NewStatsRepository()
	for _, line := range memory.SeedStats() {
		if err := statsRepo.Upsert(ctx, line); err != nil {
			return repositories{}, fmt.Errorf("seed stats %s/%s: %w", line.PlayerID, line.EventID, err)
		}
	}

	return repositories{
		events:  eventRepo,
		players: playerRepo,
		stats:   statsRepo,
		leagues: leagueRepo,
		rosters: memory.NewRosterRepository(),
		users:   memory.NewUserRepository(),
	}, nil
}
