package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rlfpro/rocket-fantasy/internal/config"
	"github.com/rlfpro/rocket-fantasy/internal/infrastructure/jobqueue"
	"github.com/rlfpro/rocket-fantasy/internal/infrastructure/replaystats"
	"github.com/rlfpro/rocket-fantasy/internal/infrastructure/repository/postgres"
	idgen "github.com/rlfpro/rocket-fantasy/internal/platform/id"
	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
	"github.com/rlfpro/rocket-fantasy/internal/platform/resilience"
	"github.com/rlfpro/rocket-fantasy/internal/usecase"
	"github.com/sourcegraph/conc/pool"
)

const importJobPath = "/v1/internal/jobs/import-replays"

// importer pulls ballchasing replay groups into the player catalog. It either
// runs imports in-process against the database, or enqueues them through
// QStash so the API service picks them up on its internal job route.
func main() {
	var (
		groupsFlag  = flag.String("groups", "", "comma-separated ballchasing group ids (required)")
		eventName   = flag.String("event", "", "event name override; defaults to the group name")
		workers     = flag.Int("workers", 0, "max stat-line workers per import; defaults to IMPORT_MAX_WORKERS")
		enqueue     = flag.Bool("enqueue", false, "enqueue through QStash instead of importing in-process")
		queueDelay  = flag.Duration("delay", 0, "per-group delay between enqueued jobs")
		concurrency = flag.Int("concurrency", 2, "how many groups to import at once")
	)
	flag.Parse()

	groupIDs := splitGroups(*groupsFlag)
	if len(groupIDs) == 0 {
		fmt.Fprintln(os.Stderr, "at least one group id is required, e.g. -groups abc-123,def-456")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *workers <= 0 {
		*workers = cfg.ImportMaxWorkers
	}

	if *enqueue {
		if err := enqueueImports(ctx, cfg, logger, groupIDs, *eventName, *workers, *queueDelay); err != nil {
			logger.Error("enqueue imports failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runImports(ctx, cfg, logger, groupIDs, *eventName, *workers, *concurrency); err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func runImports(ctx context.Context, cfg config.Config, logger *logging.Logger, groupIDs []string, eventName string, workers, concurrency int) error {
	if cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required for in-process imports")
	}
	if cfg.BallchasingToken == "" {
		return fmt.Errorf("BALLCHASING_TOKEN is required for in-process imports")
	}

	db, err := sqlx.Connect("postgres", cfg.DBURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	provider := replaystats.NewClient(replaystats.Config{
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

	svc := usecase.NewImportService(
		provider,
		postgres.NewEventRepository(db),
		postgres.NewPlayerRepository(db),
		postgres.NewStatsRepository(db),
		idgen.NewRandomGenerator(),
		logger,
	)

	if concurrency < 1 {
		concurrency = 1
	}

	p := pool.New().WithErrors().WithMaxGoroutines(concurrency)
	for _, groupID := range groupIDs {
		groupID := groupID
		p.Go(func() error {
			result, err := svc.ImportGroup(ctx, usecase.ImportGroupInput{
				GroupID:    groupID,
				EventName:  eventName,
				MaxWorkers: workers,
			})
			if err != nil {
				return fmt.Errorf("import group %s: %w", groupID, err)
			}
			logger.Info("replay group imported",
				"group_id", result.GroupID,
				"event_id", result.EventID,
				"event_name", result.EventName,
				"players", result.PlayerCount,
				"created", result.CreatedPlayers,
				"updated", result.UpdatedPlayers,
				"failed", result.FailedPlayers,
			)
			return nil
		})
	}

	return p.Wait()
}

func enqueueImports(ctx context.Context, cfg config.Config, logger *logging.Logger, groupIDs []string, eventName string, workers int, delay time.Duration) error {
	if !cfg.QStashEnabled {
		return fmt.Errorf("QSTASH_ENABLED must be true to enqueue imports")
	}

	publisher := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          cfg.QStashBaseURL,
		Token:            cfg.QStashToken,
		TargetBaseURL:    cfg.QStashTargetBaseURL,
		Retries:          cfg.QStashRetries,
		InternalJobToken: cfg.InternalJobToken,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.QStashCircuitEnabled,
			FailureThreshold: cfg.QStashCircuitFailureCount,
			OpenTimeout:      cfg.QStashCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
		},
	}, logger)

	for i, groupID := range groupIDs {
		payload := map[string]any{
			"group_id": groupID,
		}
		if eventName != "" {
			payload["event_name"] = eventName
		}
		if workers > 0 {
			payload["max_workers"] = workers
		}

		jobDelay := delay * time.Duration(i)
		dedupID := "import-replays-" + groupID
		if err := publisher.Enqueue(ctx, importJobPath, payload, jobDelay, dedupID); err != nil {
			return fmt.Errorf("enqueue group %s: %w", groupID, err)
		}
		logger.Info("import job enqueued", "group_id", groupID, "delay", jobDelay.String())
	}

	return nil
}

func splitGroups(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
