package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"newsportal/internal/handler/http/respond"
	pgRepo "newsportal/internal/infra/adapter/persistence/postgres"
	"newsportal/internal/infra/db"
	"newsportal/internal/observability/logging"
	newsUC "newsportal/internal/usecase/news"
	"newsportal/pkg/config"
)

// waitForMigrations blocks until the API process has applied the schema.
// Both containers start together; the worker just has to wait its turn.
func waitForMigrations(logger *slog.Logger, database *sql.DB) {
	const probe = "SELECT 1 FROM news LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	waitForMigrations(logger, database)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startMetricsServer(ctx, logger)

	trans, err := newTranslator(logger)
	if err != nil {
		logger.Error("translator setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	newsRepo := pgRepo.NewNewsRepo(database)
	reconciler := &newsUC.Reconciler{
		Repo:      newsRepo,
		Sync:      &newsUC.Synchronizer{Repo: newsRepo, Translator: trans},
		BatchSize: config.GetEnvInt("RECONCILE_BATCH_SIZE", 50),
	}

	startCronWorker(ctx, logger, reconciler)
}

// startCronWorker schedules the reconciliation sweep and blocks until a
// shutdown signal arrives. Overlapping runs are skipped, not queued.
func startCronWorker(ctx context.Context, logger *slog.Logger, reconciler *newsUC.Reconciler) {
	schedule := config.GetEnvString("RECONCILE_CRON_SCHEDULE", "*/10 * * * *")

	loc := time.UTC
	if tz := os.Getenv("WORKER_TIMEZONE"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			logger.Error("invalid timezone, using UTC",
				slog.String("timezone", tz), slog.Any("error", err))
		} else {
			loc = parsed
		}
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	_, err := c.AddFunc(schedule, func() {
		runReconcileJob(logger, reconciler)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()
	logger.Info("worker started",
		slog.String("schedule", schedule),
		slog.String("timezone", loc.String()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		logger.Warn("reconcile job did not finish before shutdown deadline")
	}
	logger.Info("worker stopped")
}

// runReconcileJob executes one sweep with a timeout.
func runReconcileJob(logger *slog.Logger, reconciler *newsUC.Reconciler) {
	timeout := config.GetEnvDuration("RECONCILE_TIMEOUT", 5*time.Minute)
	if err := config.ValidatePositiveDuration(timeout); err != nil {
		logger.Warn("invalid RECONCILE_TIMEOUT, using 5m", slog.Any("error", err))
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("reconcile started")
	stats, err := reconciler.Run(ctx)
	if err != nil {
		logger.Error("reconcile failed", slog.Any("error", respond.SanitizeError(err)))
		return
	}

	logger.Info("reconcile completed",
		slog.Int("scanned", stats.Scanned),
		slog.Int("repaired", stats.Repaired),
		slog.Int("failed", stats.Failed),
		slog.Duration("duration", stats.Duration))
}
