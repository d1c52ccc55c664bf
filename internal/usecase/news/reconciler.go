package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newsportal/internal/domain/entity"
	"newsportal/internal/observability/metrics"
	"newsportal/internal/repository"
)

// ReconcileStats summarizes one reconciliation sweep.
type ReconcileStats struct {
	Scanned  int
	Repaired int
	Failed   int
	Duration time.Duration
}

// Reconciler sweeps news items whose paired translation is still missing and
// retries the derivation. It runs on a schedule from the worker process, so a
// transient provider outage heals without operator action.
type Reconciler struct {
	Repo repository.NewsRepository
	Sync *Synchronizer

	// BatchSize caps how many items one sweep picks up.
	BatchSize int
}

// Run performs one sweep. A failure to repair an individual item is counted
// and logged but does not stop the sweep; only a failure to list items does.
func (r *Reconciler) Run(ctx context.Context) (ReconcileStats, error) {
	start := time.Now()

	batch := r.BatchSize
	if batch <= 0 {
		batch = 50
	}

	items, err := r.Repo.ListIncomplete(ctx, batch)
	if err != nil {
		metrics.RecordReconcileRun(false)
		return ReconcileStats{}, fmt.Errorf("list incomplete news: %w", err)
	}

	stats := ReconcileStats{Scanned: len(items)}
	for _, item := range items {
		if err := r.Sync.Ensure(ctx, item); err != nil {
			stats.Failed++
			slog.Warn("reconcile item failed",
				slog.Int64("news_id", item.ID),
				slog.String("error", err.Error()))
			continue
		}
		if item.TranslationStatus == entity.TranslationComplete {
			stats.Repaired++
		}
	}
	stats.Duration = time.Since(start)

	metrics.RecordReconcileRun(true)
	metrics.UpdateNewsIncomplete(int64(stats.Scanned - stats.Repaired))
	if total, err := r.Repo.Count(ctx); err == nil {
		metrics.UpdateNewsTotal(total)
	}

	return stats, nil
}
