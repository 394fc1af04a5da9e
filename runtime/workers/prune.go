package workers

import (
	"context"
	"log/slog"
	"time"
)

const DefaultPruneInterval = 15 * time.Second

// Pruner drops expired messages at now and returns how many were removed.
type Pruner interface {
	Prune(ctx context.Context, now time.Time) int
}

// PruneWorker applies the TTL on a fixed cadence, even when nothing changed.
type PruneWorker struct {
	log      *slog.Logger
	pruner   Pruner
	interval time.Duration
	now      func() time.Time
}

// NewPruneWorker falls back to DefaultPruneInterval when interval is not positive.
func NewPruneWorker(log *slog.Logger, pruner Pruner, interval time.Duration, now func() time.Time) *PruneWorker {
	if now == nil {
		now = time.Now
	}
	if interval <= 0 {
		log.Warn("Invalid prune interval, using default", "interval", interval, "default", DefaultPruneInterval)
		interval = DefaultPruneInterval
	}
	return &PruneWorker{log: log, pruner: pruner, interval: interval, now: now}
}

func (w *PruneWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping prune")
			return nil
		case <-ticker.C:
			if removed := w.pruner.Prune(ctx, w.now()); removed > 0 {
				w.log.Debug("Periodic prune", "removed", removed)
			}
		}
	}
}
