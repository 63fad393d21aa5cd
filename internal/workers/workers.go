package workers

import (
	"context"
	"time"

	"restorativeLandsAPI/internal/logger"
)

// Job returns how many rows it touched.
type Job func(ctx context.Context) (int64, error)

const jobTimeout = 5 * time.Minute

// StartCleanupWorker runs job on every tick of interval until ctx is done.
// The returned channel closes once the worker has exited.
func StartCleanupWorker(ctx context.Context, name string, interval time.Duration, job Job) <-chan struct{} {
	done := make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("cleanup worker stopped", "worker", name)
				return
			case <-ticker.C:
				run(ctx, name, job)
			}
		}
	}()

	return done
}

func run(ctx context.Context, name string, job Job) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	n, err := job(ctx)
	if err != nil {
		logger.Error("cleanup job failed", "worker", name, "err", err)
		return
	}
	if n > 0 {
		logger.Info("cleanup job finished", "worker", name, "rows", n)
	}
}
