package workers

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
)

type Workers struct {
	workers []Worker

	logger *logger.Logger
}

func NewWorkers(logger *logger.Logger, workers ...Worker) *Workers {
	return &Workers{workers: workers, logger: logger}
}

// Run starts every worker on its own goroutine and waits for all of them.
// The first failing worker cancels the others.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for i, worker := range w.workers {
		g.Go(func() error {
			err := worker.Run(gctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Err(err).Int("worker", i).Msg("worker stopped with error")
				return fmt.Errorf("worker %d: %w", i, err)
			}
			return nil
		})
	}

	return g.Wait()
}
