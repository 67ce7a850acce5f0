// Package runs waits for actor runs to reach a terminal state by
// polling the run-status endpoint on a fixed interval.
package runs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/apify"
	"go.uber.org/zap"
)

// ErrTimeout is returned when the run does not finish within the
// attempt budget.
var ErrTimeout = errors.New("actor run did not finish in time")

// PollFunc fetches the current state of a run.
type PollFunc func(ctx context.Context, runID string) (apify.Run, error)

// Waiter polls a run until it reaches a terminal state.
type Waiter struct {
	Interval    time.Duration
	MaxAttempts int
	Logger      *zap.Logger
}

// Wait polls until the run finishes, the attempt budget is exhausted,
// or ctx is cancelled. A run that is already terminal returns
// immediately. Runs ending FAILED or ABORTED return an error carrying
// the final status.
func (w Waiter) Wait(ctx context.Context, initial apify.Run, poll PollFunc) (apify.Run, error) {
	run := initial
	if run.Status.Terminal() {
		return finish(run)
	}

	interval := w.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	attempts := w.MaxAttempts
	if attempts <= 0 {
		attempts = 60
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; i < attempts; i++ {
		select {
		case <-ctx.Done():
			return run, ctx.Err()
		case <-ticker.C:
		}

		next, err := poll(ctx, run.ID)
		if err != nil {
			return run, fmt.Errorf("poll run %s: %w", run.ID, err)
		}
		run = next

		if w.Logger != nil {
			w.Logger.Debug("run status",
				zap.String("run_id", run.ID),
				zap.String("status", string(run.Status)),
				zap.Int("attempt", i+1))
		}

		if run.Status.Terminal() {
			return finish(run)
		}
	}

	return run, fmt.Errorf("%w: last status %s after %d attempts", ErrTimeout, run.Status, attempts)
}

func finish(run apify.Run) (apify.Run, error) {
	if run.Status != apify.StatusSucceeded {
		return run, fmt.Errorf("actor run %s ended with status %s", run.ID, run.Status)
	}
	return run, nil
}
