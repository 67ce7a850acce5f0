// Package timeouts centralizes context deadlines for database and
// external API calls so individual handlers don't pick magic numbers.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type settings struct {
	ping   time.Duration
	short  time.Duration
	medium time.Duration
	long   time.Duration
	batch  time.Duration
}

var (
	mu  sync.RWMutex
	cur = settings{
		ping:   2 * time.Second,
		short:  3 * time.Second,
		medium: 5 * time.Second,
		long:   15 * time.Second,
		batch:  60 * time.Second,
	}
)

// Configure overrides the default durations. Zero values keep the
// current setting.
func Configure(ping, short, medium, long, batch time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if ping > 0 {
		cur.ping = ping
	}
	if short > 0 {
		cur.short = short
	}
	if medium > 0 {
		cur.medium = medium
	}
	if long > 0 {
		cur.long = long
	}
	if batch > 0 {
		cur.batch = batch
	}
}

func Ping() time.Duration   { mu.RLock(); defer mu.RUnlock(); return cur.ping }
func Short() time.Duration  { mu.RLock(); defer mu.RUnlock(); return cur.short }
func Medium() time.Duration { mu.RLock(); defer mu.RUnlock(); return cur.medium }
func Long() time.Duration   { mu.RLock(); defer mu.RUnlock(); return cur.long }
func Batch() time.Duration  { mu.RLock(); defer mu.RUnlock(); return cur.batch }

// WithTimeout wraps ctx with the given deadline. If the parent already
// has an earlier deadline, that one wins and we log at debug level.
func WithTimeout(ctx context.Context, d time.Duration, logger *zap.Logger) (context.Context, context.CancelFunc) {
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) < d {
		if logger != nil {
			logger.Debug("parent deadline shorter than requested timeout",
				zap.Duration("requested", d),
				zap.Duration("remaining", time.Until(dl)))
		}
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
