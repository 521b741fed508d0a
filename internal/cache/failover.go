package cache

import (
	"context"
	"sync/atomic"
	"time"

	"recstudio/internal/domain"
	"recstudio/internal/metrics"

	"github.com/rs/zerolog"
)

// retryAfter is how long a downed primary stays benched before the next
// recovery attempt.
const retryAfter = time.Minute

// FailoverDefaultsCache serves from primary (Redis) until it errors, then
// switches to fallback (memory) and probes the primary again after
// retryAfter.
type FailoverDefaultsCache struct {
	primary   DefaultsCache
	fallback  DefaultsCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverDefaultsCache(primary, fallback DefaultsCache, logger *zerolog.Logger) *FailoverDefaultsCache {
	return &FailoverDefaultsCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverDefaultsCache) markDown(err error) {
	c.logger.Error().Err(err).Msg("primary defaults cache failed, falling back to memory")
	c.isDown.Store(true)
	c.lastCheck.Store(time.Now().UnixNano())
	metrics.IncCacheFailover()
}

func (c *FailoverDefaultsCache) shouldRetry() bool {
	return time.Since(time.Unix(0, c.lastCheck.Load())) > retryAfter
}

func (c *FailoverDefaultsCache) markRecovered() {
	c.isDown.Store(false)
	c.logger.Info().Msg("primary defaults cache recovered")
	metrics.IncCacheFailover()
}

func (c *FailoverDefaultsCache) Get(ctx context.Context, studioID int64) (*domain.StudioDefaults, error) {
	if !c.isDown.Load() {
		d, err := c.primary.Get(ctx, studioID)
		if err == nil {
			return d, nil
		}
		c.markDown(err)
	} else if c.shouldRetry() {
		d, err := c.primary.Get(ctx, studioID)
		if err == nil {
			c.markRecovered()
			return d, nil
		}
		c.lastCheck.Store(time.Now().UnixNano())
	}

	return c.fallback.Get(ctx, studioID)
}

func (c *FailoverDefaultsCache) Set(ctx context.Context, d *domain.StudioDefaults) error {
	if !c.isDown.Load() {
		err := c.primary.Set(ctx, d)
		if err == nil {
			return nil
		}
		c.markDown(err)
	}

	return c.fallback.Set(ctx, d)
}

// Invalidate clears both layers: a stale fallback entry must not resurface
// after the primary recovers.
func (c *FailoverDefaultsCache) Invalidate(ctx context.Context, studioID int64) error {
	if !c.isDown.Load() {
		if err := c.primary.Invalidate(ctx, studioID); err != nil {
			c.markDown(err)
		}
	}

	return c.fallback.Invalidate(ctx, studioID)
}
