// Package cache holds the studio-defaults read cache: Redis in front of the
// repository, with an in-process fallback when Redis is unreachable.
package cache

import (
	"context"

	"recstudio/internal/domain"
)

// DefaultsCache stores resolved studio defaults keyed by studio id.
// Get returns (nil, nil) on a miss.
type DefaultsCache interface {
	Get(ctx context.Context, studioID int64) (*domain.StudioDefaults, error)
	Set(ctx context.Context, d *domain.StudioDefaults) error
	Invalidate(ctx context.Context, studioID int64) error
}
