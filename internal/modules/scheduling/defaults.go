package scheduling

import (
	"context"
	"errors"
	"fmt"

	"recstudio/internal/domain"

	"gorm.io/gorm"
)

// GetDefaults returns the studio's scheduling defaults, seeding the row from
// the configured fallback on first read. The cache is consulted first, then
// the store, and the cache is back-filled on the way out.
func (s *Service) GetDefaults(ctx context.Context, studioID int64) (*domain.StudioDefaults, error) {
	if d, err := s.cache.Get(ctx, studioID); err == nil && d != nil {
		return d, nil
	}

	d, err := s.defaults.Get(ctx, studioID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		d = &domain.StudioDefaults{
			StudioID:      studioID,
			SessionHours:  s.fallback.DefaultSessionHours,
			BufferMinutes: s.fallback.DefaultBufferMinutes,
		}
		if err := s.defaults.Create(ctx, d); err != nil {
			return nil, fmt.Errorf("seed studio defaults: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("load studio defaults: %w", err)
	}

	_ = s.cache.Set(ctx, d)
	return d, nil
}

// SetDefaults applies a partial update and invalidates the cached entry.
func (s *Service) SetDefaults(ctx context.Context, studioID int64, req DefaultsRequest) (*domain.StudioDefaults, error) {
	if req.SessionHours == nil && req.BufferMinutes == nil {
		return nil, ErrValidation
	}
	if req.SessionHours != nil && *req.SessionHours < 1 {
		return nil, ErrValidation
	}
	if req.BufferMinutes != nil && *req.BufferMinutes < 0 {
		return nil, ErrValidation
	}

	// lazy-seeds the row when the studio has never been read
	d, err := s.GetDefaults(ctx, studioID)
	if err != nil {
		return nil, err
	}

	if req.SessionHours != nil {
		d.SessionHours = *req.SessionHours
	}
	if req.BufferMinutes != nil {
		d.BufferMinutes = *req.BufferMinutes
	}

	if err := s.defaults.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update studio defaults: %w", err)
	}

	_ = s.cache.Invalidate(ctx, studioID)
	return d, nil
}
