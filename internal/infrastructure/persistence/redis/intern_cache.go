package redis

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/intern-hub/intern-placement-hub/internal/domain/intern"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
	"github.com/intern-hub/intern-placement-hub/pkg/logger"
)

// InternCache is the read-through cache for intern details. Any cache error
// degrades to a miss; the store stays the source of truth.
type InternCache struct {
	cache *Cache
	ttl   time.Duration
	log   *logger.Logger
}

// NewInternCache creates the intern cache.
func NewInternCache(cache *Cache, ttl time.Duration, log *logger.Logger) *InternCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &InternCache{cache: cache, ttl: ttl, log: log}
}

// Get returns the cached intern, if present.
func (c *InternCache) Get(ctx context.Context, internID string) (*intern.Intern, bool) {
	var i intern.Intern
	if err := c.cache.Get(ctx, InternKey(internID), &i); err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.log.Debug("intern cache read failed", zap.String("intern_id", internID), zap.Error(err))
		}
		return nil, false
	}
	return &i, true
}

// Set stores the intern. Failures are logged and swallowed.
func (c *InternCache) Set(ctx context.Context, i *intern.Intern) {
	if i == nil {
		return
	}
	if err := c.cache.Set(ctx, InternKey(i.ID), i, c.ttl); err != nil {
		c.log.Debug("intern cache write failed", zap.String("intern_id", i.ID), zap.Error(err))
	}
}

// Invalidate drops the cached intern.
func (c *InternCache) Invalidate(ctx context.Context, internID string) {
	if err := c.cache.Delete(ctx, InternKey(internID)); err != nil {
		c.log.Debug("intern cache invalidation failed", zap.String("intern_id", internID), zap.Error(err))
	}
}

// InvalidationHandler returns an event handler that drops the cache entry on
// every intern lifecycle event, for subscription on the event bus.
func (c *InternCache) InvalidationHandler(ctx context.Context) shared.EventHandler {
	return shared.EventHandlerFunc(func(event shared.Event) error {
		switch event.Type() {
		case shared.EventInternPromoted, shared.EventInternAccountCreated,
			shared.EventInternAssigned, shared.EventInternProfileUpdated,
			shared.EventInternSuspended, shared.EventInternUnsuspended,
			shared.EventInternCompleted, shared.EventInternTerminated,
			shared.EventInternCertificateIssued:
			c.Invalidate(ctx, event.AggregateID())
		}
		return nil
	})
}
