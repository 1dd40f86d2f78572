package service

import (
	"context"
	"errors"
	"time"

	"saathi/internal/cache"
	"saathi/internal/domain"
	"saathi/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ResultCacheService memoizes expensive string results (model output,
// scraped page text) under a namespace. Concurrent misses for the same key
// share one call to the producer.
type ResultCacheService interface {
	Resolve(ctx context.Context, kind, fingerprint string, produce func(ctx context.Context) (string, error)) (string, error)
}

type resultCacheServiceImpl struct {
	cache     domain.Cache
	namespace string
	ttl       time.Duration
	group     singleflight.Group
}

// NewResultCacheService returns a cache backed service. A nil cache still
// collapses concurrent calls but stores nothing.
func NewResultCacheService(c domain.Cache, namespace string, ttl time.Duration) ResultCacheService {
	if c == nil {
		logger.Get().Warn("ResultCacheService initialized with nil cache. Results will not be stored.", zap.String("namespace", namespace))
	}
	return &resultCacheServiceImpl{cache: c, namespace: namespace, ttl: ttl}
}

func (s *resultCacheServiceImpl) generateKey(kind, fingerprint string) string {
	return cache.GenerateCacheKey(s.namespace, kind, fingerprint)
}

// Resolve returns the cached value for (kind, fingerprint) or runs produce.
// Cache failures are logged and never fail the request.
func (s *resultCacheServiceImpl) Resolve(ctx context.Context, kind, fingerprint string, produce func(ctx context.Context) (string, error)) (string, error) {
	key := s.generateKey(kind, fingerprint)

	if s.cache != nil {
		val, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			logger.Get().Debug("Result cache hit", zap.String("key", key))
			return val, nil
		case !errors.Is(err, domain.ErrCacheMiss):
			logger.Get().Warn("Result cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		out, err := produce(ctx)
		if err != nil {
			return "", err
		}
		if s.cache != nil {
			if errSet := s.cache.Set(ctx, key, out, s.ttl); errSet != nil {
				logger.Get().Warn("Result cache write failed", zap.String("key", key), zap.Error(errSet))
			}
		}
		return out, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		logger.Get().Debug("Result shared with concurrent caller", zap.String("key", key))
	}
	return v.(string), nil
}
