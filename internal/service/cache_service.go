package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ligasur/arena-console/pkg/config"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
)

// CacheRepository abstracts the snapshot cache store.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService fronts the platform list endpoints with a short-lived cache.
// Every successful mutation invalidates the affected lists, so readers keep
// the re-fetch-authoritative semantics.
type CacheService struct {
	repo    CacheRepository
	metrics *MetricsService
	logger  *zap.Logger
	cfg     config.CacheConfig
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, logger *zap.Logger, cfg config.CacheConfig) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, logger: logger, cfg: cfg}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.cfg.Enabled && s.repo != nil
}

// InstitutionTTL is the configured lifetime of cached institution lists.
func (s *CacheService) InstitutionTTL() time.Duration {
	return s.cfg.InstitutionTTL
}

// ScheduleTTL is the configured lifetime of cached schedules.
func (s *CacheService) ScheduleTTL() time.Duration {
	return s.cfg.ScheduleTTL
}

// InstitutionsKey names the cached institution list for an event.
func InstitutionsKey(eventID int64) string {
	return fmt.Sprintf("institutions:%d", eventID)
}

// ScheduleKey names the cached schedule for an event.
func ScheduleKey(eventID int64) string {
	return fmt.Sprintf("schedule:%d", eventID)
}

// Get attempts to retrieve a cached entry. It returns true on a hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	}
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return true
}

// Set stores the value in cache. Failures are logged, never surfaced.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.Set(ctx, key, value, ttl); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes cached values for the provided pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
