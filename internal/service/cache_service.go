package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-ledger-api/internal/models"
	appErrors "github.com/noah-isme/lms-ledger-api/pkg/errors"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// DefaultCacheTTL applies when no positive TTL is configured.
const DefaultCacheTTL = 2 * time.Minute

// CacheService wraps a CacheRepository with metrics and failure logging.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
}

// NewCacheService constructs a cache service. A nil repo disables caching.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger}
}

// Enabled reports whether a backing store is configured.
func (s *CacheService) Enabled() bool {
	return s != nil && s.repo != nil
}

// Get loads key into dest and reports whether the cache was hit. Store errors
// are logged and reported as misses.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	err := s.repo.Get(ctx, key, dest)
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		s.metrics.RecordCacheLookup(false)
		return false
	}
	s.metrics.RecordCacheLookup(true)
	return true
}

// Set stores value under key; a non-positive ttl uses the default.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if err := s.repo.Set(ctx, key, value, ttl); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes cached values matching pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	return nil
}

const (
	rosterKeyAll     = "roster:all"
	rosterKeyPattern = "roster:*"
)

func rosterCourseKey(courseID string) string {
	return "roster:course:" + courseID
}

// CachedRosterService memoizes course and platform rosters. Per-student reads
// resolve a profile on every call, so they always go to RosterService.
//
// Invalidation runs after a mutation commits, so a miss that read the store
// before the commit can write the old roster back after the delete. Every
// entry carries a TTL (DefaultCacheTTL when none is configured), which bounds
// how long such a stale roster is served.
type CachedRosterService struct {
	inner *RosterService
	cache *CacheService
	ttl   time.Duration
}

// NewCachedRosterService decorates inner with cache.
func NewCachedRosterService(inner *RosterService, cache *CacheService, ttl time.Duration) *CachedRosterService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedRosterService{inner: inner, cache: cache, ttl: ttl}
}

// ByStudent delegates to the wrapped service.
func (s *CachedRosterService) ByStudent(ctx context.Context, userID string) ([]models.StudentEnrollment, error) {
	return s.inner.ByStudent(ctx, userID)
}

// ByCourse serves the course roster from cache when present.
func (s *CachedRosterService) ByCourse(ctx context.Context, courseID string) ([]models.CourseEnrollment, error) {
	key := rosterCourseKey(courseID)
	var cached []models.CourseEnrollment
	if courseID != "" && s.cache.Get(ctx, key, &cached) && cached != nil {
		return cached, nil
	}
	enrollments, err := s.inner.ByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, enrollments, s.ttl)
	return enrollments, nil
}

// All serves the platform roster from cache when present.
func (s *CachedRosterService) All(ctx context.Context) ([]models.RosterEntry, error) {
	var cached []models.RosterEntry
	if s.cache.Get(ctx, rosterKeyAll, &cached) && cached != nil {
		return cached, nil
	}
	entries, err := s.inner.All(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, rosterKeyAll, entries, s.ttl)
	return entries, nil
}

// Invalidate drops every cached roster. Called after each ledger mutation.
func (s *CachedRosterService) Invalidate(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, rosterKeyPattern)
}
