package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/coursebook/internal/domain"
)

// Cache keys for course reads.
const (
	courseListKey   = "courses:all"
	courseKeyPrefix = "course:"
)

// courseKey returns the cache key for a single course.
func courseKey(id int64) string {
	return fmt.Sprintf("%s%d", courseKeyPrefix, id)
}

// CachedCourseRepository decorates a CourseRepository with read-through
// caching. Reads are served from cache when possible; every mutation
// invalidates the affected entries. Cache failures are logged and fall
// through to the source repository, never to the caller.
type CachedCourseRepository struct {
	source CourseRepository
	cache  Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedCourseRepository creates a caching decorator around source.
func NewCachedCourseRepository(source CourseRepository, cache Cache, ttl time.Duration, logger zerolog.Logger) *CachedCourseRepository {
	return &CachedCourseRepository{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "course_cache").Logger(),
	}
}

// Create creates a course and invalidates the list entry.
func (r *CachedCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	if err := r.source.Create(ctx, course); err != nil {
		return err
	}
	r.invalidate(ctx, courseListKey)
	return nil
}

// GetByID retrieves a course, serving from cache on a hit.
func (r *CachedCourseRepository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	key := courseKey(id)

	if data, err := r.cache.Get(ctx, key); err == nil {
		var course domain.Course
		if err := json.Unmarshal(data, &course); err == nil {
			return &course, nil
		}
		r.invalidate(ctx, key)
	}

	course, err := r.source.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, course)
	return course, nil
}

// List returns all courses, serving from cache on a hit.
func (r *CachedCourseRepository) List(ctx context.Context) ([]*domain.Course, error) {
	if data, err := r.cache.Get(ctx, courseListKey); err == nil {
		var courses []*domain.Course
		if err := json.Unmarshal(data, &courses); err == nil {
			return courses, nil
		}
		r.invalidate(ctx, courseListKey)
	}

	courses, err := r.source.List(ctx)
	if err != nil {
		return nil, err
	}

	r.store(ctx, courseListKey, courses)
	return courses, nil
}

// Update updates a course and invalidates its cached entries.
func (r *CachedCourseRepository) Update(ctx context.Context, course *domain.Course) error {
	if err := r.source.Update(ctx, course); err != nil {
		return err
	}
	r.invalidate(ctx, courseKey(course.ID), courseListKey)
	return nil
}

// Delete deletes a course and invalidates its cached entries.
func (r *CachedCourseRepository) Delete(ctx context.Context, id int64) error {
	if err := r.source.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, courseKey(id), courseListKey)
	return nil
}

// store caches a value, logging failures instead of surfacing them.
func (r *CachedCourseRepository) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to marshal cache value")
		return
	}
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("failed to store cache value")
	}
}

// invalidate drops cache entries, logging failures instead of surfacing them.
func (r *CachedCourseRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.cache.DeleteMulti(ctx, keys...); err != nil {
		r.logger.Warn().Err(err).Strs("keys", keys).Msg("failed to invalidate cache")
	}
}

// Ensure CachedCourseRepository implements CourseRepository.
var _ CourseRepository = (*CachedCourseRepository)(nil)
