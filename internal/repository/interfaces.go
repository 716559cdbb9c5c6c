// Package repository defines data access interfaces for Coursebook.
// These interfaces abstract database operations, allowing for different
// implementations (PostgreSQL, SQLite, in-memory for testing) while keeping
// the service layer clean.
package repository

import (
	"context"
	"time"

	"github.com/prn-tf/coursebook/internal/domain"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user. A duplicate email address fails with a
	// *domain.ValidationError; the write is atomic.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email address. The match is
	// case-sensitive and exact.
	GetByEmail(ctx context.Context, emailAddress string) (*domain.User, error)

	// ExistsByEmail checks if a user with the given email address exists.
	ExistsByEmail(ctx context.Context, emailAddress string) (bool, error)
}

// CourseRepository defines the interface for course data access.
type CourseRepository interface {
	// Create creates a new course. A userId referencing no existing user
	// fails with a *domain.ValidationError.
	Create(ctx context.Context, course *domain.Course) error

	// GetByID retrieves a course by ID with its owning user embedded.
	GetByID(ctx context.Context, id int64) (*domain.Course, error)

	// List returns all courses with their owning users embedded.
	List(ctx context.Context) ([]*domain.Course, error)

	// Update updates an existing course. Returns domain.ErrCourseNotFound
	// if no row matches.
	Update(ctx context.Context, course *domain.Course) error

	// Delete deletes a course by ID. Returns domain.ErrCourseNotFound if
	// no row matches.
	Delete(ctx context.Context, id int64) error
}

// Cache defines the interface for caching operations. Implemented by the
// in-memory cache for single-node deployments and by Redis for
// distributed ones.
type Cache interface {
	// Get retrieves a value by key.
	// Returns ErrCacheMiss if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with an optional TTL.
	// If ttl is 0, the value doesn't expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// DeleteMulti removes multiple values.
	DeleteMulti(ctx context.Context, keys ...string) error

	// Exists checks if a key exists.
	Exists(ctx context.Context, key string) (bool, error)
}

// DatabaseHealth is an interface for database lifecycle and health checks.
// Satisfied by both the sqlite and postgres DB wrappers.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Health(ctx context.Context) error
	Close() error
}

// Repositories holds all repository instances. The composition root wires
// the driver-specific implementations in.
type Repositories struct {
	User   UserRepository
	Course CourseRepository
}
