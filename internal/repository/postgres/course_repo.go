package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/prn-tf/coursebook/internal/domain"
	"github.com/prn-tf/coursebook/internal/repository"
)

// courseRepository implements repository.CourseRepository for PostgreSQL.
type courseRepository struct {
	db *DB
}

// NewCourseRepository creates a new PostgreSQL course repository.
func NewCourseRepository(db *DB) repository.CourseRepository {
	return &courseRepository{db: db}
}

// courseColumns selects course fields joined with the owning user.
const courseColumns = `
	c.id, c.title, c.description, c.estimated_time, c.materials_needed,
	c.user_id, c.created_at, c.updated_at,
	u.id, u.first_name, u.last_name, u.email_address, u.created_at, u.updated_at
`

// Create creates a new course.
func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	query := `
		INSERT INTO courses (title, description, estimated_time, materials_needed, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		course.UserID,
		course.CreatedAt,
		course.UpdatedAt,
	).Scan(&course.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError(domain.MsgUserMissing)
		}
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID with its owning user embedded.
func (r *courseRepository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`

	course := &domain.Course{User: &domain.User{}}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.EstimatedTime,
		&course.MaterialsNeeded,
		&course.UserID,
		&course.CreatedAt,
		&course.UpdatedAt,
		&course.User.ID,
		&course.User.FirstName,
		&course.User.LastName,
		&course.User.EmailAddress,
		&course.User.CreatedAt,
		&course.User.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course by ID: %w", err)
	}

	return course, nil
}

// List returns all courses with their owning users embedded.
func (r *courseRepository) List(ctx context.Context) ([]*domain.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*domain.Course, 0)
	for rows.Next() {
		course := &domain.Course{User: &domain.User{}}
		err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.EstimatedTime,
			&course.MaterialsNeeded,
			&course.UserID,
			&course.CreatedAt,
			&course.UpdatedAt,
			&course.User.ID,
			&course.User.FirstName,
			&course.User.LastName,
			&course.User.EmailAddress,
			&course.User.CreatedAt,
			&course.User.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	return courses, nil
}

// Update updates an existing course. The owning user is not changed.
func (r *courseRepository) Update(ctx context.Context, course *domain.Course) error {
	course.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE courses
		SET title = $1, description = $2, estimated_time = $3, materials_needed = $4, updated_at = $5
		WHERE id = $6
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		course.UpdatedAt,
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course by ID.
func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCourseNotFound
	}

	return nil
}

// Ensure courseRepository implements repository.CourseRepository.
var _ repository.CourseRepository = (*courseRepository)(nil)
