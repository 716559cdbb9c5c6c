package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prn-tf/coursebook/internal/domain"
	"github.com/prn-tf/coursebook/internal/repository"
)

// courseRepository implements repository.CourseRepository for SQLite.
type courseRepository struct {
	db *DB
}

// NewCourseRepository creates a new SQLite course repository.
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
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Description,
		nullString(course.EstimatedTime),
		nullString(course.MaterialsNeeded),
		course.UserID,
		course.CreatedAt.Format(time.RFC3339),
		course.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError(domain.MsgUserMissing)
		}
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	course.ID = id

	return nil
}

// GetByID retrieves a course by ID with its owning user embedded.
func (r *courseRepository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = ?
	`

	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id))
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

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*domain.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
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
		SET title = ?, description = ?, estimated_time = ?, materials_needed = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Description,
		nullString(course.EstimatedTime),
		nullString(course.MaterialsNeeded),
		course.UpdatedAt.Format(time.RFC3339),
		course.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course by ID.
func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrCourseNotFound
	}

	return nil
}

// scanCourse scans a joined course+user row.
func scanCourse(row rowScanner) (*domain.Course, error) {
	course := &domain.Course{User: &domain.User{}}
	var estimatedTime, materialsNeeded sql.NullString
	var courseCreated, courseUpdated, userCreated, userUpdated string

	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&estimatedTime,
		&materialsNeeded,
		&course.UserID,
		&courseCreated,
		&courseUpdated,
		&course.User.ID,
		&course.User.FirstName,
		&course.User.LastName,
		&course.User.EmailAddress,
		&userCreated,
		&userUpdated,
	)
	if err != nil {
		return nil, err
	}

	course.EstimatedTime = scanNullString(estimatedTime)
	course.MaterialsNeeded = scanNullString(materialsNeeded)
	course.CreatedAt, _ = time.Parse(time.RFC3339, courseCreated)
	course.UpdatedAt, _ = time.Parse(time.RFC3339, courseUpdated)
	course.User.CreatedAt, _ = time.Parse(time.RFC3339, userCreated)
	course.User.UpdatedAt, _ = time.Parse(time.RFC3339, userUpdated)

	return course, nil
}

// nullString converts an optional field to its SQL representation.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// scanNullString handles nullable string columns.
func scanNullString(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

// Ensure courseRepository implements repository.CourseRepository.
var _ repository.CourseRepository = (*courseRepository)(nil)
