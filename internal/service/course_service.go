package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/coursebook/internal/domain"
	"github.com/prn-tf/coursebook/internal/repository"
)

// CourseService handles course catalog operations.
type CourseService struct {
	courseRepo repository.CourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo repository.CourseRepository, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		logger:     logger.With().Str("service", "course").Logger(),
	}
}

// CreateCourseInput contains the data needed to create a course.
type CreateCourseInput struct {
	Title           string
	Description     string
	EstimatedTime   *string
	MaterialsNeeded *string
	OwnerID         int64
}

// CreateCourseOutput contains the result of creating a course.
type CreateCourseOutput struct {
	Course *domain.Course
}

// Create stores a new course owned by the authenticated user. A userId
// that references no existing user surfaces as a *domain.ValidationError.
func (s *CourseService) Create(ctx context.Context, input CreateCourseInput) (*CreateCourseOutput, error) {
	course := domain.NewCourse(input.Title, input.Description, input.EstimatedTime, input.MaterialsNeeded, input.OwnerID)

	if err := s.courseRepo.Create(ctx, course); err != nil {
		if _, ok := domain.AsValidationError(err); ok {
			return nil, err
		}
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create course")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("course_id", course.ID).
		Int64("user_id", course.UserID).
		Msg("course created")

	return &CreateCourseOutput{Course: course}, nil
}

// List returns all courses with their owning users embedded. An empty
// catalog yields an empty slice, never nil.
func (s *CourseService) List(ctx context.Context) ([]*domain.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list courses")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return courses, nil
}

// GetByID retrieves a single course with its owning user embedded.
func (s *CourseService) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("course_id", id).Msg("failed to get course")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return course, nil
}

// UpdateCourseInput contains the data needed to update a course.
type UpdateCourseInput struct {
	ID              int64
	Title           string
	Description     string
	EstimatedTime   *string
	MaterialsNeeded *string
}

// Update overwrites the mutable fields of an existing course. Ownership
// is intentionally not enforced: any authenticated user may update any
// course. Returns domain.ErrCourseNotFound when no course matches.
func (s *CourseService) Update(ctx context.Context, input UpdateCourseInput) error {
	course, err := s.courseRepo.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return err
		}
		s.logger.Error().Err(err).Int64("course_id", input.ID).Msg("failed to load course for update")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	course.Title = input.Title
	course.Description = input.Description
	course.EstimatedTime = input.EstimatedTime
	course.MaterialsNeeded = input.MaterialsNeeded
	course.UpdatedAt = time.Now().UTC()

	if err := s.courseRepo.Update(ctx, course); err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return err
		}
		s.logger.Error().Err(err).Int64("course_id", input.ID).Msg("failed to update course")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("course_id", input.ID).Msg("course updated")
	return nil
}

// Delete removes a course by ID. Like Update, any authenticated user may
// delete any course. Returns domain.ErrCourseNotFound when no course
// matches.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return err
		}
		s.logger.Error().Err(err).Int64("course_id", id).Msg("failed to delete course")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("course_id", id).Msg("course deleted")
	return nil
}
