package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/coursebook/internal/auth"
	"github.com/prn-tf/coursebook/internal/domain"
	"github.com/prn-tf/coursebook/internal/service"
	"github.com/prn-tf/coursebook/internal/validation"
)

// CourseHandler handles course catalog routes.
type CourseHandler struct {
	courseService *service.CourseService
	gate          *auth.Gate
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService, gate *auth.Gate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		gate:          gate,
		logger:        logger.With().Str("handler", "course").Logger(),
	}
}

// createCourseRequest is the course creation body. The userId names the
// owning user explicitly; it is not inferred from the credential.
type createCourseRequest struct {
	Title           *string `json:"title" validate:"required,notblank"`
	Description     *string `json:"description" validate:"required,notblank"`
	UserID          *int64  `json:"userId" validate:"required"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

// updateCourseRequest is the course update body.
type updateCourseRequest struct {
	Title           *string `json:"title" validate:"required,notblank"`
	Description     *string `json:"description" validate:"required,notblank"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

// courseListResponse wraps the full catalog.
type courseListResponse struct {
	Courses []*domain.Course `json:"courses"`
}

// courseResponse wraps a single course.
type courseResponse struct {
	Course *domain.Course `json:"course"`
}

// RegisterRoutes registers course routes on the given router. Reads are
// public; mutations sit behind the authentication gate.
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/courses", h.handleListCourses)
	r.Get("/courses/{id}", h.handleGetCourse)
	r.With(h.gate.Middleware).Post("/courses", h.handleCreateCourse)
	r.With(h.gate.Middleware).Put("/courses/{id}", h.handleUpdateCourse)
	r.With(h.gate.Middleware).Delete("/courses/{id}", h.handleDeleteCourse)
}

// handleListCourses returns all courses with their owners embedded.
func (h *CourseHandler) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, courseListResponse{Courses: courses})
}

// handleGetCourse returns a single course by id.
func (h *CourseHandler) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Course Not Found"})
		return
	}

	course, err := h.courseService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, courseResponse{Course: course})
}

// handleCreateCourse stores a new course.
func (h *CourseHandler) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMalformedBody(w)
		return
	}

	if err := validation.Struct(req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	out, err := h.courseService.Create(r.Context(), service.CreateCourseInput{
		Title:           *req.Title,
		Description:     *req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
		OwnerID:         *req.UserID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeCreated(w, fmt.Sprintf("/courses/%d", out.Course.ID))
}

// handleUpdateCourse overwrites an existing course's fields.
func (h *CourseHandler) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Course Not Found"})
		return
	}

	var req updateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMalformedBody(w)
		return
	}

	if err := validation.Struct(req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	err = h.courseService.Update(r.Context(), service.UpdateCourseInput{
		ID:              id,
		Title:           *req.Title,
		Description:     *req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeNoContent(w)
}

// handleDeleteCourse removes a course by id.
func (h *CourseHandler) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Course Not Found"})
		return
	}

	if err := h.courseService.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeNoContent(w)
}

// courseID parses the id path parameter. A non-numeric id is treated the
// same as a missing course.
func courseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
