package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/coursebook/internal/auth"
	"github.com/prn-tf/coursebook/internal/service"
	"github.com/prn-tf/coursebook/internal/validation"
)

// UserHandler handles user registration and the self endpoint.
type UserHandler struct {
	userService *service.UserService
	gate        *auth.Gate
	logger      zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, gate *auth.Gate, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		gate:        gate,
		logger:      logger.With().Str("handler", "user").Logger(),
	}
}

// createUserRequest is the registration request body. Pointer fields
// distinguish an absent field (required fires) from an empty one
// (notblank fires), which map to different messages.
type createUserRequest struct {
	FirstName    *string `json:"firstName" validate:"required,notblank"`
	LastName     *string `json:"lastName" validate:"required,notblank"`
	EmailAddress *string `json:"emailAddress" validate:"required,notblank"`
	Password     *string `json:"password" validate:"required,notblank"`
}

// currentUserResponse is the self endpoint body. The password field
// carries the bcrypt hash, matching the stored representation.
type currentUserResponse struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

// RegisterRoutes registers user routes on the given router.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.With(h.gate.Middleware).Get("/users", h.handleGetCurrentUser)
	r.Post("/users", h.handleCreateUser)
}

// handleGetCurrentUser returns the authenticated caller's own record.
func (h *UserHandler) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		// The gate always binds a user before this handler runs.
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Access Denied"})
		return
	}

	writeJSON(w, http.StatusOK, currentUserResponse{
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		EmailAddress: user.EmailAddress,
		Password:     user.PasswordHash,
	})
}

// handleCreateUser registers a new user.
func (h *UserHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMalformedBody(w)
		return
	}

	if err := validation.Struct(req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	_, err := h.userService.Create(r.Context(), service.CreateUserInput{
		FirstName:    *req.FirstName,
		LastName:     *req.LastName,
		EmailAddress: *req.EmailAddress,
		Password:     *req.Password,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeCreated(w, "/")
}
