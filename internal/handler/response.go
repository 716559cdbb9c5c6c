// Package handler provides HTTP handlers for the Coursebook API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prn-tf/coursebook/internal/domain"
)

// errorResponse is the body shape for message-style failures.
type errorResponse struct {
	Message string `json:"message"`
}

// validationResponse is the body shape for constraint violations. The
// errors array always carries the full list of broken rules.
type validationResponse struct {
	Errors []string `json:"errors"`
}

// serverErrorResponse is the body shape for unhandled failures. The
// error object stays empty so internals never leak to clients.
type serverErrorResponse struct {
	Message string   `json:"message"`
	Error   struct{} `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeCreated writes a 201 response with a Location header and no body.
func writeCreated(w http.ResponseWriter, location string) {
	w.Header().Set("Location", location)
	w.WriteHeader(http.StatusCreated)
}

// writeNoContent writes a 204 response.
func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// writeError translates a service failure into the API error contract.
// Validation failures render as 400 with the complete message list,
// missing courses as 404, everything else as the generic 500 body.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	if ve, ok := domain.AsValidationError(err); ok {
		writeJSON(w, http.StatusBadRequest, validationResponse{Errors: ve.Messages})
		return
	}

	if errors.Is(err, domain.ErrCourseNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Course Not Found"})
		return
	}

	if errors.Is(err, domain.ErrUserNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "User Not Found"})
		return
	}

	logger.Error().Err(err).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, serverErrorResponse{
		Message: "Internal Server Error",
	})
}

// writeMalformedBody writes the 400 response for a body that is not
// valid JSON.
func writeMalformedBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid Request Body"})
}
