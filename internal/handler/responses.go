package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/supplyline/catsync/internal/domain"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceErrorToStatus maps domain errors to HTTP status codes and
// user-facing messages.
func mapServiceErrorToStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrLockHeld):
		return http.StatusConflict, ErrMsgSyncAlreadyRunning
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrAuth):
		return http.StatusBadGateway, domain.ErrMsgAuth
	case errors.Is(err, domain.ErrRateLimited), errors.Is(err, domain.ErrServer), errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, domain.ErrClient):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrMappingNotFound):
		return http.StatusNotFound, err.Error()
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
