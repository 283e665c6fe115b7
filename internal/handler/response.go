package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"Mansoor88-6/mastery-tracker/internal/apperrors"
	"Mansoor88-6/mastery-tracker/internal/auth"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps a service error onto its status code. Unexpected errors are logged
// and reported without detail.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, r *http.Request, err error, action string) {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, apperrors.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, apperrors.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("Request timed out", zap.String("action", action), zap.String("path", r.URL.Path))
		writeError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		logger.Error("Failed to "+action, zap.Error(err), zap.String("path", r.URL.Path))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	return nil
}

// ownerID returns the authenticated user id. The auth middleware guarantees it is present
// on every route except /health.
func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return identity.UserID, true
}
