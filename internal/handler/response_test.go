package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"Mansoor88-6/mastery-tracker/internal/apperrors"

	"go.uber.org/zap"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation",
			err:         apperrors.Validation("Name and category are required"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Name and category are required",
		},
		{
			name:        "not found",
			err:         fmt.Errorf("task abc: %w", apperrors.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Not found",
		},
		{
			name:        "unauthorized",
			err:         apperrors.ErrUnauthorized,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Unauthorized",
		},
		{
			name:        "deadline",
			err:         fmt.Errorf("failed to query tasks: %w", context.DeadlineExceeded),
			wantStatus:  http.StatusGatewayTimeout,
			wantMessage: "request timed out",
		},
		{
			name:        "internal",
			err:         errors.New("disk I/O error"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)

			writeServiceError(rec, zap.NewNop(), req, tt.err, "test")

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var body errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.wantMessage {
				t.Errorf("error = %q, want %q", body.Error, tt.wantMessage)
			}
		})
	}
}

func TestHandlersRejectMissingIdentity(t *testing.T) {
	rec := httptest.NewRecorder()
	Me(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
