package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Mansoor88-6/mastery-tracker/internal/apperrors"

	"go.uber.org/zap"
)

func TestRemoteProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("apikey") != "anon-key" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			json.NewEncoder(w).Encode(map[string]any{"id": "user-1", "email": "a@example.com", "role": "authenticated"})
		case "Bearer broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg":"invalid JWT"}`))
		}
	}))
	defer server.Close()

	provider := NewRemoteProvider(server.URL+"/", "anon-key", 2*time.Second, zap.NewNop())

	identity, err := provider.Authenticate(context.Background(), "good")
	if err != nil {
		t.Fatalf("Authenticate(good): %v", err)
	}
	if identity.UserID != "user-1" || identity.Email != "a@example.com" {
		t.Errorf("identity = %+v", identity)
	}

	if _, err := provider.Authenticate(context.Background(), "expired"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("Authenticate(expired) error = %v, want ErrUnauthorized", err)
	}
	if _, err := provider.Authenticate(context.Background(), ""); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("Authenticate(empty) error = %v, want ErrUnauthorized", err)
	}

	_, err = provider.Authenticate(context.Background(), "broken")
	if err == nil || errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("Authenticate(broken) error = %v, want provider error", err)
	}
}

func TestStaticProvider(t *testing.T) {
	provider := NewStaticProvider(map[string]string{"dev-token": "user-1"})

	identity, err := provider.Authenticate(context.Background(), "dev-token")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if identity.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", identity.UserID)
	}

	if _, err := provider.Authenticate(context.Background(), "other"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("Authenticate(other) error = %v, want ErrUnauthorized", err)
	}
}

type failingProvider struct{}

func (failingProvider) Authenticate(context.Context, string) (*Identity, error) {
	return nil, errors.New("connection refused")
}

func TestMiddleware(t *testing.T) {
	var seen *Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Middleware(NewStaticProvider(map[string]string{"dev-token": "user-1"}), zap.NewNop())(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "valid token", header: "Bearer dev-token", wantStatus: http.StatusNoContent, wantUser: "user-1"},
		{name: "lowercase scheme", header: "bearer dev-token", wantStatus: http.StatusNoContent, wantUser: "user-1"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic dev-token", wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantUser == "" {
				if seen != nil {
					t.Errorf("handler ran for rejected request")
				}
				var body map[string]string
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body["error"] != "Unauthorized" {
					t.Errorf("error = %q, want Unauthorized", body["error"])
				}
				return
			}
			if seen == nil || seen.UserID != tt.wantUser {
				t.Errorf("identity = %+v, want user %s", seen, tt.wantUser)
			}
		})
	}
}

func TestMiddlewareProviderFailure(t *testing.T) {
	handler := Middleware(failingProvider{}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
