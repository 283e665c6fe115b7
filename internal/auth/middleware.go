package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"Mansoor88-6/mastery-tracker/internal/apperrors"

	"go.uber.org/zap"
)

// Middleware rejects requests without a valid bearer token and stores the caller's Identity in the request context
func Middleware(provider Provider, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			identity, err := provider.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, apperrors.ErrUnauthorized) {
					logger.Error("Authentication failed", zap.Error(err), zap.String("path", r.URL.Path))
					writeError(w, http.StatusInternalServerError, "Internal server error")
					return
				}
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "Unauthorized")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
