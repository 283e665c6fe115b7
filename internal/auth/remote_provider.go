package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"Mansoor88-6/mastery-tracker/internal/apperrors"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// RemoteProvider validates tokens against the identity service's user endpoint
type RemoteProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewRemoteProvider creates a provider for the identity service at baseURL
func NewRemoteProvider(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *RemoteProvider {
	return &RemoteProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (p *RemoteProvider) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("missing token: %w", apperrors.ErrUnauthorized)
	}

	url := fmt.Sprintf("%s/auth/v1/user", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("apikey", p.apiKey)
	}

	// the oauth2 transport sets Authorization: Bearer <token>
	client := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, p.httpClient),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
	client.Timeout = p.httpClient.Timeout

	startTime := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		p.logger.Error("Identity request failed",
			zap.Error(err),
			zap.Duration("duration", duration),
		)
		return nil, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read identity response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		p.logger.Debug("Token rejected by identity service",
			zap.Int("status_code", resp.StatusCode),
			zap.Duration("duration", duration),
		)
		return nil, fmt.Errorf("token rejected: %w", apperrors.ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		p.logger.Error("Identity service error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(body)),
		)
		return nil, fmt.Errorf("identity service returned status %d", resp.StatusCode)
	}

	var identity Identity
	if err := json.Unmarshal(body, &identity); err != nil {
		return nil, fmt.Errorf("failed to parse identity response: %w", err)
	}
	if identity.UserID == "" {
		return nil, fmt.Errorf("identity response has no user id: %w", apperrors.ErrUnauthorized)
	}

	return &identity, nil
}
