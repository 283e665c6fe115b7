package auth

import (
	"context"
	"fmt"

	"Mansoor88-6/mastery-tracker/internal/apperrors"
)

// Identity is the authenticated caller. UserID is the owner id every store call is scoped to.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
}

// Provider resolves a bearer token to an Identity.
// An unknown or expired token yields an error wrapping apperrors.ErrUnauthorized.
type Provider interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by the middleware, if any
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(*Identity)
	return id, ok && id != nil && id.UserID != ""
}

// StaticProvider maps fixed tokens to user ids. Used for local development and tests.
type StaticProvider struct {
	tokens map[string]string
}

func NewStaticProvider(tokens map[string]string) *StaticProvider {
	copied := make(map[string]string, len(tokens))
	for token, userID := range tokens {
		copied[token] = userID
	}
	return &StaticProvider{tokens: copied}
}

func (p *StaticProvider) Authenticate(_ context.Context, token string) (*Identity, error) {
	userID, ok := p.tokens[token]
	if !ok || token == "" {
		return nil, fmt.Errorf("unknown token: %w", apperrors.ErrUnauthorized)
	}
	return &Identity{UserID: userID}, nil
}
