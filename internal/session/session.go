package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"biblioteca-backend/internal/shared"
	"biblioteca-backend/pkg/cache"
)

var (
	// ErrNotFound indicates the session token resolves to nothing:
	// never issued, expired, or destroyed.
	ErrNotFound = errors.New("session not found")
)

// Principal is the authenticated identity attached to a session.
type Principal struct {
	ID    uuid.UUID   `json:"id"`
	Nome  string      `json:"nome"`
	Email string      `json:"email"`
	Tipo  shared.Role `json:"tipo"`
}

// Manager issues and resolves server-side sessions. The token handed
// to the client is opaque; the principal lives in the cache layer
// under a 24-hour TTL.
type Manager struct {
	store cache.Cache
	ttl   time.Duration
}

func NewManager(store cache.Cache, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

const keyPrefix = "sessao:"

// Create establishes a new session for the principal and returns the
// opaque token.
func (m *Manager) Create(ctx context.Context, p Principal) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	if err := m.store.Set(ctx, keyPrefix+token, p, m.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token to its principal. Read-only: the TTL is
// absolute, not sliding.
func (m *Manager) Get(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	var p Principal
	found, err := m.store.Get(ctx, keyPrefix+token, &p)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Destroy removes the session, returning the client to the anonymous
// state. Destroying an unknown token is not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, keyPrefix+token)
}

// generateToken returns 32 random bytes, base64url-encoded.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
