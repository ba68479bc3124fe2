package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/redis"
)

// Store is the subset of the redis client the manager depends on.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Manager tracks refresh sessions in redis. Each session stores the current
// access token id so a rotated refresh token invalidates the previous pair.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager builds a Manager with the refresh token TTL.
func NewManager(store Store, ttl time.Duration) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: store, ttl: ttl}, nil
}

// Tokens is the pair handed back to clients after login or refresh.
type Tokens struct {
	SessionID    string
	AccessID     string
	RefreshToken string
}

// Generate opens a new refresh session for the user and returns the refresh
// token alongside the access token id to mint into the JWT.
func (m *Manager) Generate(ctx context.Context, userID uuid.UUID) (*Tokens, error) {
	sessionID := uuid.NewString()
	accessID := uuid.NewString()
	secret, err := newSecret()
	if err != nil {
		return nil, err
	}

	key := redis.RefreshSessionKey(userID.String(), sessionID)
	if err := m.store.Set(ctx, key, sessionValue(secret, accessID), m.ttl); err != nil {
		return nil, fmt.Errorf("storing refresh session: %w", err)
	}

	return &Tokens{
		SessionID:    sessionID,
		AccessID:     accessID,
		RefreshToken: encodeRefreshToken(userID.String(), sessionID, secret),
	}, nil
}

// Rotate validates a refresh token and replaces its secret and access id.
// An unknown or mismatched token is rejected as unauthorized.
func (m *Manager) Rotate(ctx context.Context, refreshToken string) (uuid.UUID, *Tokens, error) {
	userIDStr, sessionID, secret, err := decodeRefreshToken(refreshToken)
	if err != nil {
		return uuid.Nil, nil, errors.Wrap(errors.CodeUnauthorized, err, "invalid refresh token")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, nil, errors.New(errors.CodeUnauthorized, "invalid refresh token")
	}

	key := redis.RefreshSessionKey(userIDStr, sessionID)
	stored, err := m.store.Get(ctx, key)
	if err != nil {
		if err == redis.Nil {
			return uuid.Nil, nil, errors.New(errors.CodeUnauthorized, "refresh session not found")
		}
		return uuid.Nil, nil, errors.Wrap(errors.CodeDependency, err, "reading refresh session")
	}

	storedSecret, _ := splitSessionValue(stored)
	if storedSecret != secret {
		// Stale or replayed token. Drop the whole session.
		_ = m.store.Del(ctx, key)
		return uuid.Nil, nil, errors.New(errors.CodeUnauthorized, "refresh token has been rotated")
	}

	newSecretVal, err := newSecret()
	if err != nil {
		return uuid.Nil, nil, err
	}
	accessID := uuid.NewString()
	if err := m.store.Set(ctx, key, sessionValue(newSecretVal, accessID), m.ttl); err != nil {
		return uuid.Nil, nil, errors.Wrap(errors.CodeDependency, err, "rotating refresh session")
	}

	return userID, &Tokens{
		SessionID:    sessionID,
		AccessID:     accessID,
		RefreshToken: encodeRefreshToken(userIDStr, sessionID, newSecretVal),
	}, nil
}

// Revoke removes the session addressed by the refresh token. Revoking an
// already-removed session is not an error.
func (m *Manager) Revoke(ctx context.Context, refreshToken string) error {
	userID, sessionID, _, err := decodeRefreshToken(refreshToken)
	if err != nil {
		return errors.Wrap(errors.CodeUnauthorized, err, "invalid refresh token")
	}
	return m.store.Del(ctx, redis.RefreshSessionKey(userID, sessionID))
}

// HasSession reports whether the user/session pair is still live.
func (m *Manager) HasSession(ctx context.Context, userID uuid.UUID, sessionID string) (bool, error) {
	return m.store.Exists(ctx, redis.RefreshSessionKey(userID.String(), sessionID))
}

// ValidateAccess reports whether an access token id is the one the session
// currently accepts. Returns false after logout and after a refresh rotated
// the pair.
func (m *Manager) ValidateAccess(ctx context.Context, userID uuid.UUID, sessionID, accessID string) (bool, error) {
	stored, err := m.store.Get(ctx, redis.RefreshSessionKey(userID.String(), sessionID))
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	_, currentAccessID := splitSessionValue(stored)
	return currentAccessID == accessID, nil
}

func newSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
