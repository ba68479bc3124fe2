package middleware

import (
	"context"

	"github.com/pagemarket/bookstore-backend/internal/authz"
)

type ctxKey int

const (
	actorKey ctxKey = iota
	sessionIDKey
)

// WithActor attaches the authenticated actor to the context.
func WithActor(ctx context.Context, actor *authz.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom returns the authenticated actor, or nil for anonymous requests.
func ActorFrom(ctx context.Context) *authz.Actor {
	actor, _ := ctx.Value(actorKey).(*authz.Actor)
	return actor
}

// WithSessionID attaches the refresh session id backing the access token.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFrom returns the refresh session id, or "".
func SessionIDFrom(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionIDKey).(string)
	return sessionID
}
