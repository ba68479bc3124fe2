package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pagemarket/bookstore-backend/api/responses"
	"github.com/pagemarket/bookstore-backend/internal/authz"
	pkgauth "github.com/pagemarket/bookstore-backend/pkg/auth"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
)

// SessionChecker verifies an access token is still backed by a live refresh
// session.
type SessionChecker interface {
	ValidateAccess(ctx context.Context, userID uuid.UUID, sessionID, accessID string) (bool, error)
}

// Authenticator resolves Bearer tokens into request actors.
type Authenticator struct {
	minter   *pkgauth.Minter
	sessions SessionChecker
	logg     *logger.Logger
}

func NewAuthenticator(minter *pkgauth.Minter, sessions SessionChecker, logg *logger.Logger) *Authenticator {
	return &Authenticator{minter: minter, sessions: sessions, logg: logg}
}

// Optional resolves the actor when a Bearer token is present. Requests
// without a token pass through anonymous; requests with a bad or revoked
// token are rejected. Public endpoints use this so authenticated reads still
// carry the actor.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx, err := a.resolve(r.Context(), header)
		if err != nil {
			responses.WriteError(r.Context(), a.logg, w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Require rejects anonymous requests with 401.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return a.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorFrom(r.Context()) == nil {
			responses.WriteError(r.Context(), a.logg, w,
				errors.New(errors.CodeUnauthorized, "authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (a *Authenticator) resolve(ctx context.Context, header string) (context.Context, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, errors.New(errors.CodeUnauthorized, "authorization header must be a Bearer token")
	}

	payload, err := a.minter.Parse(token)
	if err != nil {
		return nil, err
	}

	// The sid/jti pair ties the access token to a refresh session. Logout
	// and refresh rotation both kill the token here.
	if a.sessions != nil && payload.SessionID != "" {
		live, err := a.sessions.ValidateAccess(ctx, payload.UserID, payload.SessionID, payload.TokenID)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDependency, err, "checking session")
		}
		if !live {
			return nil, errors.New(errors.CodeUnauthorized, "session has been revoked")
		}
	}

	actor := &authz.Actor{
		UserID:   payload.UserID,
		Role:     payload.Role,
		SellerID: payload.SellerID,
		IsStaff:  payload.IsStaff,
	}

	ctx = WithActor(ctx, actor)
	ctx = WithSessionID(ctx, payload.SessionID)
	ctx = a.logg.WithUserID(ctx, actor.UserID.String())
	ctx = a.logg.WithActorRole(ctx, actor.Role.String())
	return ctx, nil
}
