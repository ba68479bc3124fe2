package middleware

import (
	"net/http"

	"github.com/pagemarket/bookstore-backend/api/responses"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
)

// RequireSeller rejects requests whose actor has no seller profile. Assumes
// Require ran first.
func RequireSeller(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFrom(r.Context())
			if actor == nil {
				responses.WriteError(r.Context(), logg, w,
					errors.New(errors.CodeUnauthorized, "authentication required"))
				return
			}
			if !actor.IsSeller() {
				responses.WriteError(r.Context(), logg, w,
					errors.New(errors.CodeForbidden, "seller account required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff rejects requests whose actor is not staff.
func RequireStaff(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFrom(r.Context())
			if actor == nil {
				responses.WriteError(r.Context(), logg, w,
					errors.New(errors.CodeUnauthorized, "authentication required"))
				return
			}
			if !actor.IsStaff {
				responses.WriteError(r.Context(), logg, w,
					errors.New(errors.CodeForbidden, "staff access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
