package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pagemarket/bookstore-backend/api/responses"
	"github.com/pagemarket/bookstore-backend/pkg/config"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/redis"
)

// Counter increments a windowed counter. The redis client satisfies this.
type Counter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// AuthRateLimiter throttles credential endpoints per client address and per
// email.
type AuthRateLimiter struct {
	counter Counter
	cfg     config.AuthRateLimitConfig
	logg    *logger.Logger
}

func NewAuthRateLimiter(counter Counter, cfg config.AuthRateLimitConfig, logg *logger.Logger) *AuthRateLimiter {
	return &AuthRateLimiter{counter: counter, cfg: cfg, logg: logg}
}

// LimitLogin throttles POST /auth/login.
func (l *AuthRateLimiter) LimitLogin(next http.Handler) http.Handler {
	return l.limit(next, l.cfg.LoginWindow, l.cfg.LoginIPLimit, l.cfg.LoginEmailLimit,
		redis.LoginIPRateKey, redis.LoginEmailRateKey)
}

// LimitSignup throttles POST /auth/signup.
func (l *AuthRateLimiter) LimitSignup(next http.Handler) http.Handler {
	return l.limit(next, l.cfg.SignupWindow, l.cfg.SignupIPLimit, l.cfg.SignupEmailLimit,
		redis.SignupIPRateKey, redis.SignupEmailRateKey)
}

func (l *AuthRateLimiter) limit(
	next http.Handler,
	window time.Duration,
	ipLimit, emailLimit int,
	ipKey, emailKey func(string) string,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.counter == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()

		if ip := clientIP(r); ip != "" && ipLimit > 0 {
			count, err := l.counter.IncrWithTTL(ctx, ipKey(ip), window)
			if err != nil {
				// A broken limiter must not take the auth surface down.
				l.logg.Warn(ctx, "rate limit counter unavailable")
			} else if count > int64(ipLimit) {
				responses.WriteError(ctx, l.logg, w,
					errors.New(errors.CodeRateLimit, "too many attempts, try again later"))
				return
			}
		}

		if email := peekEmail(r); email != "" && emailLimit > 0 {
			count, err := l.counter.IncrWithTTL(ctx, emailKey(email), window)
			if err != nil {
				l.logg.Warn(ctx, "rate limit counter unavailable")
			} else if count > int64(emailLimit) {
				responses.WriteError(ctx, l.logg, w,
					errors.New(errors.CodeRateLimit, "too many attempts, try again later"))
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// peekEmail reads the email field out of the JSON body without consuming it.
func peekEmail(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	var probe struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(probe.Email))
}
