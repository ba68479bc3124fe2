package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pagemarket/bookstore-backend/pkg/config"
	"github.com/pagemarket/bookstore-backend/pkg/enums"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
)

// Minter issues and parses signed access tokens.
type Minter struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	nowFunc func() time.Time
}

// NewMinter builds a Minter from JWT configuration.
func NewMinter(cfg config.JWTConfig) (*Minter, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("jwt issuer is required")
	}
	if cfg.ExpirationMinutes <= 0 {
		return nil, fmt.Errorf("jwt expiration must be positive")
	}
	return &Minter{
		secret:  []byte(cfg.Secret),
		issuer:  cfg.Issuer,
		ttl:     time.Duration(cfg.ExpirationMinutes) * time.Minute,
		nowFunc: time.Now,
	}, nil
}

// Mint signs an access token for the given payload. The payload's TokenID
// becomes the JTI, tying the token back to its refresh session.
func (m *Minter) Mint(payload AccessTokenPayload) (string, error) {
	if payload.UserID == uuid.Nil {
		return "", fmt.Errorf("user id is required")
	}
	if !payload.Role.IsValid() {
		return "", fmt.Errorf("role %q is not valid", payload.Role)
	}

	now := m.nowFunc()
	claims := Claims{
		UserID:    payload.UserID.String(),
		Role:      payload.Role.String(),
		IsStaff:   payload.IsStaff,
		SessionID: payload.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   payload.UserID.String(),
			ID:        payload.TokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	if payload.SellerID != nil {
		claims.SellerID = payload.SellerID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// Parse validates a signed token and returns the application payload. Expired,
// malformed, or foreign-issuer tokens come back as unauthorized errors.
func (m *Minter) Parse(tokenString string) (*AccessTokenPayload, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return m.secret, nil
		},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.nowFunc),
	)
	if err != nil || !token.Valid {
		return nil, errors.Wrap(errors.CodeUnauthorized, err, "invalid access token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeUnauthorized, err, "invalid access token")
	}
	role, err := enums.ParseUserRole(claims.Role)
	if err != nil {
		return nil, errors.Wrap(errors.CodeUnauthorized, err, "invalid access token")
	}

	payload := &AccessTokenPayload{
		UserID:    userID,
		Role:      role,
		IsStaff:   claims.IsStaff,
		SessionID: claims.SessionID,
		TokenID:   claims.ID,
	}
	if claims.SellerID != "" {
		sellerID, err := uuid.Parse(claims.SellerID)
		if err != nil {
			return nil, errors.Wrap(errors.CodeUnauthorized, err, "invalid access token")
		}
		payload.SellerID = &sellerID
	}

	return payload, nil
}
