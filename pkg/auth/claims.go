package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pagemarket/bookstore-backend/pkg/enums"
)

// AccessTokenPayload is the application data minted into an access token.
// SessionID names the refresh session backing the token; TokenID is the JTI
// the session currently accepts.
type AccessTokenPayload struct {
	UserID    uuid.UUID
	Role      enums.UserRole
	SellerID  *uuid.UUID
	IsStaff   bool
	SessionID string
	TokenID   string
}

// Claims is the JWT claim set carried by access tokens. SellerID is only set
// for users with a seller profile.
type Claims struct {
	UserID    string `json:"uid"`
	Role      string `json:"role"`
	SellerID  string `json:"seller_id,omitempty"`
	IsStaff   bool   `json:"is_staff,omitempty"`
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}
