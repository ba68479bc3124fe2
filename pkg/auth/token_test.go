package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemarket/bookstore-backend/pkg/config"
	"github.com/pagemarket/bookstore-backend/pkg/enums"
	apperrors "github.com/pagemarket/bookstore-backend/pkg/errors"
)

func newTestMinter(t *testing.T) *Minter {
	t.Helper()
	m, err := NewMinter(config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "bookstore-test",
		ExpirationMinutes: 15,
	})
	require.NoError(t, err)
	return m
}

func TestMintAndParseRoundTrip(t *testing.T) {
	m := newTestMinter(t)

	sellerID := uuid.New()
	payload := AccessTokenPayload{
		UserID:    uuid.New(),
		Role:      enums.UserRoleSeller,
		SellerID:  &sellerID,
		SessionID: "session-1",
		TokenID:   "jti-1",
	}

	signed, err := m.Mint(payload)
	require.NoError(t, err)

	parsed, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, payload.UserID, parsed.UserID)
	assert.Equal(t, enums.UserRoleSeller, parsed.Role)
	require.NotNil(t, parsed.SellerID)
	assert.Equal(t, sellerID, *parsed.SellerID)
	assert.False(t, parsed.IsStaff)
	assert.Equal(t, "session-1", parsed.SessionID)
	assert.Equal(t, "jti-1", parsed.TokenID)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := newTestMinter(t)
	m.nowFunc = func() time.Time { return time.Now().Add(-time.Hour) }

	signed, err := m.Mint(AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleBuyer,
	})
	require.NoError(t, err)

	m.nowFunc = time.Now
	_, err = m.Parse(signed)
	require.Error(t, err)

	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code())
}

func TestParseRejectsForeignIssuer(t *testing.T) {
	other, err := NewMinter(config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "someone-else",
		ExpirationMinutes: 15,
	})
	require.NoError(t, err)

	signed, err := other.Mint(AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleBuyer,
	})
	require.NoError(t, err)

	m := newTestMinter(t)
	_, err = m.Parse(signed)
	require.Error(t, err)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	m := newTestMinter(t)

	signed, err := m.Mint(AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleBuyer,
	})
	require.NoError(t, err)

	_, err = m.Parse(signed + "x")
	require.Error(t, err)
}

func TestMintValidatesPayload(t *testing.T) {
	m := newTestMinter(t)

	_, err := m.Mint(AccessTokenPayload{Role: enums.UserRoleBuyer})
	assert.Error(t, err)

	_, err = m.Mint(AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRole("admin")})
	assert.Error(t, err)
}
