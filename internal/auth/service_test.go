package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pagemarket/bookstore-backend/internal/authz"
	"github.com/pagemarket/bookstore-backend/internal/users"
	pkgauth "github.com/pagemarket/bookstore-backend/pkg/auth"
	"github.com/pagemarket/bookstore-backend/pkg/auth/session"
	"github.com/pagemarket/bookstore-backend/pkg/config"
	"github.com/pagemarket/bookstore-backend/pkg/db"
	"github.com/pagemarket/bookstore-backend/pkg/db/models"
	"github.com/pagemarket/bookstore-backend/pkg/enums"
	apperrors "github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/redis"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value.(string)
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func newTestService(t *testing.T) (*Service, *pkgauth.Minter) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.Seller{}))

	client := db.NewWithConn(conn)
	usersRepo := users.NewRepo(conn)

	minter, err := pkgauth.NewMinter(config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "bookstore-test",
		ExpirationMinutes: 15,
	})
	require.NoError(t, err)

	sessions, err := session.NewManager(&memoryStore{data: map[string]string{}}, time.Hour)
	require.NoError(t, err)

	logg := logger.New(logger.Options{ServiceName: "auth-test"})
	svc := NewService(client, usersRepo, minter, sessions, config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}, logg)
	return svc, minter
}

func buyerSignup() SignupRequest {
	return SignupRequest{
		Email:    "buyer@example.com",
		Username: "buyer",
		Password: "correct horse",
		Role:     "buyer",
	}
}

func sellerSignup() SignupRequest {
	return SignupRequest{
		Email:    "seller@example.com",
		Username: "seller",
		Password: "correct horse",
		Role:     "seller",
	}
}

func TestSignupBuyer(t *testing.T) {
	svc, minter := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, buyerSignup())
	require.NoError(t, err)
	assert.Equal(t, "buyer", resp.User.Role)
	assert.Nil(t, resp.User.SellerID)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)

	payload, err := minter.Parse(resp.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleBuyer, payload.Role)
	assert.Nil(t, payload.SellerID)
}

func TestSignupSellerCreatesProfile(t *testing.T) {
	svc, minter := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, sellerSignup())
	require.NoError(t, err)
	assert.Equal(t, "seller", resp.User.Role)
	require.NotNil(t, resp.User.SellerID)

	payload, err := minter.Parse(resp.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleSeller, payload.Role)
	require.NotNil(t, payload.SellerID)
	assert.Equal(t, *resp.User.SellerID, *payload.SellerID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, buyerSignup())
	require.NoError(t, err)

	dup := buyerSignup()
	dup.Username = "someone-else"
	_, err = svc.Signup(ctx, dup)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code())
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	svc, _ := newTestService(t)
	req := buyerSignup()
	req.Role = "admin"

	_, err := svc.Signup(context.Background(), req)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code())
}

func TestAdminCreate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	staff := &authz.Actor{UserID: uuid.New(), Role: enums.UserRoleBuyer, IsStaff: true}

	resp, err := svc.AdminCreate(ctx, staff, AdminCreateRequest{
		Email:    "vendor@example.com",
		Username: "vendor",
		Password: "correct horse",
		Role:     "seller",
	})
	require.NoError(t, err)
	assert.Equal(t, "seller", resp.Role)
	require.NotNil(t, resp.SellerID)

	// Non-staff callers are refused.
	plain := &authz.Actor{UserID: uuid.New(), Role: enums.UserRoleBuyer}
	_, err = svc.AdminCreate(ctx, plain, AdminCreateRequest{
		Email:    "x@example.com",
		Username: "x-user",
		Password: "correct horse",
		Role:     "buyer",
	})
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code())

	// Anonymous callers get unauthorized.
	_, err = svc.AdminCreate(ctx, nil, AdminCreateRequest{
		Email:    "y@example.com",
		Username: "y-user",
		Password: "correct horse",
		Role:     "buyer",
	})
	appErr = apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code())
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, buyerSignup())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Email: "buyer@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	require.NotNil(t, resp.User.LastLoginAt)

	// Wrong password and unknown email both come back unauthorized.
	_, err = svc.Login(ctx, LoginRequest{Email: "buyer@example.com", Password: "wrong"})
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code())

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	appErr = apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code())
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, buyerSignup())
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: signup.Tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, signup.Tokens.RefreshToken, refreshed.Tokens.RefreshToken)
	assert.NotEqual(t, signup.Tokens.AccessToken, refreshed.Tokens.AccessToken)

	// The original refresh token is now stale.
	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: signup.Tokens.RefreshToken})
	require.Error(t, err)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, buyerSignup())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, LogoutRequest{RefreshToken: signup.Tokens.RefreshToken}))

	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: signup.Tokens.RefreshToken})
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code())

	// Logging out twice is fine.
	require.NoError(t, svc.Logout(ctx, LogoutRequest{RefreshToken: signup.Tokens.RefreshToken}))
}
