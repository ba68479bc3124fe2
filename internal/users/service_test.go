package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pagemarket/bookstore-backend/internal/authz"
	"github.com/pagemarket/bookstore-backend/pkg/config"
	"github.com/pagemarket/bookstore-backend/pkg/db/models"
	"github.com/pagemarket/bookstore-backend/pkg/enums"
	apperrors "github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/pagination"
	"github.com/pagemarket/bookstore-backend/pkg/security"
)

func newTestService(t *testing.T) (*Service, *Repo, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.Seller{}))

	repo := NewRepo(conn)
	logg := logger.New(logger.Options{ServiceName: "users-test"})
	passwordCfg := config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
	return NewService(repo, passwordCfg, logg), repo, conn
}

func seedUser(t *testing.T, repo *Repo, role enums.UserRole, staff bool) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		Username:     "u-" + uuid.NewString(),
		PasswordHash: "hash",
		Role:         role,
		IsStaff:      staff,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func staffActorFor(user *models.User) *authz.Actor {
	return &authz.Actor{UserID: user.ID, Role: user.Role, IsStaff: true}
}

func TestProfile(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, repo, enums.UserRoleBuyer, false)

	resp, err := svc.Profile(ctx, &authz.Actor{UserID: user.ID, Role: user.Role})
	require.NoError(t, err)
	assert.Equal(t, user.Email, resp.Email)
	assert.Equal(t, "buyer", resp.Role)
	assert.Nil(t, resp.SellerID)

	_, err = svc.Profile(ctx, nil)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code())
}

func TestProfileIncludesSellerID(t *testing.T) {
	svc, repo, conn := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, repo, enums.UserRoleSeller, false)

	seller := &models.Seller{ID: uuid.New(), UserID: user.ID}
	require.NoError(t, conn.Create(seller).Error)

	resp, err := svc.Profile(ctx, &authz.Actor{UserID: user.ID, Role: user.Role})
	require.NoError(t, err)
	require.NotNil(t, resp.SellerID)
	assert.Equal(t, seller.ID, *resp.SellerID)
}

func TestListUsers_StaffOnly(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	staff := seedUser(t, repo, enums.UserRoleBuyer, true)
	seedUser(t, repo, enums.UserRoleBuyer, false)
	seedUser(t, repo, enums.UserRoleSeller, false)

	resp, err := svc.ListUsers(ctx, staffActorFor(staff), pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Users, 3)

	plain := seedUser(t, repo, enums.UserRoleBuyer, false)
	_, err = svc.ListUsers(ctx, &authz.Actor{UserID: plain.ID, Role: plain.Role}, pagination.Params{Limit: 10})
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code())
}

func TestUpdateUser(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	staff := seedUser(t, repo, enums.UserRoleBuyer, true)
	target := seedUser(t, repo, enums.UserRoleBuyer, false)

	inactive := false
	resp, err := svc.UpdateUser(ctx, staffActorFor(staff), target.ID, UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	renamed := "renamed-user"
	resp, err = svc.UpdateUser(ctx, staffActorFor(staff), target.ID, UpdateUserRequest{Username: &renamed})
	require.NoError(t, err)
	assert.Equal(t, renamed, resp.Username)

	// Staff cannot lock themselves out.
	_, err = svc.UpdateUser(ctx, staffActorFor(staff), staff.ID, UpdateUserRequest{IsActive: &inactive})
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code())

	// Empty patch.
	_, err = svc.UpdateUser(ctx, staffActorFor(staff), target.ID, UpdateUserRequest{})
	appErr = apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code())

	// Unknown target.
	_, err = svc.UpdateUser(ctx, staffActorFor(staff), uuid.New(), UpdateUserRequest{IsActive: &inactive})
	appErr = apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code())
}

func TestUpdateProfile(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, repo, enums.UserRoleBuyer, false)
	actor := &authz.Actor{UserID: user.ID, Role: user.Role}

	newName := "fresh-name"
	resp, err := svc.UpdateProfile(ctx, actor, UpdateProfileRequest{Username: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, resp.Username)

	newPassword := "brand new password"
	_, err = svc.UpdateProfile(ctx, actor, UpdateProfileRequest{Password: &newPassword})
	require.NoError(t, err)

	updated, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "hash", updated.PasswordHash)
	ok, err := security.VerifyPassword(newPassword, updated.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// Empty patch.
	_, err = svc.UpdateProfile(ctx, actor, UpdateProfileRequest{})
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code())

	// Anonymous.
	_, err = svc.UpdateProfile(ctx, nil, UpdateProfileRequest{Username: &newName})
	appErr = apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code())
}

func TestUpdateProfile_UsernameTaken(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	first := seedUser(t, repo, enums.UserRoleBuyer, false)
	second := seedUser(t, repo, enums.UserRoleBuyer, false)

	taken := first.Username
	_, err := svc.UpdateProfile(ctx, &authz.Actor{UserID: second.ID, Role: second.Role},
		UpdateProfileRequest{Username: &taken})
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code())
}
