package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pagemarket/bookstore-backend/internal/authz"
	"github.com/pagemarket/bookstore-backend/internal/users"
	pkgauth "github.com/pagemarket/bookstore-backend/pkg/auth"
	"github.com/pagemarket/bookstore-backend/pkg/auth/session"
	"github.com/pagemarket/bookstore-backend/pkg/config"
	"github.com/pagemarket/bookstore-backend/pkg/db"
	"github.com/pagemarket/bookstore-backend/pkg/db/models"
	"github.com/pagemarket/bookstore-backend/pkg/enums"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/security"
)

// Service implements signup, login, logout and token refresh.
type Service struct {
	client      *db.Client
	usersRepo   *users.Repo
	minter      *pkgauth.Minter
	sessions    *session.Manager
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	nowFunc     func() time.Time
}

func NewService(
	client *db.Client,
	usersRepo *users.Repo,
	minter *pkgauth.Minter,
	sessions *session.Manager,
	passwordCfg config.PasswordConfig,
	logg *logger.Logger,
) *Service {
	return &Service{
		client:      client,
		usersRepo:   usersRepo,
		minter:      minter,
		sessions:    sessions,
		passwordCfg: passwordCfg,
		logg:        logg,
		nowFunc:     time.Now,
	}
}

// Signup creates the account. Seller signups create the user and the seller
// profile in one transaction so a half-registered seller never exists.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	role, err := enums.ParseUserRole(req.Role)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, "role must be buyer or seller")
	}

	user, err := s.createAccount(ctx, req.Email, req.Username, req.Password, role, false)
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "user registered")

	return s.issueTokens(ctx, user)
}

// AdminCreate provisions an account on behalf of staff. No session is opened
// for the new user.
func (s *Service) AdminCreate(ctx context.Context, actor *authz.Actor, req AdminCreateRequest) (*users.UserResponse, error) {
	if err := authz.Authorize(actor, authz.ActionUsersManage, authz.Resource{}); err != nil {
		return nil, err
	}

	role, err := enums.ParseUserRole(req.Role)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, "role must be buyer or seller")
	}

	user, err := s.createAccount(ctx, req.Email, req.Username, req.Password, role, req.IsStaff)
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "user provisioned by staff")

	resp := users.ToUserResponse(user)
	return &resp, nil
}

// createAccount hashes the password and creates the user row, plus the seller
// profile in the same transaction when the role calls for one.
func (s *Service) createAccount(ctx context.Context, email, username, password string, role enums.UserRole, isStaff bool) (*models.User, error) {
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Username:     strings.TrimSpace(username),
		PasswordHash: hash,
		Role:         role,
		IsStaff:      isStaff,
		IsActive:     true,
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.usersRepo.CreateTx(tx, user); err != nil {
			return err
		}
		if role == enums.UserRoleSeller {
			seller := &models.Seller{ID: uuid.New(), UserID: user.ID}
			if err := s.usersRepo.CreateSellerTx(tx, seller); err != nil {
				return err
			}
			user.Seller = seller
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, errors.New(errors.CodeConflict, "email or username already registered")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "creating user")
	}
	return user, nil
}

// Login verifies credentials and opens a refresh session. Invalid email and
// invalid password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.usersRepo.FindByEmail(ctx, email)
	if err != nil {
		if appErr := errors.As(err); appErr != nil && appErr.Code() == errors.CodeNotFound {
			return nil, errors.New(errors.CodeUnauthorized, "invalid email or password")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading user")
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, errors.New(errors.CodeUnauthorized, "invalid email or password")
	}

	if !user.IsActive {
		return nil, errors.New(errors.CodeForbidden, "account is disabled")
	}

	now := s.nowFunc()
	if err := s.usersRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logg.Warn(ctx, "failed to stamp last login")
	} else {
		user.LastLoginAt = &now
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "user logged in")

	return s.issueTokens(ctx, user)
}

// Refresh rotates the refresh session and mints a fresh access token.
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	userID, tokens, err := s.sessions.Rotate(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.usersRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.New(errors.CodeUnauthorized, "account no longer exists")
	}
	if !user.IsActive {
		return nil, errors.New(errors.CodeForbidden, "account is disabled")
	}

	access, err := s.mintAccess(user, tokens)
	if err != nil {
		return nil, err
	}

	resp := &AuthResponse{
		Tokens: TokenPairResponse{AccessToken: access, RefreshToken: tokens.RefreshToken},
		User:   users.ToUserResponse(user),
	}
	return resp, nil
}

// Logout revokes the refresh session. Unknown sessions are already logged
// out, so the call succeeds either way.
func (s *Service) Logout(ctx context.Context, req LogoutRequest) error {
	return s.sessions.Revoke(ctx, req.RefreshToken)
}

func (s *Service) issueTokens(ctx context.Context, user *models.User) (*AuthResponse, error) {
	tokens, err := s.sessions.Generate(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "opening refresh session")
	}

	access, err := s.mintAccess(user, tokens)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Tokens: TokenPairResponse{AccessToken: access, RefreshToken: tokens.RefreshToken},
		User:   users.ToUserResponse(user),
	}, nil
}

func (s *Service) mintAccess(user *models.User, tokens *session.Tokens) (string, error) {
	payload := pkgauth.AccessTokenPayload{
		UserID:    user.ID,
		Role:      user.Role,
		IsStaff:   user.IsStaff,
		SessionID: tokens.SessionID,
		TokenID:   tokens.AccessID,
	}
	if user.Seller != nil {
		payload.SellerID = &user.Seller.ID
	}

	access, err := s.minter.Mint(payload)
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, err, "minting access token")
	}
	return access, nil
}
