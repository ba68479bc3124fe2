package users

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pagemarket/bookstore-backend/internal/authz"
	"github.com/pagemarket/bookstore-backend/pkg/config"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/pagination"
	"github.com/pagemarket/bookstore-backend/pkg/security"
)

// Service exposes profile reads and edits plus staff-only account
// administration.
type Service struct {
	repo        *Repo
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
}

func NewService(repo *Repo, passwordCfg config.PasswordConfig, logg *logger.Logger) *Service {
	return &Service{repo: repo, passwordCfg: passwordCfg, logg: logg}
}

// Profile returns the actor's own account.
func (s *Service) Profile(ctx context.Context, actor *authz.Actor) (*UserResponse, error) {
	if actor == nil {
		return nil, errors.New(errors.CodeUnauthorized, "authentication required")
	}
	user, err := s.repo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile lets the actor change their own username or password.
func (s *Service) UpdateProfile(ctx context.Context, actor *authz.Actor, req UpdateProfileRequest) (*UserResponse, error) {
	if actor == nil {
		return nil, errors.New(errors.CodeUnauthorized, "authentication required")
	}
	if req.Username == nil && req.Password == nil {
		return nil, errors.New(errors.CodeValidation, "nothing to update")
	}

	updates := map[string]any{}
	if req.Username != nil {
		updates["username"] = strings.TrimSpace(*req.Username)
	}
	if req.Password != nil {
		hash, err := security.HashPassword(*req.Password, s.passwordCfg)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "hashing password")
		}
		updates["password_hash"] = hash
	}

	if err := s.repo.UpdateFields(ctx, actor.UserID, updates); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithUserID(ctx, actor.UserID.String()), "profile updated")

	user, err := s.repo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ListUsers pages through accounts. Staff only.
func (s *Service) ListUsers(ctx context.Context, actor *authz.Actor, params pagination.Params) (*ListUsersResponse, error) {
	if err := authz.Authorize(actor, authz.ActionUsersManage, authz.Resource{}); err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	users, err := s.repo.List(ctx, limit, params.Offset)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing users")
	}

	resp := &ListUsersResponse{
		Users:  make([]UserResponse, 0, len(users)),
		Limit:  limit,
		Offset: params.Offset,
	}
	for i := range users {
		resp.Users = append(resp.Users, ToUserResponse(&users[i]))
	}
	return resp, nil
}

// GetUser loads one account by id. Staff only.
func (s *Service) GetUser(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*UserResponse, error) {
	if err := authz.Authorize(actor, authz.ActionUsersManage, authz.Resource{}); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateUser applies a staff-side account patch. Staff cannot disable their
// own account.
func (s *Service) UpdateUser(ctx context.Context, actor *authz.Actor, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	if err := authz.Authorize(actor, authz.ActionUsersManage, authz.Resource{}); err != nil {
		return nil, err
	}
	if req.IsActive == nil && req.Username == nil {
		return nil, errors.New(errors.CodeValidation, "nothing to update")
	}
	if req.IsActive != nil && actor.UserID == id && !*req.IsActive {
		return nil, errors.New(errors.CodeValidation, "cannot deactivate your own account")
	}

	updates := map[string]any{}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Username != nil {
		updates["username"] = strings.TrimSpace(*req.Username)
	}

	if err := s.repo.UpdateFields(ctx, id, updates); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithUserID(ctx, id.String()), "user account updated")

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
