// Package auth handles account registration, login with a temporary
// lockout after repeated failures, token refresh with rotation, and user
// administration.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/internal/repository"
	"github.com/openvet/clinic-api/pkg/auth"
	apperrors "github.com/openvet/clinic-api/pkg/errors"
	"github.com/openvet/clinic-api/pkg/logger"
	"github.com/openvet/clinic-api/pkg/security"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

type Service struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	jwt    auth.JWTService
	hasher security.PasswordHasher
	logger *logger.Logger

	refreshTTL time.Duration
}

func NewService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	jwtSvc auth.JWTService,
	hasher security.PasswordHasher,
	refreshTTL time.Duration,
	log *logger.Logger,
) *Service {
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		users:      users,
		tokens:     tokens,
		jwt:        jwtSvc,
		hasher:     hasher,
		refreshTTL: refreshTTL,
		logger:     log,
	}
}

// Register creates an account. Self-registration always yields the client
// role; staff roles are assigned by an administrator afterwards.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	role := model.RoleClient
	if req.Role != "" {
		role = model.UserRole(req.Role)
		if !role.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid role %q", req.Role), nil)
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("password does not meet requirements", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", user.ID, "role", string(role))
	return user, nil
}

// Login verifies credentials and issues a token pair. Five consecutive
// failures lock the account for fifteen minutes; any success resets the
// counter.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same answer whether the account exists or the password is wrong.
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}
	if !user.Active {
		return nil, apperrors.Unauthorized("account is disabled", nil)
	}
	if s.lockedOut(user) {
		return nil, apperrors.Unauthorized("account temporarily locked, try again later", nil)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		s.recordFailedAttempt(ctx, user)
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	now := time.Now()
	user.LoginAttempts = 0
	user.LastLoginAttempt = nil
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error(err, "failed to record login", "user_id", user.ID)
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges a valid refresh token for a new pair. The old token is
// deleted first so it can only be used once.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token", err)
	}

	stored, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("refresh token not recognized", err)
	}
	if err := s.tokens.Delete(ctx, stored.Token); err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token", err)
	}
	if !user.Active {
		return nil, apperrors.Unauthorized("account is disabled", nil)
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes every refresh token held by the user.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.tokens.DeleteForUser(ctx, userID)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.users.Get(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.users.List(ctx)
}

func (s *Service) UpdateUser(ctx context.Context, id int64, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Role != nil {
		role := model.UserRole(*req.Role)
		if !role.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid role %q", *req.Role), nil)
		}
		user.Role = role
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser deactivates the account and revokes its refresh tokens.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.SoftDelete(ctx, id); err != nil {
		return err
	}
	return s.tokens.DeleteForUser(ctx, id)
}

func (s *Service) issueTokens(ctx context.Context, user *model.User) (*model.TokenResponse, error) {
	access, err := s.jwt.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.tokens.Save(ctx, &model.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}); err != nil {
		return nil, err
	}

	claims, err := s.jwt.ValidateToken(access)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    claims.ExpiresAt.Unix() - time.Now().Unix(),
		User:         user,
	}, nil
}

func (s *Service) lockedOut(user *model.User) bool {
	if user.LoginAttempts < maxLoginAttempts || user.LastLoginAttempt == nil {
		return false
	}
	return time.Since(*user.LastLoginAttempt) < lockoutDuration
}

func (s *Service) recordFailedAttempt(ctx context.Context, user *model.User) {
	now := time.Now()
	// The lockout window restarts once it has elapsed.
	if user.LastLoginAttempt != nil && time.Since(*user.LastLoginAttempt) >= lockoutDuration {
		user.LoginAttempts = 0
	}
	user.LoginAttempts++
	user.LastLoginAttempt = &now
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error(err, "failed to record login attempt", "user_id", user.ID)
	}
}
