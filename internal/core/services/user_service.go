package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
	"github.com/SscSPs/banking_backoffice_app/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, now: time.Now}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.UserNotFound(userID)
		}
		s.LogError(ctx, err, "Failed to get user", slog.Int64("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	roles, err := s.resolveRoles(ctx, req.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		UserName:     req.UserName,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to register user", slog.String("user_name", req.UserName))
		return nil, err
	}

	s.LogInfo(ctx, "User has been registered", slog.Int64("user_id", user.ID))
	return user, nil
}

func (s *userService) UpdateUserRoles(ctx context.Context, userID int64, roleNames []string) (*domain.User, error) {
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	roles, err := s.resolveRoles(ctx, roleNames)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.ReplaceUserRoles(ctx, userID, roles); err != nil {
		s.LogError(ctx, err, "Failed to update user roles", slog.Int64("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User roles have been updated", slog.Int64("user_id", userID), slog.Any("roles", roleNames))
	return s.GetUserByID(ctx, userID)
}

func (s *userService) AuthenticateUser(ctx context.Context, userName, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Login attempt for unknown user", slog.String("user_name", userName))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Login attempt with wrong password", slog.Int64("user_id", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// resolveRoles checks every requested role against the roles table, dropping duplicates.
func (s *userService) resolveRoles(ctx context.Context, names []string) ([]domain.Role, error) {
	roles := make([]domain.Role, 0, len(names))
	seen := make(map[domain.Role]bool, len(names))
	for _, name := range names {
		role := domain.Role(name)
		if seen[role] {
			continue
		}
		exists, err := s.userRepo.RoleExists(ctx, role)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.RoleNotFound(name)
		}
		seen[role] = true
		roles = append(roles, role)
	}
	return roles, nil
}
