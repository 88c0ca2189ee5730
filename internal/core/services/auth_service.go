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
	"github.com/SscSPs/banking_backoffice_app/internal/platform/config"
	"github.com/SscSPs/banking_backoffice_app/internal/utils"
)

// refreshTokenBytes is the entropy of a refresh token; it is hex encoded to twice this length.
const refreshTokenBytes = 32

// tokenService implements the TokenSvcFacade for handling JWT and refresh tokens.
type tokenService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:      cfg,
		userRepo: userRepo,
		now:      time.Now,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) IssueTokens(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}

	accessToken, err := utils.GenerateJWT(user.ID, user.UserName, roles, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.Int64("user_id", user.ID))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateSecureRandomString(refreshTokenBytes)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token", slog.Int64("user_id", user.ID))
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiry := s.now().Add(s.cfg.RefreshTokenExpiryDuration).UTC()
	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, utils.HashRefreshToken(refreshToken), expiry); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.Int64("user_id", user.ID))
		return nil, err
	}

	return &dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshTokens only trusts the access token's signature; its expiry is expected to have passed.
func (s *tokenService) RefreshTokens(ctx context.Context, accessToken, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := utils.ParseExpiredJWT(accessToken, s.cfg.JWTSecret)
	if err != nil {
		s.LogWarn(ctx, "Refresh attempted with an invalid access token", slog.String("error", err.Error()))
		return nil, apperrors.ErrInvalidRefreshToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, err
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil ||
		!utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		s.LogWarn(ctx, "Refresh token mismatch", slog.Int64("user_id", userID))
		return nil, apperrors.ErrInvalidRefreshToken
	}
	if !s.now().Before(*user.RefreshTokenExpiryTime) {
		s.LogInfo(ctx, "Stored refresh token has expired", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidRefreshToken, apperrors.ErrRefreshTokenExpired)
	}

	return s.IssueTokens(ctx, user)
}
