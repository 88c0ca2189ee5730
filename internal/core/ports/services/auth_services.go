package services

import (
	"context"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// IssueTokens creates an access token and a fresh refresh token for user and stores the
	// refresh token hash.
	IssueTokens(ctx context.Context, user *domain.User) (*dto.TokenResponse, error)

	// RefreshTokens exchanges an expired access token plus its refresh token for a new pair.
	RefreshTokens(ctx context.Context, accessToken, refreshToken string) (*dto.TokenResponse, error)
}
