package services

import (
	"context"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new user with the requested roles.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// UpdateUserRoles replaces every role of a user.
	UpdateUserRoles(ctx context.Context, userID int64, roles []string) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks a username and password pair.
	AuthenticateUser(ctx context.Context, userName, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
