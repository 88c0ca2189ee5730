package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user with roles by id.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByUserName retrieves a user with roles by login name.
	FindUserByUserName(ctx context.Context, userName string) (*domain.User, error)

	// RoleExists reports whether a role is defined.
	RoleExists(ctx context.Context, role domain.Role) (bool, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser inserts a user and its role grants in one transaction, setting user.ID.
	SaveUser(ctx context.Context, user *domain.User) error

	// ReplaceUserRoles swaps the role grants of a user.
	ReplaceUserRoles(ctx context.Context, userID int64, roles []domain.Role) error

	// UpdateRefreshToken stores the hash and expiry of a user's current refresh token.
	UpdateRefreshToken(ctx context.Context, userID int64, refreshTokenHash string, expiry time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
