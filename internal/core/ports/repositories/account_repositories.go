package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
)

// AccountReader defines read operations for account data. Returned accounts are tracked by the
// session that loaded them, and loading the same row twice returns the same instance.
type AccountReader interface {
	// FindAccountByID returns apperrors.ErrNotFound when no account has the id.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByUserID returns apperrors.ErrNotFound when the user has no account.
	FindAccountByUserID(ctx context.Context, userID int64) (*domain.Account, error)

	// FindAccountsWithBillsDue loads every account with at least one active bill whose next pay
	// time falls in [from, to), with only those bills attached.
	FindAccountsWithBillsDue(ctx context.Context, from, to time.Time) ([]*domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// AddAccount stages a new account; its ID and Version are set by SaveChanges.
	AddAccount(account *domain.Account)

	// ResetDailySpend zeroes every account's daily spend immediately on the session and bumps the
	// row version of each changed row. It returns the number of rows changed.
	ResetDailySpend(ctx context.Context) (int64, error)
}

// AccountRepository is the session-scoped account repository.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
