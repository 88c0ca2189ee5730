package domain

import (
	"math"
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
)

const (
	// DefaultDailyLimit is assigned to every newly opened account.
	DefaultDailyLimit int64 = 500
	// DefaultOperationLimit is assigned to every newly opened account.
	DefaultOperationLimit int64 = 250
	// MinimumOpeningBalance is the smallest balance an account can be opened with.
	MinimumOpeningBalance int64 = 100
)

// Account is a user's single bank account. Amounts are integer minor currency units.
type Account struct {
	ID             int64     `json:"id"`
	Balance        int64     `json:"balance"`
	CreatedAt      time.Time `json:"createdAt"`
	UserID         int64     `json:"userId"`
	DailySpend     int64     `json:"dailySpend"`
	DailyLimit     int64     `json:"dailyLimit"`
	OperationLimit int64     `json:"operationLimit"`
	Version        int64     `json:"-"` // row version checked on every update
	Bills          []*Bill   `json:"bills,omitempty"`
}

// NewAccount opens an account for userID with the default limits.
func NewAccount(userID, openingBalance int64, now time.Time) *Account {
	return &Account{
		Balance:        openingBalance,
		CreatedAt:      now,
		UserID:         userID,
		DailyLimit:     DefaultDailyLimit,
		OperationLimit: DefaultOperationLimit,
	}
}

// Credit adds amount to the balance. The balance is left untouched when the sum would not fit.
func (a *Account) Credit(amount int64) error {
	if amount > math.MaxInt64-a.Balance {
		return apperrors.BalanceOverflow(a.ID)
	}
	a.Balance += amount
	return nil
}

// Spend removes amount from the balance and counts it towards today's spend.
// Callers check the spending rules first.
func (a *Account) Spend(amount int64) {
	a.Balance -= amount
	a.DailySpend += amount
}

// PayBill deducts a bill from the balance. Bill payments do not count towards daily spend.
func (a *Account) PayBill(b *Bill) {
	a.Balance -= b.Amount
	b.Advance()
}
