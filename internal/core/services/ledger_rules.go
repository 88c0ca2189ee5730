package services

import (
	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
)

// SpendingRules are the checks a debit must pass, evaluated in order; the first one broken wins.
type SpendingRules struct {
	// CumulativeDailyLimit compares today's spend plus amount with the daily limit. When false the
	// daily limit caps each single operation.
	CumulativeDailyLimit bool
}

// Check returns the ledger error for the first rule amount breaks on account, or nil.
func (r SpendingRules) Check(account *domain.Account, amount int64) error {
	if account.Balance-amount < 0 {
		return apperrors.InsufficientFunds()
	}
	if r.exceedsDailyLimit(account, amount) {
		return apperrors.DailyLimitExceeded(account.ID)
	}
	if account.OperationLimit < amount {
		return apperrors.OperationLimitExceeded(account.ID)
	}
	return nil
}

func (r SpendingRules) exceedsDailyLimit(account *domain.Account, amount int64) bool {
	if r.CumulativeDailyLimit {
		return account.DailySpend+amount > account.DailyLimit
	}
	return account.DailyLimit < amount
}
