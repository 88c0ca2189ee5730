package apperrors

import (
	"errors"
	"fmt"
)

// Violation tags the business rule a ledger operation broke.
type Violation int

const (
	ViolationNone Violation = iota
	ViolationNotFound
	ViolationInsufficientFunds
	ViolationDailyLimit
	ViolationOperationLimit
	ViolationConcurrencyConflict
	ViolationAccountExists
	ViolationBalanceOverflow
)

func (v Violation) String() string {
	switch v {
	case ViolationNotFound:
		return "not-found"
	case ViolationInsufficientFunds:
		return "insufficient-funds"
	case ViolationDailyLimit:
		return "daily-limit"
	case ViolationOperationLimit:
		return "operation-limit"
	case ViolationConcurrencyConflict:
		return "concurrency-conflict"
	case ViolationAccountExists:
		return "account-exists"
	case ViolationBalanceOverflow:
		return "balance-overflow"
	default:
		return "none"
	}
}

// Retryable reports whether a failure of this kind leaves its audit record pending.
// Only operation-limit breaches can be replayed by support.
func (v Violation) Retryable() bool {
	return v == ViolationOperationLimit
}

// LedgerError is the outcome of a ledger operation that was refused or could not be persisted.
type LedgerError struct {
	Violation Violation
	Message   string
	Err       error
}

func (e *LedgerError) Error() string {
	return e.Message
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

// Is lets callers keep using the generic sentinels for the violations that have one.
func (e *LedgerError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Violation == ViolationNotFound
	case ErrDuplicate:
		return e.Violation == ViolationAccountExists
	}
	return false
}

// ViolationOf extracts the violation tag from err, or ViolationNone when err is not a ledger outcome.
func ViolationOf(err error) Violation {
	var ledgerErr *LedgerError
	if errors.As(err, &ledgerErr) {
		return ledgerErr.Violation
	}
	return ViolationNone
}

func AccountNotFoundForUser(userID int64) *LedgerError {
	return &LedgerError{
		Violation: ViolationNotFound,
		Message:   fmt.Sprintf("Account with user id %d does not exist in the database", userID),
	}
}

func AccountNotFound(accountID int64) *LedgerError {
	return &LedgerError{
		Violation: ViolationNotFound,
		Message:   fmt.Sprintf("Account with id %d does not exist in the database", accountID),
	}
}

func InsufficientFunds() *LedgerError {
	return &LedgerError{
		Violation: ViolationInsufficientFunds,
		Message:   "Insufficient funds for the withdrawal.",
	}
}

func DailyLimitExceeded(accountID int64) *LedgerError {
	return &LedgerError{
		Violation: ViolationDailyLimit,
		Message:   fmt.Sprintf("Daily spending limit exceeded for account with id %d", accountID),
	}
}

func OperationLimitExceeded(accountID int64) *LedgerError {
	return &LedgerError{
		Violation: ViolationOperationLimit,
		Message:   fmt.Sprintf("Operation limit exceeded for account with id %d", accountID),
	}
}

func ConcurrencyConflict(accountID int64) *LedgerError {
	return &LedgerError{
		Violation: ViolationConcurrencyConflict,
		Message:   fmt.Sprintf("Account with id %d was modified by another operation, please retry", accountID),
	}
}

func AccountAlreadyExists(userID int64) *LedgerError {
	return &LedgerError{
		Violation: ViolationAccountExists,
		Message:   fmt.Sprintf("Account for user id %d already exists", userID),
	}
}

func BalanceOverflow(accountID int64) *LedgerError {
	return &LedgerError{
		Violation: ViolationBalanceOverflow,
		Message:   fmt.Sprintf("Balance of account with id %d cannot hold the amount", accountID),
	}
}
