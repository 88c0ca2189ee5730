package services

import (
	"context"
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
)

// LedgerReaderSvc defines read operations on the caller's account.
type LedgerReaderSvc interface {
	// GetAccount returns the account owned by userID together with its bills.
	GetAccount(ctx context.Context, userID int64) (*domain.Account, error)
}

// LedgerWriterSvc defines the money-movement use cases. Every call writes exactly one record,
// either in the same transaction as the mutation or, after a rollback, on its own.
type LedgerWriterSvc interface {
	CreateAccount(ctx context.Context, userID int64, openingBalance int64) (*domain.Account, error)
	Deposit(ctx context.Context, userID int64, amount int64) (*domain.Account, error)
	Withdraw(ctx context.Context, userID int64, amount int64) (*domain.Account, error)
	Transfer(ctx context.Context, userID int64, receiverAccountID int64, amount int64) (sender *domain.Account, receiver *domain.Account, err error)
	// SetupAutomaticPayment attaches a recurring bill to the caller's account.
	SetupAutomaticPayment(ctx context.Context, userID int64, amount int64, lastPayTime time.Time) (*domain.Bill, error)
}

// PendingRecordSvc lets support staff replay operations that failed on the operation limit.
type PendingRecordSvc interface {
	// ExecutePendingRecord claims the pending record and replays it for its owner.
	// It returns the owner's account after the replay.
	ExecutePendingRecord(ctx context.Context, recordID int64) (*domain.Account, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	PendingRecordSvc
}
