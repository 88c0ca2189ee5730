package repositories

import "context"

// Transaction is a handle on an open storage transaction.
// Commit and Rollback are terminal for the handle: after either, Commit fails and Rollback is a no-op.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWork is one storage session scoped to a single use case invocation.
// Entities loaded through its repositories are tracked; SaveChanges flushes staged inserts and
// modified tracked entities, checking each account's row version.
type UnitOfWork interface {
	Accounts() AccountRepository
	Records() RecordWriter
	Bills() BillRepository

	// BeginTransaction opens a transaction on the session. Only one may be open at a time.
	BeginTransaction(ctx context.Context) (Transaction, error)

	// SaveChanges flushes pending changes inside the open transaction, or in autocommit mode when
	// none is open. Calling it again without new changes does nothing. A stale account row version
	// yields an apperrors.ViolationConcurrencyConflict error.
	SaveChanges(ctx context.Context) error

	// ClearChangeTracker forgets every tracked and staged entity.
	ClearChangeTracker()

	// Dispose rolls back any open transaction and releases the session. Further use returns
	// apperrors.ErrSessionDisposed.
	Dispose()
}

// UnitOfWorkFactory opens independent storage sessions.
type UnitOfWorkFactory interface {
	NewUnitOfWork() UnitOfWork
}
