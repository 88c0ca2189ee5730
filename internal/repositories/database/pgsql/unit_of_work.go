package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
	"github.com/SscSPs/banking_backoffice_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertAccountQuery = `
		INSERT INTO accounts (balance, created_at, user_id, daily_spend, daily_limit, operation_limit, version)
		VALUES ($1, $2, $3, $4, $5, $6, 1)
		RETURNING id, version;
	`
	updateAccountQuery = `
		UPDATE accounts
		SET balance = $1, daily_spend = $2, daily_limit = $3, operation_limit = $4, version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version;
	`
	insertBillQuery = `
		INSERT INTO bills (amount, last_pay_time, is_active, account_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`
	updateBillQuery = `
		UPDATE bills SET amount = $1, last_pay_time = $2, is_active = $3
		WHERE id = $4;
	`
	insertRecordQuery = `
		INSERT INTO records (time_stamp, operation_type, amount, user_id, account_id, receiver_account_id, is_successfull, error_message, is_pending)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
	`
)

// sessionConn is the dedicated connection a unit of work runs on.
type sessionConn interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Release()
}

var _ sessionConn = (*pgxpool.Conn)(nil)

type connAcquirer func(ctx context.Context) (sessionConn, error)

func poolAcquirer(pool *pgxpool.Pool) connAcquirer {
	return func(ctx context.Context) (sessionConn, error) {
		conn, err := pool.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

// pgxUnitOfWorkFactory hands out sessions backed by dedicated pool connections.
type pgxUnitOfWorkFactory struct {
	acquire connAcquirer
}

func newPgxUnitOfWorkFactory(pool *pgxpool.Pool) portsrepo.UnitOfWorkFactory {
	return &pgxUnitOfWorkFactory{acquire: poolAcquirer(pool)}
}

func (f *pgxUnitOfWorkFactory) NewUnitOfWork() portsrepo.UnitOfWork {
	return newPgxUnitOfWork(f.acquire)
}

func newPgxUnitOfWork(acquire connAcquirer) *pgxUnitOfWork {
	return &pgxUnitOfWork{acquire: acquire, tracker: newChangeTracker()}
}

// pgxUnitOfWork acquires its connection lazily and keeps it until Dispose, so every statement of
// the session, including reads done before BeginTransaction, runs on the same backend.
type pgxUnitOfWork struct {
	acquire  connAcquirer
	conn     sessionConn
	tx       pgx.Tx
	tracker  *changeTracker
	disposed bool
}

var _ portsrepo.UnitOfWork = (*pgxUnitOfWork)(nil)

func (u *pgxUnitOfWork) Accounts() portsrepo.AccountRepository {
	return &pgxAccountRepository{uow: u}
}

func (u *pgxUnitOfWork) Records() portsrepo.RecordWriter {
	return &pgxRecordWriter{uow: u}
}

func (u *pgxUnitOfWork) Bills() portsrepo.BillRepository {
	return &pgxBillRepository{uow: u}
}

// session returns the querier statements should run on: the open transaction if any, else the
// session connection.
func (u *pgxUnitOfWork) session(ctx context.Context) (querier, error) {
	if u.disposed {
		return nil, apperrors.ErrSessionDisposed
	}
	if u.tx != nil {
		return u.tx, nil
	}
	if u.conn == nil {
		conn, err := u.acquire(ctx)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to acquire database connection", err)
		}
		u.conn = conn
	}
	return u.conn, nil
}

func (u *pgxUnitOfWork) BeginTransaction(ctx context.Context) (portsrepo.Transaction, error) {
	if _, err := u.session(ctx); err != nil {
		return nil, err
	}
	if u.tx != nil {
		return nil, apperrors.NewAppError(500, "a transaction is already open on this unit of work", nil)
	}
	tx, err := u.conn.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	u.tx = tx
	return &pgxTransaction{uow: u, tx: tx}, nil
}

func (u *pgxUnitOfWork) SaveChanges(ctx context.Context) error {
	q, err := u.session(ctx)
	if err != nil {
		return err
	}
	if !u.tracker.hasChanges() {
		return nil
	}

	for len(u.tracker.addedAccounts) > 0 {
		account := u.tracker.addedAccounts[0]
		m := mapping.ToModelAccount(account)
		err := q.QueryRow(ctx, insertAccountQuery,
			m.Balance, m.CreatedAt, m.UserID, m.DailySpend, m.DailyLimit, m.OperationLimit,
		).Scan(&account.ID, &account.Version)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.AccountAlreadyExists(account.UserID)
			}
			return fmt.Errorf("failed to insert account for user %d: %w", account.UserID, err)
		}
		u.tracker.addedAccounts = u.tracker.addedAccounts[1:]
		u.tracker.attachAccount(account)
	}

	for _, ta := range u.tracker.dirtyAccounts() {
		m := mapping.ToModelAccount(ta.entity)
		var version int64
		err := q.QueryRow(ctx, updateAccountQuery,
			m.Balance, m.DailySpend, m.DailyLimit, m.OperationLimit, m.ID, m.Version,
		).Scan(&version)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Either the row is gone or another session bumped its version since we read it.
				return apperrors.ConcurrencyConflict(m.ID)
			}
			return fmt.Errorf("failed to update account %d: %w", m.ID, err)
		}
		ta.entity.Version = version
		ta.original = snapshotAccount(ta.entity)
	}

	for len(u.tracker.addedBills) > 0 {
		bill := u.tracker.addedBills[0]
		m := mapping.ToModelBill(bill)
		if err := q.QueryRow(ctx, insertBillQuery, m.Amount, m.LastPayTime, m.IsActive, m.AccountID).Scan(&bill.ID); err != nil {
			return fmt.Errorf("failed to insert bill for account %d: %w", m.AccountID, err)
		}
		u.tracker.addedBills = u.tracker.addedBills[1:]
		u.tracker.attachBill(bill)
	}

	for _, tb := range u.tracker.dirtyBills() {
		m := mapping.ToModelBill(tb.entity)
		if _, err := q.Exec(ctx, updateBillQuery, m.Amount, m.LastPayTime, m.IsActive, m.ID); err != nil {
			return fmt.Errorf("failed to update bill %d: %w", m.ID, err)
		}
		tb.original = snapshotBill(tb.entity)
	}

	return u.flushRecords(ctx, q)
}

// flushRecords inserts all staged records in one batch round trip.
func (u *pgxUnitOfWork) flushRecords(ctx context.Context, q querier) error {
	records := u.tracker.addedRecords
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, record := range records {
		m := mapping.ToModelRecord(record)
		batch.Queue(insertRecordQuery,
			m.TimeStamp, m.OperationType, m.Amount, m.UserID, m.AccountID,
			m.ReceiverAccountID, m.IsSuccessfull, m.ErrorMessage, m.IsPending,
		)
	}

	br := q.SendBatch(ctx, batch)
	var batchErr error
	for _, record := range records {
		if err := br.QueryRow().Scan(&record.ID); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert %s record for user %d: %w", record.OperationType, record.UserID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close record insert batch: %w", err)
	}
	if batchErr != nil {
		return batchErr
	}

	u.tracker.addedRecords = nil
	return nil
}

func (u *pgxUnitOfWork) ClearChangeTracker() {
	u.tracker.clear()
}

func (u *pgxUnitOfWork) Dispose() {
	if u.disposed {
		return
	}
	u.disposed = true
	if u.tx != nil {
		// The request context may already be cancelled; the rollback must still reach the server.
		if err := u.tx.Rollback(context.Background()); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Warn("Failed to roll back transaction on dispose", slog.String("error", err.Error()))
		}
		u.tx = nil
	}
	if u.conn != nil {
		u.conn.Release()
		u.conn = nil
	}
	u.tracker.clear()
}

// pgxTransaction is the terminal commit/rollback handle returned by BeginTransaction.
type pgxTransaction struct {
	uow  *pgxUnitOfWork
	tx   pgx.Tx
	done bool
}

func (t *pgxTransaction) Commit(ctx context.Context) error {
	if t.done {
		return apperrors.NewAppError(500, "transaction already completed", pgx.ErrTxClosed)
	}
	t.done = true
	t.uow.tx = nil
	if err := t.tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

func (t *pgxTransaction) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.uow.tx = nil
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}
