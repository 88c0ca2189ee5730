package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice_app/internal/platform/metrics"
)

var tracer = otel.Tracer("services/ledger")

// replayableOperations are the record types support may execute again.
var replayableOperations = func() []domain.OperationType {
	var types []domain.OperationType
	for _, t := range domain.OperationTypes {
		if t.Replayable() {
			types = append(types, t)
		}
	}
	return types
}()

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	uowFactory     portsrepo.UnitOfWorkFactory
	pendingRecords portsrepo.PendingRecordClaimer
	errorRecords   *ErrorRecordHandler
	rules          SpendingRules
	metrics        *metrics.Metrics
	now            func() time.Time
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*ledgerService)

// WithLedgerClock replaces time.Now for record timestamps and new accounts.
func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// WithCumulativeDailyLimit makes the daily limit apply to the day's total spend.
func WithCumulativeDailyLimit(enabled bool) LedgerOption {
	return func(s *ledgerService) {
		s.rules.CumulativeDailyLimit = enabled
	}
}

// WithLedgerMetrics counts operations by outcome.
func WithLedgerMetrics(m *metrics.Metrics) LedgerOption {
	return func(s *ledgerService) {
		s.metrics = m
	}
}

// NewLedgerService creates the ledger service. Every use case runs on its own unit of work from
// uowFactory; failure records go through errorRecords.
func NewLedgerService(
	uowFactory portsrepo.UnitOfWorkFactory,
	pendingRecords portsrepo.PendingRecordClaimer,
	errorRecords *ErrorRecordHandler,
	options ...LedgerOption,
) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		uowFactory:     uowFactory,
		pendingRecords: pendingRecords,
		errorRecords:   errorRecords,
		now:            time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetAccount(ctx context.Context, userID int64) (*domain.Account, error) {
	uow := s.uowFactory.NewUnitOfWork()
	defer uow.Dispose()

	account, err := s.accountOfUser(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	bills, err := uow.Bills().ListBillsForAccount(ctx, account.ID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bills", slog.Int64("account_id", account.ID))
		return nil, err
	}
	account.Bills = bills

	return account, nil
}

func (s *ledgerService) CreateAccount(ctx context.Context, userID int64, openingBalance int64) (*domain.Account, error) {
	ctx, span := s.startSpan(ctx, domain.OperationCreateAccount, userID, openingBalance)
	defer span.End()

	uow := s.uowFactory.NewUnitOfWork()
	defer uow.Dispose()

	now := s.now()
	var account *domain.Account
	record := domain.NewRecord(domain.OperationCreateAccount, openingBalance, userID, now)

	err := s.inTransaction(ctx, uow, record, func(ctx context.Context) error {
		_, err := uow.Accounts().FindAccountByUserID(ctx, userID)
		if err == nil {
			return apperrors.AccountAlreadyExists(userID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		account = domain.NewAccount(userID, openingBalance, now)
		uow.Accounts().AddAccount(account)
		// The record references the new row, so its id must exist first.
		if err := uow.SaveChanges(ctx); err != nil {
			return err
		}
		record.WithAccount(account.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Account has been created", slog.Int64("account_id", account.ID), slog.Int64("user_id", userID))
	return account, nil
}

func (s *ledgerService) Deposit(ctx context.Context, userID int64, amount int64) (*domain.Account, error) {
	ctx, span := s.startSpan(ctx, domain.OperationDeposit, userID, amount)
	defer span.End()

	uow := s.uowFactory.NewUnitOfWork()
	defer uow.Dispose()

	account, err := s.accountOfUser(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	record := domain.NewRecord(domain.OperationDeposit, amount, userID, s.now()).WithAccount(account.ID)
	err = s.inTransaction(ctx, uow, record, func(context.Context) error {
		return account.Credit(amount)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (s *ledgerService) Withdraw(ctx context.Context, userID int64, amount int64) (*domain.Account, error) {
	ctx, span := s.startSpan(ctx, domain.OperationWithdrawal, userID, amount)
	defer span.End()

	uow := s.uowFactory.NewUnitOfWork()
	defer uow.Dispose()

	account, err := s.accountOfUser(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	record := domain.NewRecord(domain.OperationWithdrawal, amount, userID, s.now()).WithAccount(account.ID)
	err = s.inTransaction(ctx, uow, record, func(context.Context) error {
		if err := s.rules.Check(account, amount); err != nil {
			return err
		}
		account.Spend(amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (s *ledgerService) Transfer(ctx context.Context, userID int64, receiverAccountID int64, amount int64) (*domain.Account, *domain.Account, error) {
	ctx, span := s.startSpan(ctx, domain.OperationTransfer, userID, amount)
	defer span.End()
	span.SetAttributes(attribute.Int64("ledger.receiver_account_id", receiverAccountID))

	uow := s.uowFactory.NewUnitOfWork()
	defer uow.Dispose()

	sender, err := s.accountOfUser(ctx, uow, userID)
	if err != nil {
		return nil, nil, err
	}
	receiver, err := uow.Accounts().FindAccountByID(ctx, receiverAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = apperrors.AccountNotFound(receiverAccountID)
		}
		s.LogError(ctx, err, "Failed to resolve receiver account", slog.Int64("account_id", receiverAccountID))
		return nil, nil, err
	}

	record := domain.NewRecord(domain.OperationTransfer, amount, userID, s.now()).
		WithAccount(sender.ID).
		WithReceiver(receiver.ID)
	err = s.inTransaction(ctx, uow, record, func(context.Context) error {
		// The receiver is not subject to any limit.
		if err := s.rules.Check(sender, amount); err != nil {
			return err
		}
		sender.Spend(amount)
		return receiver.Credit(amount)
	})
	if err != nil {
		return nil, nil, err
	}

	return sender, receiver, nil
}

func (s *ledgerService) SetupAutomaticPayment(ctx context.Context, userID int64, amount int64, lastPayTime time.Time) (*domain.Bill, error) {
	ctx, span := s.startSpan(ctx, domain.OperationAutomaticPaymentSetup, userID, amount)
	defer span.End()

	uow := s.uowFactory.NewUnitOfWork()
	defer uow.Dispose()

	account, err := s.accountOfUser(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	bill := &domain.Bill{
		Amount:      amount,
		LastPayTime: lastPayTime.UTC(),
		IsActive:    true,
		AccountID:   account.ID,
	}
	record := domain.NewRecord(domain.OperationAutomaticPaymentSetup, amount, userID, s.now()).WithAccount(account.ID)
	err = s.inTransaction(ctx, uow, record, func(context.Context) error {
		uow.Bills().AddBill(bill)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bill, nil
}

func (s *ledgerService) ExecutePendingRecord(ctx context.Context, recordID int64) (*domain.Account, error) {
	ctx, span := tracer.Start(ctx, "ledger.ExecutePendingRecord", trace.WithAttributes(
		attribute.Int64("ledger.record_id", recordID),
	))
	defer span.End()

	// Claiming first means a second replay of the same record finds nothing to execute.
	record, err := s.pendingRecords.ClaimPendingRecord(ctx, recordID, replayableOperations)
	if err != nil {
		s.LogError(ctx, err, "Failed to claim pending record", slog.Int64("record_id", recordID))
		return nil, err
	}
	s.LogInfo(ctx, "Replaying pending record",
		slog.Int64("record_id", record.ID),
		slog.String("operation", string(record.OperationType)))

	switch record.OperationType {
	case domain.OperationWithdrawal:
		return s.Withdraw(ctx, record.UserID, record.Amount)
	case domain.OperationTransfer:
		if record.ReceiverAccountID == nil {
			return nil, fmt.Errorf("%w: Transfer record with id %d has no receiver account", apperrors.ErrValidation, record.ID)
		}
		sender, _, err := s.Transfer(ctx, record.UserID, *record.ReceiverAccountID, record.Amount)
		return sender, err
	default:
		return nil, fmt.Errorf("%w: Record with id %d cannot be executed again", apperrors.ErrValidation, record.ID)
	}
}

// accountOfUser resolves the acting account before any transaction is opened. A missing account
// is reported without a record.
func (s *ledgerService) accountOfUser(ctx context.Context, uow portsrepo.UnitOfWork, userID int64) (*domain.Account, error) {
	account, err := uow.Accounts().FindAccountByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = apperrors.AccountNotFoundForUser(userID)
		}
		s.LogError(ctx, err, "Failed to resolve account", slog.Int64("user_id", userID))
		return nil, err
	}
	return account, nil
}

// inTransaction runs mutate inside a transaction on uow and stages record as the success record.
// On any failure the transaction is rolled back, the session is discarded and a failure record
// derived from record is written independently; the original error is returned.
func (s *ledgerService) inTransaction(ctx context.Context, uow portsrepo.UnitOfWork, record *domain.Record, mutate func(ctx context.Context) error) error {
	tx, err := uow.BeginTransaction(ctx)
	if err != nil {
		return s.fail(ctx, uow, nil, record, err)
	}

	if err := mutate(ctx); err != nil {
		return s.fail(ctx, uow, tx, record, err)
	}

	uow.Records().AddRecord(record)
	if err := uow.SaveChanges(ctx); err != nil {
		return s.fail(ctx, uow, tx, record, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return s.fail(ctx, uow, tx, record, err)
	}

	s.metrics.IncLedgerOperation(string(record.OperationType), metrics.OutcomeSuccess)
	s.LogDebug(ctx, "Ledger operation committed",
		slog.String("operation", string(record.OperationType)),
		slog.Int64("record_id", record.ID))
	return nil
}

func (s *ledgerService) fail(ctx context.Context, uow portsrepo.UnitOfWork, tx portsrepo.Transaction, record *domain.Record, cause error) error {
	cleanupCtx := context.WithoutCancel(ctx)
	if tx != nil {
		if err := tx.Rollback(cleanupCtx); err != nil {
			s.LogError(ctx, err, "Failed to roll back transaction")
		}
	}
	uow.ClearChangeTracker()
	uow.Dispose()

	failure := *record
	failure.ID = 0
	if failure.OperationType == domain.OperationCreateAccount {
		// The account row went away with the rollback.
		failure.AccountID = nil
	}
	violation := apperrors.ViolationOf(cause)
	failure.Fail(apperrors.Message(cause), violation.Retryable())

	s.LogError(ctx, cause, "Ledger operation failed",
		slog.String("operation", string(record.OperationType)),
		slog.String("violation", violation.String()),
		slog.Bool("pending", failure.IsPending))
	s.errorRecords.AddErrorRecord(ctx, &failure)
	s.metrics.IncLedgerOperation(string(record.OperationType), metrics.OutcomeFailure)

	span := trace.SpanFromContext(ctx)
	span.RecordError(cause)
	span.SetStatus(codes.Error, violation.String())

	return cause
}

func (s *ledgerService) startSpan(ctx context.Context, op domain.OperationType, userID, amount int64) (context.Context, trace.Span) {
	return tracer.Start(ctx, "ledger."+string(op), trace.WithAttributes(
		attribute.Int64("ledger.user_id", userID),
		attribute.Int64("ledger.amount", amount),
	))
}
