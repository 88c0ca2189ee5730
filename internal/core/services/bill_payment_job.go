package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice_app/internal/utils"
)

const (
	BillPaymentJobName = "bill-payment"

	insufficientFundsForBill = "Insufficient funds for the bill payment."
)

// billPaymentJob charges every active bill due on the current UTC day. The whole run is one
// transaction; a bill the balance cannot cover stays due and gets a pending Payment record.
type billPaymentJob struct {
	BaseService
	uowFactory portsrepo.UnitOfWorkFactory
	schedule   string
	now        func() time.Time
}

func NewBillPaymentJob(uowFactory portsrepo.UnitOfWorkFactory, schedule string, now func() time.Time) portssvc.JobSvc {
	if now == nil {
		now = time.Now
	}
	return &billPaymentJob{uowFactory: uowFactory, schedule: schedule, now: now}
}

func (j *billPaymentJob) Name() string     { return BillPaymentJobName }
func (j *billPaymentJob) Schedule() string { return j.schedule }

func (j *billPaymentJob) Run(ctx context.Context) error {
	uow := j.uowFactory.NewUnitOfWork()
	defer uow.Dispose()

	tx, err := uow.BeginTransaction(ctx)
	if err != nil {
		j.LogError(ctx, err, "Failed to begin bill payment run", slog.String("job", j.Name()))
		return err
	}

	now := j.now()
	today := domain.StartOfDay(now)
	accounts, err := uow.Accounts().FindAccountsWithBillsDue(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return j.abort(ctx, tx, err, "Failed to load due bills")
	}

	var paid, unpaid int
	var total int64
	for _, account := range accounts {
		for _, bill := range account.Bills {
			if !bill.IsDueOn(now) {
				continue
			}
			record := domain.NewRecord(domain.OperationPayment, bill.Amount, account.UserID, now).WithAccount(account.ID)
			if account.Balance >= bill.Amount {
				account.PayBill(bill)
				total += bill.Amount
				paid++
			} else {
				record.Fail(insufficientFundsForBill, true)
				unpaid++
			}
			uow.Records().AddRecord(record)
		}
	}

	if err := uow.SaveChanges(ctx); err != nil {
		return j.abort(ctx, tx, err, "Failed to save bill payments")
	}
	if err := tx.Commit(ctx); err != nil {
		return j.abort(ctx, tx, err, "Failed to commit bill payments")
	}

	j.LogInfo(ctx, "Bill payment run finished",
		slog.String("job", j.Name()),
		slog.Int("accounts", len(accounts)),
		slog.Int("paid", paid),
		slog.Int("unpaid", unpaid),
		slog.String("total_paid", utils.FormatAmount(total)))
	return nil
}

func (j *billPaymentJob) abort(ctx context.Context, tx portsrepo.Transaction, cause error, msg string) error {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil {
		j.LogError(ctx, err, "Failed to roll back transaction", slog.String("job", j.Name()))
	}
	j.LogError(ctx, cause, msg, slog.String("job", j.Name()))
	return cause
}
