package services

import (
	"context"
	"log/slog"

	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
)

const DailySpendResetJobName = "daily-spend-reset"

// dailySpendResetJob zeroes the daily spend of every account. It writes no records.
type dailySpendResetJob struct {
	BaseService
	uowFactory portsrepo.UnitOfWorkFactory
	schedule   string
}

func NewDailySpendResetJob(uowFactory portsrepo.UnitOfWorkFactory, schedule string) portssvc.JobSvc {
	return &dailySpendResetJob{uowFactory: uowFactory, schedule: schedule}
}

func (j *dailySpendResetJob) Name() string     { return DailySpendResetJobName }
func (j *dailySpendResetJob) Schedule() string { return j.schedule }

func (j *dailySpendResetJob) Run(ctx context.Context) error {
	uow := j.uowFactory.NewUnitOfWork()
	defer uow.Dispose()

	tx, err := uow.BeginTransaction(ctx)
	if err != nil {
		j.LogError(ctx, err, "Failed to begin daily spend reset", slog.String("job", j.Name()))
		return err
	}

	reset, err := uow.Accounts().ResetDailySpend(ctx)
	if err != nil {
		j.rollback(ctx, tx)
		j.LogError(ctx, err, "Failed to reset daily spend", slog.String("job", j.Name()))
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		j.rollback(ctx, tx)
		j.LogError(ctx, err, "Failed to commit daily spend reset", slog.String("job", j.Name()))
		return err
	}

	j.LogInfo(ctx, "Daily spend has been reset", slog.String("job", j.Name()), slog.Int64("accounts", reset))
	return nil
}

func (j *dailySpendResetJob) rollback(ctx context.Context, tx portsrepo.Transaction) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil {
		j.LogError(ctx, err, "Failed to roll back transaction", slog.String("job", j.Name()))
	}
}
