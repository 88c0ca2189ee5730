package services

import (
	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice_app/internal/platform/config"
	"github.com/SscSPs/banking_backoffice_app/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Failure records share the unit of work factory but never a session with the failed operation.
	errorRecords := NewErrorRecordHandler(repos.UnitOfWork, m)

	container.Ledger = NewLedgerService(
		repos.UnitOfWork,
		repos.RecordRepo,
		errorRecords,
		WithCumulativeDailyLimit(cfg.CumulativeDailyLimit),
		WithLedgerMetrics(m),
	)
	container.Record = NewRecordService(repos.RecordRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, repos.UserRepo)

	container.Jobs = []portssvc.JobSvc{
		NewDailySpendResetJob(repos.UnitOfWork, cfg.DailySpendResetSchedule),
		NewBillPaymentJob(repos.UnitOfWork, cfg.BillPaymentSchedule, nil),
	}

	return container
}
