package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
	"github.com/SscSPs/banking_backoffice_app/internal/platform/metrics"
)

// ErrorRecordHandler persists failure records on a session of their own, after the session of
// the failed operation has been rolled back and disposed.
type ErrorRecordHandler struct {
	BaseService
	uowFactory portsrepo.UnitOfWorkFactory
	metrics    *metrics.Metrics
}

func NewErrorRecordHandler(uowFactory portsrepo.UnitOfWorkFactory, m *metrics.Metrics) *ErrorRecordHandler {
	return &ErrorRecordHandler{uowFactory: uowFactory, metrics: m}
}

// AddErrorRecord saves record in autocommit mode. Failures are logged and swallowed so the
// caller can still surface the original error.
func (h *ErrorRecordHandler) AddErrorRecord(ctx context.Context, record *domain.Record) {
	// The record must outlive a cancelled request.
	ctx = context.WithoutCancel(ctx)

	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Dispose()

	uow.Records().AddRecord(record)
	if err := uow.SaveChanges(ctx); err != nil {
		h.LogError(ctx, err, "Failed to persist failure record",
			slog.String("operation", string(record.OperationType)),
			slog.Int64("user_id", record.UserID))
		h.metrics.IncErrorRecord(metrics.OutcomeFailure)
		return
	}

	h.LogInfo(ctx, "Failure record has been created",
		slog.Int64("record_id", record.ID),
		slog.String("operation", string(record.OperationType)),
		slog.Bool("pending", record.IsPending))
	h.metrics.IncErrorRecord(metrics.OutcomeSuccess)
}
