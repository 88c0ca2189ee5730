package services

import (
	"context"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
	"github.com/SscSPs/banking_backoffice_app/internal/utils/pagination"
)

// RecordSvcFacade exposes the audit trail.
type RecordSvcFacade interface {
	// GetTransactionHistory returns every record of userID.
	GetTransactionHistory(ctx context.Context, userID int64) ([]domain.Record, error)

	// ListRecords returns one filtered, ordered page of records and its page metadata.
	ListRecords(ctx context.Context, params dto.ListRecordsParams) ([]domain.Record, pagination.Metadata, error)
}
