package repositories

import (
	"context"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
)

// RecordWriter appends audit records through a unit of work.
type RecordWriter interface {
	// AddRecord stages a record; its ID is set by SaveChanges. Records are never updated.
	AddRecord(record *domain.Record)
}

// RecordReader defines read operations over the audit trail. It runs outside any unit of work.
type RecordReader interface {
	// FindRecordsForUser returns every record of a user ordered by id.
	FindRecordsForUser(ctx context.Context, userID int64) ([]domain.Record, error)

	// ListRecords returns a filtered, ordered page of records.
	// An unknown sort key in filter.OrderBy yields apperrors.ErrValidation.
	ListRecords(ctx context.Context, filter domain.RecordFilter) (*domain.RecordPage, error)
}

// PendingRecordClaimer hands pending records to exactly one replayer.
type PendingRecordClaimer interface {
	// ClaimPendingRecord atomically clears the pending flag of a record of one of the given types
	// and returns it. It returns apperrors.ErrNotFound when no such pending record exists.
	ClaimPendingRecord(ctx context.Context, recordID int64, types []domain.OperationType) (*domain.Record, error)
}

// RecordRepositoryFacade combines the pool-level record operations.
type RecordRepositoryFacade interface {
	RecordReader
	PendingRecordClaimer
}
