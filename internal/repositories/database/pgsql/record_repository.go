package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
	"github.com/SscSPs/banking_backoffice_app/internal/models"
	"github.com/SscSPs/banking_backoffice_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recordColumns = `r.id, r.time_stamp, r.operation_type, r.amount, r.user_id, r.account_id,
	r.receiver_account_id, r.is_successfull, r.error_message, r.is_pending`

// pgxRecordWriter stages records on a unit of work.
type pgxRecordWriter struct {
	uow *pgxUnitOfWork
}

var _ portsrepo.RecordWriter = (*pgxRecordWriter)(nil)

func (w *pgxRecordWriter) AddRecord(record *domain.Record) {
	w.uow.tracker.addedRecords = append(w.uow.tracker.addedRecords, record)
}

// PgxRecordRepository serves audit trail reads straight from the pool.
type PgxRecordRepository struct {
	BaseRepository
}

func newPgxRecordRepository(pool *pgxpool.Pool) portsrepo.RecordRepositoryFacade {
	return &PgxRecordRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RecordRepositoryFacade = (*PgxRecordRepository)(nil)

func (r *PgxRecordRepository) getRecords(ctx context.Context, tail string, args ...any) ([]domain.Record, error) {
	rows, err := r.Pool.Query(ctx, "SELECT "+recordColumns+" FROM records r "+tail, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query records", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Record])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect record rows", err)
	}
	return mapping.ToDomainRecordSlice(ms), nil
}

// FindRecordsForUser returns all records of a user.
func (r *PgxRecordRepository) FindRecordsForUser(ctx context.Context, userID int64) ([]domain.Record, error) {
	return r.getRecords(ctx, "WHERE r.user_id = $1 ORDER BY r.id", userID)
}

// ListRecords returns one filtered and ordered page of records along with the total match count.
func (r *PgxRecordRepository) ListRecords(ctx context.Context, filter domain.RecordFilter) (*domain.RecordPage, error) {
	orderBy, err := buildRecordOrderBy(filter.OrderBy)
	if err != nil {
		return nil, err
	}

	conditions := []string{"r.time_stamp >= $1", "r.time_stamp <= $2"}
	args := []any{filter.BeginningDate, filter.EndingDate}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("r.user_id = $%d", len(args)))
	}
	if filter.IsPending != nil {
		args = append(args, *filter.IsPending)
		conditions = append(conditions, fmt.Sprintf("r.is_pending = $%d", len(args)))
	}
	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM records r "+where, args...).Scan(&total); err != nil {
		return nil, apperrors.NewAppError(500, "failed to count records", err)
	}

	pageArgs := append(args, filter.PageSize, (filter.PageNumber-1)*filter.PageSize)
	tail := fmt.Sprintf("%s %s LIMIT $%d OFFSET $%d", where, orderBy, len(pageArgs)-1, len(pageArgs))
	records, err := r.getRecords(ctx, tail, pageArgs...)
	if err != nil {
		return nil, err
	}

	return &domain.RecordPage{Records: records, TotalCount: total}, nil
}

// ClaimPendingRecord flips a pending record to non-pending and returns it, in one statement, so two
// concurrent replays of the same record cannot both succeed.
func (r *PgxRecordRepository) ClaimPendingRecord(ctx context.Context, recordID int64, types []domain.OperationType) (*domain.Record, error) {
	typeNames := make([]string, len(types))
	for i, t := range types {
		typeNames[i] = string(t)
	}
	rows, err := r.Pool.Query(ctx, `
		UPDATE records r SET is_pending = FALSE
		WHERE r.id = $1 AND r.is_pending AND r.operation_type = ANY($2)
		RETURNING `+recordColumns+`;
	`, recordID, typeNames)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to claim pending record", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Record])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: Pending record with id %d does not exist in the database", apperrors.ErrNotFound, recordID)
		}
		return nil, apperrors.NewAppError(500, "failed to scan claimed record", err)
	}
	record := mapping.ToDomainRecord(m)
	return &record, nil
}
