package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
	"github.com/SscSPs/banking_backoffice_app/internal/utils/pagination"
)

// DefaultRecordOrder is applied when a listing does not name a sort key.
const DefaultRecordOrder = "IsPending"

type recordService struct {
	BaseService
	recordRepo portsrepo.RecordReader
	now        func() time.Time
}

// NewRecordService creates the read side of the audit trail.
func NewRecordService(recordRepo portsrepo.RecordReader) portssvc.RecordSvcFacade {
	return &recordService{
		recordRepo: recordRepo,
		now:        time.Now,
	}
}

var _ portssvc.RecordSvcFacade = (*recordService)(nil)

func (s *recordService) GetTransactionHistory(ctx context.Context, userID int64) ([]domain.Record, error) {
	records, err := s.recordRepo.FindRecordsForUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transaction history", slog.Int64("user_id", userID))
		return nil, err
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

func (s *recordService) ListRecords(ctx context.Context, params dto.ListRecordsParams) ([]domain.Record, pagination.Metadata, error) {
	pageNumber, pageSize := pagination.NormalizePage(params.PageNumber, params.PageSize)

	filter := domain.RecordFilter{
		UserID:     params.UserID,
		IsPending:  params.IsPending,
		EndingDate: s.now().UTC(),
		OrderBy:    params.OrderBy,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
	if params.BeginningDate != nil {
		filter.BeginningDate = params.BeginningDate.UTC()
	}
	if params.EndingDate != nil {
		filter.EndingDate = params.EndingDate.UTC()
	}
	if filter.OrderBy == "" {
		filter.OrderBy = DefaultRecordOrder
	}

	if !filter.BeginningDate.Before(filter.EndingDate) {
		return nil, pagination.Metadata{}, fmt.Errorf("%w: Beginning date must be before the ending date", apperrors.ErrValidation)
	}

	page, err := s.recordRepo.ListRecords(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list records", slog.String("order_by", filter.OrderBy))
		return nil, pagination.Metadata{}, err
	}

	records := page.Records
	if records == nil {
		records = []domain.Record{}
	}
	return records, pagination.NewMetadata(page.TotalCount, pageNumber, pageSize), nil
}
