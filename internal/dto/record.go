package dto

import (
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
)

// ListRecordsParams defines query parameters for the support record listing.
// Omitted values are defaulted by the record service.
type ListRecordsParams struct {
	UserID        *int64     `form:"userId"`
	IsPending     *bool      `form:"isPending"`
	BeginningDate *time.Time `form:"beginningDate" time_format:"2006-01-02T15:04:05Z07:00"`
	EndingDate    *time.Time `form:"endingDate" time_format:"2006-01-02T15:04:05Z07:00"`
	OrderBy       string     `form:"orderBy"`
	PageNumber    int        `form:"pageNumber" binding:"omitempty,gte=1,lte=1000000"`
	PageSize      int        `form:"pageSize" binding:"omitempty,gte=1"`
}

// RecordResponse mirrors domain.Record.
type RecordResponse struct {
	ID                int64     `json:"id"`
	TimeStamp         time.Time `json:"timeStamp"`
	OperationType     string    `json:"operationType"`
	Amount            int64     `json:"amount"`
	UserID            int64     `json:"userId"`
	AccountID         *int64    `json:"accountId"`
	ReceiverAccountID *int64    `json:"receiverAccountId"`
	IsSuccessfull     bool      `json:"isSuccessfull"`
	ErrorMessage      *string   `json:"errorMessage"`
	IsPending         bool      `json:"isPending"`
}

func ToRecordResponse(r *domain.Record) RecordResponse {
	return RecordResponse{
		ID:                r.ID,
		TimeStamp:         r.TimeStamp,
		OperationType:     string(r.OperationType),
		Amount:            r.Amount,
		UserID:            r.UserID,
		AccountID:         r.AccountID,
		ReceiverAccountID: r.ReceiverAccountID,
		IsSuccessfull:     r.IsSuccessfull,
		ErrorMessage:      r.ErrorMessage,
		IsPending:         r.IsPending,
	}
}

// ToListRecordResponse converts a slice of domain.Record to a slice of RecordResponse DTOs
func ToListRecordResponse(records []domain.Record) []RecordResponse {
	res := make([]RecordResponse, len(records))
	for i := range records {
		res[i] = ToRecordResponse(&records[i])
	}
	return res
}
