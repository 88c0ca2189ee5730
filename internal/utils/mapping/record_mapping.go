package mapping

import (
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	"github.com/SscSPs/banking_backoffice_app/internal/models"
)

// ToModelRecord converts a domain Record to a model Record
func ToModelRecord(d *domain.Record) models.Record {
	return models.Record{
		ID:                d.ID,
		TimeStamp:         d.TimeStamp,
		OperationType:     string(d.OperationType),
		Amount:            d.Amount,
		UserID:            d.UserID,
		AccountID:         d.AccountID,
		ReceiverAccountID: d.ReceiverAccountID,
		IsSuccessfull:     d.IsSuccessfull,
		ErrorMessage:      d.ErrorMessage,
		IsPending:         d.IsPending,
	}
}

// ToDomainRecord converts a model Record to a domain Record
func ToDomainRecord(m models.Record) domain.Record {
	return domain.Record{
		ID:                m.ID,
		TimeStamp:         m.TimeStamp,
		OperationType:     domain.OperationType(m.OperationType),
		Amount:            m.Amount,
		UserID:            m.UserID,
		AccountID:         m.AccountID,
		ReceiverAccountID: m.ReceiverAccountID,
		IsSuccessfull:     m.IsSuccessfull,
		ErrorMessage:      m.ErrorMessage,
		IsPending:         m.IsPending,
	}
}

// ToDomainRecordSlice converts a slice of model Records to a slice of domain Records
func ToDomainRecordSlice(ms []models.Record) []domain.Record {
	ds := make([]domain.Record, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRecord(m)
	}
	return ds
}
