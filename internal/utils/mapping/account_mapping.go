package mapping

import (
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	"github.com/SscSPs/banking_backoffice_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d *domain.Account) models.Account {
	return models.Account{
		ID:             d.ID,
		Balance:        d.Balance,
		CreatedAt:      d.CreatedAt,
		UserID:         d.UserID,
		DailySpend:     d.DailySpend,
		DailyLimit:     d.DailyLimit,
		OperationLimit: d.OperationLimit,
		Version:        d.Version,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) *domain.Account {
	return &domain.Account{
		ID:             m.ID,
		Balance:        m.Balance,
		CreatedAt:      m.CreatedAt,
		UserID:         m.UserID,
		DailySpend:     m.DailySpend,
		DailyLimit:     m.DailyLimit,
		OperationLimit: m.OperationLimit,
		Version:        m.Version,
	}
}
