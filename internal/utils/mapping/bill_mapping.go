package mapping

import (
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	"github.com/SscSPs/banking_backoffice_app/internal/models"
)

// ToModelBill converts a domain Bill to a model Bill
func ToModelBill(d *domain.Bill) models.Bill {
	return models.Bill{
		ID:          d.ID,
		Amount:      d.Amount,
		LastPayTime: d.LastPayTime,
		IsActive:    d.IsActive,
		AccountID:   d.AccountID,
	}
}

// ToDomainBill converts a model Bill to a domain Bill
func ToDomainBill(m models.Bill) *domain.Bill {
	return &domain.Bill{
		ID:          m.ID,
		Amount:      m.Amount,
		LastPayTime: m.LastPayTime,
		IsActive:    m.IsActive,
		AccountID:   m.AccountID,
	}
}
