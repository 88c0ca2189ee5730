package dto

import (
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
)

// CreateBillRequest sets up a recurring automatic payment on the caller's account.
// LastPayTime is the next time the bill is due.
type CreateBillRequest struct {
	Amount      int64     `json:"amount" binding:"required,gt=0,lte=1000000000000"`
	LastPayTime time.Time `json:"lastPayTime" binding:"required,billdate"`
}

type BillResponse struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"accountId"`
	Amount      int64     `json:"amount"`
	LastPayTime time.Time `json:"lastPayTime"`
	IsActive    bool      `json:"isActive"`
}

func ToBillResponse(b *domain.Bill) BillResponse {
	return BillResponse{
		ID:          b.ID,
		AccountID:   b.AccountID,
		Amount:      b.Amount,
		LastPayTime: b.LastPayTime,
		IsActive:    b.IsActive,
	}
}
