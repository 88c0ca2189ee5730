package dto

import (
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
)

// MaxRequestAmount is the largest amount a single request may carry, in minor units.
// It is spelled out in the lte binding tags below.
const MaxRequestAmount int64 = 1_000_000_000_000

// CreateAccountRequest opens the caller's account with an opening balance.
type CreateAccountRequest struct {
	Balance int64 `json:"balance" binding:"required,gte=100,lte=1000000000000"`
}

// DepositRequest credits the caller's account.
type DepositRequest struct {
	Amount int64 `json:"amount" binding:"required,gte=1,lte=1000000000000"`
}

// WithdrawRequest debits the caller's account.
type WithdrawRequest struct {
	Amount int64 `json:"amount" binding:"required,gte=1,lte=1000000000000"`
}

// TransferRequest moves money from the caller's account to another account.
type TransferRequest struct {
	ReceiverAccountID int64 `json:"receiverAccountId" binding:"required,gt=0"`
	Amount            int64 `json:"amount" binding:"required,gte=1,lte=1000000000000"`
}

// AccountResponse defines the data returned for an account. Amounts are integer minor units.
type AccountResponse struct {
	ID             int64          `json:"id"`
	UserID         int64          `json:"userId"`
	Balance        int64          `json:"balance"`
	DailySpend     int64          `json:"dailySpend"`
	DailyLimit     int64          `json:"dailyLimit"`
	OperationLimit int64          `json:"operationLimit"`
	CreatedAt      time.Time      `json:"createdAt"`
	Bills          []BillResponse `json:"bills,omitempty"`
}

// TransferResponse carries both sides of a transfer.
type TransferResponse struct {
	Sender   AccountResponse `json:"sender"`
	Receiver AccountResponse `json:"receiver"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	res := AccountResponse{
		ID:             acc.ID,
		UserID:         acc.UserID,
		Balance:        acc.Balance,
		DailySpend:     acc.DailySpend,
		DailyLimit:     acc.DailyLimit,
		OperationLimit: acc.OperationLimit,
		CreatedAt:      acc.CreatedAt,
	}
	for _, b := range acc.Bills {
		res.Bills = append(res.Bills, ToBillResponse(b))
	}
	return res
}
