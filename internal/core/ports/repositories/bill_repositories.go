package repositories

import (
	"context"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
)

// BillRepository is the session-scoped bill repository.
type BillRepository interface {
	// AddBill stages a new bill; its ID is set by SaveChanges.
	AddBill(bill *domain.Bill)

	// ListBillsForAccount returns every bill of an account, tracked by the session.
	ListBillsForAccount(ctx context.Context, accountID int64) ([]*domain.Bill, error)
}
