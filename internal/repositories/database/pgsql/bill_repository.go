package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
	"github.com/SscSPs/banking_backoffice_app/internal/models"
	"github.com/SscSPs/banking_backoffice_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type pgxBillRepository struct {
	uow *pgxUnitOfWork
}

var _ portsrepo.BillRepository = (*pgxBillRepository)(nil)

func (r *pgxBillRepository) AddBill(bill *domain.Bill) {
	r.uow.tracker.addedBills = append(r.uow.tracker.addedBills, bill)
}

func (r *pgxBillRepository) ListBillsForAccount(ctx context.Context, accountID int64) ([]*domain.Bill, error) {
	q, err := r.uow.session(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, `
		SELECT id, amount, last_pay_time, is_active, account_id
		FROM bills
		WHERE account_id = $1
		ORDER BY last_pay_time, id;
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills for account %d: %w", accountID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Bill])
	if err != nil {
		return nil, fmt.Errorf("failed to collect bill rows for account %d: %w", accountID, err)
	}

	bills := make([]*domain.Bill, len(ms))
	for i, m := range ms {
		bills[i] = r.uow.tracker.attachBill(mapping.ToDomainBill(m))
	}
	return bills, nil
}
