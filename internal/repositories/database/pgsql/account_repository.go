package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
	"github.com/SscSPs/banking_backoffice_app/internal/models"
	"github.com/SscSPs/banking_backoffice_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const FULL_ACCOUNT_SELECT_QUERY = `
SELECT a.id, a.balance, a.created_at, a.user_id, a.daily_spend, a.daily_limit, a.operation_limit, a.version
FROM accounts a
`

// pgxAccountRepository reads and stages accounts on behalf of one unit of work.
type pgxAccountRepository struct {
	uow *pgxUnitOfWork
}

var _ portsrepo.AccountRepository = (*pgxAccountRepository)(nil)

func (r *pgxAccountRepository) findOne(ctx context.Context, filterQuery string, args ...any) (*domain.Account, error) {
	q, err := r.uow.session(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, FULL_ACCOUNT_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return r.uow.tracker.attachAccount(mapping.ToDomainAccount(m)), nil
}

// FindAccountByID retrieves an account by its ID.
func (r *pgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	if tracked, ok := r.uow.tracker.accounts[accountID]; ok {
		return tracked.entity, nil
	}
	return r.findOne(ctx, "WHERE a.id = $1", accountID)
}

// FindAccountByUserID retrieves the account owned by a user.
func (r *pgxAccountRepository) FindAccountByUserID(ctx context.Context, userID int64) (*domain.Account, error) {
	return r.findOne(ctx, "WHERE a.user_id = $1", userID)
}

// FindAccountsWithBillsDue loads accounts together with their active bills due in [from, to).
func (r *pgxAccountRepository) FindAccountsWithBillsDue(ctx context.Context, from, to time.Time) ([]*domain.Account, error) {
	q, err := r.uow.session(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT a.id, a.balance, a.created_at, a.user_id, a.daily_spend, a.daily_limit, a.operation_limit, a.version,
		       b.id, b.amount, b.last_pay_time, b.is_active, b.account_id
		FROM accounts a
		JOIN bills b ON b.account_id = a.id
		WHERE b.is_active AND b.last_pay_time >= $1 AND b.last_pay_time < $2
		ORDER BY a.id, b.id;
	`
	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts with bills due: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	byID := make(map[int64]*domain.Account)
	for rows.Next() {
		var a models.Account
		var b models.Bill
		if err := rows.Scan(
			&a.ID, &a.Balance, &a.CreatedAt, &a.UserID, &a.DailySpend, &a.DailyLimit, &a.OperationLimit, &a.Version,
			&b.ID, &b.Amount, &b.LastPayTime, &b.IsActive, &b.AccountID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account bill row: %w", err)
		}

		account, seen := byID[a.ID]
		if !seen {
			account = r.uow.tracker.attachAccount(mapping.ToDomainAccount(a))
			account.Bills = nil
			byID[a.ID] = account
			accounts = append(accounts, account)
		}
		account.Bills = append(account.Bills, r.uow.tracker.attachBill(mapping.ToDomainBill(b)))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account bill rows: %w", err)
	}

	return accounts, nil
}

// AddAccount stages a new account for insertion.
func (r *pgxAccountRepository) AddAccount(account *domain.Account) {
	r.uow.tracker.addedAccounts = append(r.uow.tracker.addedAccounts, account)
}

// ResetDailySpend zeroes daily spend for all accounts on the current session.
func (r *pgxAccountRepository) ResetDailySpend(ctx context.Context) (int64, error) {
	q, err := r.uow.session(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := q.Exec(ctx, `UPDATE accounts SET daily_spend = 0, version = version + 1 WHERE daily_spend <> 0;`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset daily spend: %w", err)
	}
	return tag.RowsAffected(), nil
}
