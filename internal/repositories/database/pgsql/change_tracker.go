package pgsql

import (
	"sort"
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
)

type accountState struct {
	balance        int64
	dailySpend     int64
	dailyLimit     int64
	operationLimit int64
}

func snapshotAccount(a *domain.Account) accountState {
	return accountState{
		balance:        a.Balance,
		dailySpend:     a.DailySpend,
		dailyLimit:     a.DailyLimit,
		operationLimit: a.OperationLimit,
	}
}

type trackedAccount struct {
	entity   *domain.Account
	original accountState
}

func (t *trackedAccount) dirty() bool {
	return snapshotAccount(t.entity) != t.original
}

type billState struct {
	amount      int64
	lastPayTime time.Time
	isActive    bool
}

func snapshotBill(b *domain.Bill) billState {
	return billState{amount: b.Amount, lastPayTime: b.LastPayTime, isActive: b.IsActive}
}

type trackedBill struct {
	entity   *domain.Bill
	original billState
}

func (t *trackedBill) dirty() bool {
	current := snapshotBill(t.entity)
	return current.amount != t.original.amount ||
		current.isActive != t.original.isActive ||
		!current.lastPayTime.Equal(t.original.lastPayTime)
}

// changeTracker is the identity map and pending change set of one unit of work.
type changeTracker struct {
	accounts map[int64]*trackedAccount
	bills    map[int64]*trackedBill

	addedAccounts []*domain.Account
	addedBills    []*domain.Bill
	addedRecords  []*domain.Record
}

func newChangeTracker() *changeTracker {
	return &changeTracker{
		accounts: make(map[int64]*trackedAccount),
		bills:    make(map[int64]*trackedBill),
	}
}

// attachAccount starts tracking a freshly loaded account, or returns the instance already tracked
// for the same row so every caller in the session sees the same in-memory state.
func (t *changeTracker) attachAccount(a *domain.Account) *domain.Account {
	if existing, ok := t.accounts[a.ID]; ok {
		return existing.entity
	}
	t.accounts[a.ID] = &trackedAccount{entity: a, original: snapshotAccount(a)}
	return a
}

func (t *changeTracker) attachBill(b *domain.Bill) *domain.Bill {
	if existing, ok := t.bills[b.ID]; ok {
		return existing.entity
	}
	t.bills[b.ID] = &trackedBill{entity: b, original: snapshotBill(b)}
	return b
}

// dirtyAccounts returns modified accounts ordered by id, so concurrent sessions lock rows in the
// same order.
func (t *changeTracker) dirtyAccounts() []*trackedAccount {
	var out []*trackedAccount
	for _, ta := range t.accounts {
		if ta.dirty() {
			out = append(out, ta)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].entity.ID < out[j].entity.ID })
	return out
}

func (t *changeTracker) dirtyBills() []*trackedBill {
	var out []*trackedBill
	for _, tb := range t.bills {
		if tb.dirty() {
			out = append(out, tb)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].entity.ID < out[j].entity.ID })
	return out
}

func (t *changeTracker) hasChanges() bool {
	return len(t.addedAccounts) > 0 || len(t.addedBills) > 0 || len(t.addedRecords) > 0 ||
		len(t.dirtyAccounts()) > 0 || len(t.dirtyBills()) > 0
}

func (t *changeTracker) clear() {
	t.accounts = make(map[int64]*trackedAccount)
	t.bills = make(map[int64]*trackedBill)
	t.addedAccounts = nil
	t.addedBills = nil
	t.addedRecords = nil
}
