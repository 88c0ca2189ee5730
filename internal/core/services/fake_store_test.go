package services_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
)

// fakeStore is an in-memory stand-in for the database behind the unit of work. Transactions
// snapshot the whole store on begin and restore it on rollback.
type fakeStore struct {
	mu sync.Mutex

	accounts map[int64]domain.Account
	bills    map[int64]domain.Bill
	records  []domain.Record

	nextAccountID, nextBillID, nextRecordID int64

	// beforeTxSave runs at the start of every SaveChanges made inside a transaction.
	beforeTxSave func() error
	// recordInsertErr fails record inserts made outside a transaction.
	recordInsertErr error
	// commitErr fails the next commit.
	commitErr error

	sessions  int
	rollbacks int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: make(map[int64]domain.Account),
		bills:    make(map[int64]domain.Bill),
	}
}

type storeSnapshot struct {
	accounts map[int64]domain.Account
	bills    map[int64]domain.Bill
	records  []domain.Record
}

func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		accounts: make(map[int64]domain.Account, len(s.accounts)),
		bills:    make(map[int64]domain.Bill, len(s.bills)),
		records:  append([]domain.Record(nil), s.records...),
	}
	for k, v := range s.accounts {
		snap.accounts[k] = v
	}
	for k, v := range s.bills {
		snap.bills[k] = v
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.accounts = snap.accounts
	s.bills = snap.bills
	s.records = snap.records
	s.rollbacks++
}

// seedAccount stores an account with the default limits, adjusted by mods.
func (s *fakeStore) seedAccount(userID, balance int64, mods ...func(*domain.Account)) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAccountID++
	a := domain.NewAccount(userID, balance, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	a.ID = s.nextAccountID
	a.Version = 1
	for _, mod := range mods {
		mod(a)
	}
	s.accounts[a.ID] = *a
	return a.ID
}

func (s *fakeStore) seedBill(accountID, amount int64, lastPayTime time.Time, active bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBillID++
	s.bills[s.nextBillID] = domain.Bill{
		ID: s.nextBillID, Amount: amount, LastPayTime: lastPayTime, IsActive: active, AccountID: accountID,
	}
	return s.nextBillID
}

func (s *fakeStore) seedRecord(r domain.Record) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRecordID++
	r.ID = s.nextRecordID
	s.records = append(s.records, r)
	return r.ID
}

func (s *fakeStore) account(id int64) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id]
}

func (s *fakeStore) bill(id int64) domain.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bills[id]
}

func (s *fakeStore) allRecords() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Record(nil), s.records...)
}

func (s *fakeStore) record(id int64) domain.Record {
	for _, r := range s.allRecords() {
		if r.ID == id {
			return r
		}
	}
	return domain.Record{}
}

// NewUnitOfWork implements portsrepo.UnitOfWorkFactory.
func (s *fakeStore) NewUnitOfWork() portsrepo.UnitOfWork {
	s.mu.Lock()
	s.sessions++
	s.mu.Unlock()
	return &fakeUnitOfWork{
		store:        s,
		accounts:     make(map[int64]*fakeTrackedAccount),
		trackedBills: make(map[int64]*fakeTrackedBill),
	}
}

// ClaimPendingRecord implements portsrepo.PendingRecordClaimer.
func (s *fakeStore) ClaimPendingRecord(_ context.Context, recordID int64, types []domain.OperationType) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		r := &s.records[i]
		if r.ID != recordID || !r.IsPending {
			continue
		}
		for _, t := range types {
			if r.OperationType == t {
				r.IsPending = false
				claimed := *r
				return &claimed, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: Pending record with id %d does not exist in the database", apperrors.ErrNotFound, recordID)
}

type fakeTrackedAccount struct {
	entity   *domain.Account
	original domain.Account
}

type fakeTrackedBill struct {
	entity   *domain.Bill
	original domain.Bill
}

type fakeUnitOfWork struct {
	store *fakeStore

	accounts      map[int64]*fakeTrackedAccount
	trackedBills  map[int64]*fakeTrackedBill
	addedAccounts []*domain.Account
	addedBills    []*domain.Bill
	addedRecords  []*domain.Record

	tx       *fakeTx
	disposed bool
}

func (u *fakeUnitOfWork) Accounts() portsrepo.AccountRepository { return fakeAccountRepo{u} }
func (u *fakeUnitOfWork) Records() portsrepo.RecordWriter       { return fakeRecordWriter{u} }
func (u *fakeUnitOfWork) Bills() portsrepo.BillRepository       { return fakeBillRepo{u} }

func (u *fakeUnitOfWork) attachAccount(a domain.Account) *domain.Account {
	if tracked, ok := u.accounts[a.ID]; ok {
		return tracked.entity
	}
	a.Bills = nil
	entity := a
	u.accounts[a.ID] = &fakeTrackedAccount{entity: &entity, original: a}
	return &entity
}

func (u *fakeUnitOfWork) attachBill(b domain.Bill) *domain.Bill {
	if tracked, ok := u.trackedBills[b.ID]; ok {
		return tracked.entity
	}
	entity := b
	u.trackedBills[b.ID] = &fakeTrackedBill{entity: &entity, original: b}
	return &entity
}

func (u *fakeUnitOfWork) BeginTransaction(context.Context) (portsrepo.Transaction, error) {
	if u.disposed {
		return nil, apperrors.ErrSessionDisposed
	}
	if u.tx != nil {
		return nil, errors.New("a transaction is already open")
	}
	u.store.mu.Lock()
	u.tx = &fakeTx{uow: u, snap: u.store.snapshot()}
	u.store.mu.Unlock()
	return u.tx, nil
}

func (u *fakeUnitOfWork) SaveChanges(ctx context.Context) error {
	if u.disposed {
		return apperrors.ErrSessionDisposed
	}
	if u.tx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		if hook := u.store.beforeTxSave; hook != nil {
			if err := hook(); err != nil {
				return err
			}
		}
	}

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(u.addedAccounts) > 0 {
		a := u.addedAccounts[0]
		for _, existing := range s.accounts {
			if existing.UserID == a.UserID {
				return apperrors.AccountAlreadyExists(a.UserID)
			}
		}
		s.nextAccountID++
		a.ID = s.nextAccountID
		a.Version = 1
		row := *a
		row.Bills = nil
		s.accounts[a.ID] = row
		u.accounts[a.ID] = &fakeTrackedAccount{entity: a, original: row}
		u.addedAccounts = u.addedAccounts[1:]
	}

	ids := make([]int64, 0, len(u.accounts))
	for id := range u.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		ta := u.accounts[id]
		e, o := ta.entity, ta.original
		if e.Balance == o.Balance && e.DailySpend == o.DailySpend &&
			e.DailyLimit == o.DailyLimit && e.OperationLimit == o.OperationLimit {
			continue
		}
		stored, ok := s.accounts[id]
		if !ok || stored.Version != o.Version {
			return apperrors.ConcurrencyConflict(id)
		}
		stored.Balance, stored.DailySpend = e.Balance, e.DailySpend
		stored.DailyLimit, stored.OperationLimit = e.DailyLimit, e.OperationLimit
		stored.Version++
		s.accounts[id] = stored
		e.Version = stored.Version
		ta.original = stored
	}

	for len(u.addedBills) > 0 {
		b := u.addedBills[0]
		s.nextBillID++
		b.ID = s.nextBillID
		s.bills[b.ID] = *b
		u.trackedBills[b.ID] = &fakeTrackedBill{entity: b, original: *b}
		u.addedBills = u.addedBills[1:]
	}

	for _, tb := range u.trackedBills {
		if tb.entity.Amount == tb.original.Amount && tb.entity.IsActive == tb.original.IsActive &&
			tb.entity.LastPayTime.Equal(tb.original.LastPayTime) {
			continue
		}
		s.bills[tb.entity.ID] = *tb.entity
		tb.original = *tb.entity
	}

	if len(u.addedRecords) > 0 && u.tx == nil && s.recordInsertErr != nil {
		return s.recordInsertErr
	}
	for _, r := range u.addedRecords {
		s.nextRecordID++
		r.ID = s.nextRecordID
		s.records = append(s.records, *r)
	}
	u.addedRecords = nil

	return nil
}

func (u *fakeUnitOfWork) ClearChangeTracker() {
	u.accounts = make(map[int64]*fakeTrackedAccount)
	u.trackedBills = make(map[int64]*fakeTrackedBill)
	u.addedAccounts, u.addedBills, u.addedRecords = nil, nil, nil
}

func (u *fakeUnitOfWork) Dispose() {
	if u.disposed {
		return
	}
	u.disposed = true
	if u.tx != nil {
		_ = u.tx.Rollback(context.Background())
	}
	u.ClearChangeTracker()
}

type fakeTx struct {
	uow  *fakeUnitOfWork
	snap storeSnapshot
	done bool
}

func (t *fakeTx) Commit(context.Context) error {
	if t.done {
		return errors.New("transaction already completed")
	}
	t.done = true
	t.uow.tx = nil

	s := t.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.commitErr; err != nil {
		s.commitErr = nil
		s.restore(t.snap)
		return err
	}
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.uow.tx = nil

	s := t.uow.store
	s.mu.Lock()
	s.restore(t.snap)
	s.mu.Unlock()
	return nil
}

type fakeAccountRepo struct{ u *fakeUnitOfWork }

func (r fakeAccountRepo) FindAccountByID(_ context.Context, accountID int64) (*domain.Account, error) {
	if r.u.disposed {
		return nil, apperrors.ErrSessionDisposed
	}
	if tracked, ok := r.u.accounts[accountID]; ok {
		return tracked.entity, nil
	}
	r.u.store.mu.Lock()
	a, ok := r.u.store.accounts[accountID]
	r.u.store.mu.Unlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return r.u.attachAccount(a), nil
}

func (r fakeAccountRepo) FindAccountByUserID(_ context.Context, userID int64) (*domain.Account, error) {
	if r.u.disposed {
		return nil, apperrors.ErrSessionDisposed
	}
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	for _, a := range r.u.store.accounts {
		if a.UserID == userID {
			return r.u.attachAccount(a), nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r fakeAccountRepo) FindAccountsWithBillsDue(_ context.Context, from, to time.Time) ([]*domain.Account, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	billIDs := make([]int64, 0, len(s.bills))
	for id := range s.bills {
		billIDs = append(billIDs, id)
	}
	sort.Slice(billIDs, func(i, j int) bool { return billIDs[i] < billIDs[j] })

	var accounts []*domain.Account
	byID := make(map[int64]*domain.Account)
	for _, id := range billIDs {
		b := s.bills[id]
		if !b.IsActive || b.LastPayTime.Before(from) || !b.LastPayTime.Before(to) {
			continue
		}
		account, seen := byID[b.AccountID]
		if !seen {
			account = r.u.attachAccount(s.accounts[b.AccountID])
			byID[b.AccountID] = account
			accounts = append(accounts, account)
		}
		account.Bills = append(account.Bills, r.u.attachBill(b))
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (r fakeAccountRepo) AddAccount(account *domain.Account) {
	r.u.addedAccounts = append(r.u.addedAccounts, account)
}

func (r fakeAccountRepo) ResetDailySpend(context.Context) (int64, error) {
	if r.u.disposed {
		return 0, apperrors.ErrSessionDisposed
	}
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, a := range s.accounts {
		if a.DailySpend == 0 {
			continue
		}
		a.DailySpend = 0
		a.Version++
		s.accounts[id] = a
		n++
	}
	return n, nil
}

type fakeBillRepo struct{ u *fakeUnitOfWork }

func (r fakeBillRepo) AddBill(bill *domain.Bill) {
	r.u.addedBills = append(r.u.addedBills, bill)
}

func (r fakeBillRepo) ListBillsForAccount(_ context.Context, accountID int64) ([]*domain.Bill, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var bills []*domain.Bill
	for _, b := range s.bills {
		if b.AccountID == accountID {
			bills = append(bills, r.u.attachBill(b))
		}
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].ID < bills[j].ID })
	return bills, nil
}

type fakeRecordWriter struct{ u *fakeUnitOfWork }

func (w fakeRecordWriter) AddRecord(record *domain.Record) {
	w.u.addedRecords = append(w.u.addedRecords, record)
}

var (
	_ portsrepo.UnitOfWorkFactory    = (*fakeStore)(nil)
	_ portsrepo.PendingRecordClaimer = (*fakeStore)(nil)
	_ portsrepo.UnitOfWork           = (*fakeUnitOfWork)(nil)
)
