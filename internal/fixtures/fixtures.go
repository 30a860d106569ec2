// Package fixtures provides in-memory test doubles for the persistence,
// notification and event bus ports.
package fixtures

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/versebank/banking/pkg/domain/account"
	"github.com/versebank/banking/pkg/eventbus"
	"github.com/versebank/banking/pkg/notification"
	"github.com/versebank/banking/pkg/repository"
)

// MemoryUnitOfWork is an in-memory repository.UnitOfWork. Do applies fn
// against a staging copy of the store and commits only when fn succeeds,
// so a failing use case leaves the store untouched.
type MemoryUnitOfWork struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*account.Account

	// staging holds the transactional view while a Do call is running.
	staging map[uuid.UUID]*account.Account
}

// NewMemoryUnitOfWork returns an empty in-memory unit of work.
func NewMemoryUnitOfWork() *MemoryUnitOfWork {
	return &MemoryUnitOfWork{accounts: make(map[uuid.UUID]*account.Account)}
}

// Seed stores the account directly, outside any transaction boundary.
func (u *MemoryUnitOfWork) Seed(a *account.Account) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.accounts[a.ID()] = clone(a)
}

// Account returns the committed state of an account, or nil.
func (u *MemoryUnitOfWork) Account(id uuid.UUID) *account.Account {
	u.mu.Lock()
	defer u.mu.Unlock()
	a, ok := u.accounts[id]
	if !ok {
		return nil
	}
	return clone(a)
}

// Do runs fn against a staging copy and commits it if fn returns nil.
func (u *MemoryUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.staging = make(map[uuid.UUID]*account.Account, len(u.accounts))
	for id, a := range u.accounts {
		u.staging[id] = clone(a)
	}
	if err := fn(u); err != nil {
		u.staging = nil
		return err
	}
	u.accounts = u.staging
	u.staging = nil
	return nil
}

// AccountRepository returns the repository bound to the current transaction.
func (u *MemoryUnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	return &memoryAccountRepository{uow: u}, nil
}

type memoryAccountRepository struct {
	uow *MemoryUnitOfWork
}

func (r *memoryAccountRepository) view() map[uuid.UUID]*account.Account {
	if r.uow.staging != nil {
		return r.uow.staging
	}
	return r.uow.accounts
}

func (r *memoryAccountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := r.view()[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return clone(a), nil
}

func (r *memoryAccountRepository) Save(ctx context.Context, a *account.Account) error {
	r.view()[a.ID()] = clone(a)
	return nil
}

func (r *memoryAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.view(), id)
	return nil
}

func (r *memoryAccountRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.view()[id]
	return ok, nil
}

func (r *memoryAccountRepository) ListByCustomer(ctx context.Context, customerID string) ([]*account.Account, error) {
	var out []*account.Account
	for _, a := range r.view() {
		if a.CustomerID() == customerID {
			out = append(out, clone(a))
		}
	}
	return out, nil
}

// clone rebuilds an account through its builder so stored state is isolated
// from what callers mutate afterwards.
func clone(a *account.Account) *account.Account {
	c, err := account.New().
		WithID(a.ID()).
		WithCustomerID(a.CustomerID()).
		WithType(a.Type()).
		WithBalance(a.Balance()).
		WithTransactions(a.Transactions()).
		WithCreatedAt(a.CreatedAt()).
		WithUpdatedAt(a.UpdatedAt()).
		Build()
	if err != nil {
		panic(err)
	}
	return c
}

// MockNotifier records notification calls via testify/mock.
type MockNotifier struct {
	mock.Mock
}

var _ notification.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Notify(ctx context.Context, accountID uuid.UUID, op notification.Operation, details string) error {
	args := m.Called(ctx, accountID, op, details)
	return args.Error(0)
}

// RecordingBus is an eventbus.Bus that captures every published event.
type RecordingBus struct {
	mu     sync.Mutex
	events []eventbus.Event
}

// NewRecordingBus returns an empty recording bus.
func NewRecordingBus() *RecordingBus {
	return &RecordingBus{}
}

func (b *RecordingBus) Publish(ctx context.Context, ev eventbus.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
	return nil
}

func (b *RecordingBus) Subscribe(eventType string, handler func(ctx context.Context, ev eventbus.Event)) {
}

// Events returns the published events in order.
func (b *RecordingBus) Events() []eventbus.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]eventbus.Event(nil), b.events...)
}

// EventTypes returns the EventType of each published event, in order.
func (b *RecordingBus) EventTypes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	types := make([]string, 0, len(b.events))
	for _, ev := range b.events {
		types = append(types, ev.EventType())
	}
	return types
}
