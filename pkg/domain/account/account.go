// Package account holds the account ledger domain: the Account aggregate,
// its Transaction log, the AccountType fee/overdraft policy and the domain
// events emitted by balance mutations.
package account

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/versebank/banking/pkg/money"
)

var (
	// ErrInsufficientFunds is returned when a withdrawal would drive the
	// balance negative. The account is left untouched.
	ErrInsufficientFunds = money.ErrInsufficientFunds

	// ErrAccountNotFound is returned when a referenced account id has no
	// matching account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransferNotAllowed is returned for self-transfers and failed
	// transfer eligibility checks.
	ErrTransferNotAllowed = errors.New("transfer not allowed")

	// ErrInvalidCustomerID is returned when an account is constructed
	// without an owning customer.
	ErrInvalidCustomerID = errors.New("customer id must not be empty")

	// ErrNilTransaction is returned when a zero-value transaction is
	// applied to an account.
	ErrNilTransaction = errors.New("transaction must be created via NewTransaction")
)

// Account is the aggregate root owning a Balance and an append-only log of
// Transactions. All balance changes go through its own deposit, withdraw and
// receive-transfer operations; each successful mutation appends exactly one
// transaction and returns exactly one domain event of the matching kind.
//
// Invariants:
//   - The balance is never negative.
//   - The transaction log is the audit trail: insertion order is application
//     order, and entries are never reordered or pruned.
//
// Account instances are not internally synchronized. Callers must serialize
// access per account id (the repository layer does this by loading fresh
// state inside a transaction boundary per operation).
type Account struct {
	id           uuid.UUID
	customerID   string
	accountType  AccountType
	balance      money.Balance
	transactions []Transaction
	createdAt    time.Time
	updatedAt    time.Time
}

// Builder constructs Account instances, validating invariants on Build.
type Builder struct {
	id           uuid.UUID
	customerID   string
	accountType  AccountType
	balance      money.Balance
	transactions []Transaction
	createdAt    time.Time
	updatedAt    time.Time
}

// New returns a Builder with a fresh id and the current time. Well-known
// accounts may override the id with WithID.
func New() *Builder {
	return &Builder{
		id:          uuid.New(),
		accountType: Checking,
		balance:     money.Zero(),
		createdAt:   time.Now(),
	}
}

// WithID sets an explicit account id.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithCustomerID sets the owning customer. Mandatory.
func (b *Builder) WithCustomerID(customerID string) *Builder {
	b.customerID = customerID
	return b
}

// WithType sets the account type. Defaults to Checking.
func (b *Builder) WithType(t AccountType) *Builder {
	b.accountType = t
	return b
}

// WithBalance sets the initial balance.
func (b *Builder) WithBalance(balance money.Balance) *Builder {
	b.balance = balance
	return b
}

// WithTransactions seeds the transaction log. Only for hydrating an
// existing account from a data store.
func (b *Builder) WithTransactions(txs []Transaction) *Builder {
	b.transactions = append([]Transaction(nil), txs...)
	return b
}

// WithCreatedAt sets the creation timestamp, for hydration.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp, for hydration.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates all invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if strings.TrimSpace(b.customerID) == "" {
		return nil, ErrInvalidCustomerID
	}
	if !b.accountType.Valid() {
		return nil, ErrInvalidAccountType
	}
	if b.id == uuid.Nil {
		return nil, errors.New("account id is required")
	}
	return &Account{
		id:           b.id,
		customerID:   b.customerID,
		accountType:  b.accountType,
		balance:      b.balance,
		transactions: b.transactions,
		createdAt:    b.createdAt,
		updatedAt:    b.updatedAt,
	}, nil
}

// Open creates a new account with a fresh id and returns the AccountOpened
// event describing it.
func Open(customerID string, accountType AccountType, initial money.Balance) (*Account, Event, error) {
	a, err := New().
		WithCustomerID(customerID).
		WithType(accountType).
		WithBalance(initial).
		Build()
	if err != nil {
		return nil, nil, err
	}
	ev := AccountOpened{
		EventID:        uuid.New(),
		OccurredAt:     time.Now(),
		AccountID:      a.id,
		CustomerID:     a.customerID,
		AccountType:    a.accountType,
		InitialBalance: initial,
	}
	return a, ev, nil
}

// ID returns the account id.
func (a *Account) ID() uuid.UUID { return a.id }

// CustomerID returns the owning customer id.
func (a *Account) CustomerID() string { return a.customerID }

// Type returns the account type. Immutable after creation.
func (a *Account) Type() AccountType { return a.accountType }

// Balance returns the current balance.
func (a *Account) Balance() money.Balance { return a.balance }

// CreatedAt returns the creation timestamp.
func (a *Account) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (a *Account) UpdatedAt() time.Time { return a.updatedAt }

// Transactions returns a defensive copy of the applied transaction log in
// application order. Mutating the returned slice does not affect the account.
func (a *Account) Transactions() []Transaction {
	return append([]Transaction(nil), a.transactions...)
}

// Deposit credits the transaction amount, appends the transaction to the
// log and returns a MoneyDeposited event. It never fails given a valid
// transaction.
//
// The transaction kind is informational: Deposit does not require
// kind == KindDeposit, the caller chooses the kind recorded in the log.
func (a *Account) Deposit(tx Transaction) (Event, error) {
	if err := a.checkTransaction(tx); err != nil {
		return nil, err
	}
	a.apply(tx, a.balance.Add(tx.Amount()))
	return MoneyDeposited{
		EventID:    uuid.New(),
		OccurredAt: time.Now(),
		AccountID:  a.id,
		Amount:     tx.Amount(),
		NewBalance: a.balance,
	}, nil
}

// Withdraw debits the transaction amount if funds suffice, appends the
// transaction and returns a MoneyWithdrawn event.
//
// On ErrInsufficientFunds no state changes occur: balance and log are left
// exactly as before the call. Partial application is a bug.
func (a *Account) Withdraw(tx Transaction) (Event, error) {
	if err := a.checkTransaction(tx); err != nil {
		return nil, err
	}
	newBalance, err := a.balance.Subtract(tx.Amount())
	if err != nil {
		return nil, err
	}
	a.apply(tx, newBalance)
	return MoneyWithdrawn{
		EventID:    uuid.New(),
		OccurredAt: time.Now(),
		AccountID:  a.id,
		Amount:     tx.Amount(),
		NewBalance: a.balance,
	}, nil
}

// ReceiveTransfer credits the account like Deposit but returns MoneyReceived,
// so incoming transfers are distinguishable from organic deposits in the
// event stream.
func (a *Account) ReceiveTransfer(tx Transaction) (Event, error) {
	if err := a.checkTransaction(tx); err != nil {
		return nil, err
	}
	a.apply(tx, a.balance.Add(tx.Amount()))
	return MoneyReceived{
		EventID:    uuid.New(),
		OccurredAt: time.Now(),
		AccountID:  a.id,
		Amount:     tx.Amount(),
		NewBalance: a.balance,
	}, nil
}

// HasSufficientBalance reports whether balance >= amount. Pure query.
func (a *Account) HasSufficientBalance(amount money.Balance) bool {
	return a.balance.GreaterThanOrEqual(amount)
}

// TransferFee returns the fee this account pays to transfer the given
// amount, per its type's policy.
func (a *Account) TransferFee(amount money.Balance) money.Balance {
	return a.accountType.TransferFee(amount)
}

// CanTransferTo reports whether a transfer of amount to target is allowed:
// the target must exist and be a different account, the amount must be
// positive, and the balance must cover amount plus fee.
func (a *Account) CanTransferTo(target *Account, amount money.Balance) bool {
	if target == nil || !amount.IsPositive() {
		return false
	}
	if a.id == target.id {
		return false
	}
	total := amount.Add(a.TransferFee(amount))
	return a.HasSufficientBalance(total)
}

func (a *Account) checkTransaction(tx Transaction) error {
	if tx.id == uuid.Nil {
		return ErrNilTransaction
	}
	if !tx.Amount().IsPositive() {
		return money.ErrInvalidAmount
	}
	return nil
}

// apply commits a validated mutation: new balance plus exactly one appended
// log entry.
func (a *Account) apply(tx Transaction, newBalance money.Balance) {
	a.balance = newBalance
	a.transactions = append(a.transactions, tx)
	a.updatedAt = time.Now()
}
