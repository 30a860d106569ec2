package account

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/versebank/banking/pkg/money"
)

// ErrInvalidDescription is returned when a transaction description is empty.
var ErrInvalidDescription = errors.New("transaction description must not be empty")

// TransactionKind classifies a monetary movement.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "DEPOSIT"
	KindWithdrawal TransactionKind = "WITHDRAWAL"
	KindTransfer   TransactionKind = "TRANSFER"
	KindFee        TransactionKind = "FEE"
)

// Valid reports whether the kind is one of the known movement kinds.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindTransfer, KindFee:
		return true
	}
	return false
}

// Transaction is an immutable record of one monetary movement applied to an
// account. It is created once and appended to the account's log; it is never
// mutated or deleted afterwards.
type Transaction struct {
	id          uuid.UUID
	timestamp   time.Time
	amount      money.Balance
	description string
	kind        TransactionKind
}

// NewTransaction creates a Transaction with a fresh id and the current time.
//
// Invariants enforced:
//   - Amount must be strictly positive (money.ErrInvalidAmount).
//   - Description must be non-empty (ErrInvalidDescription).
func NewTransaction(amount money.Balance, description string, kind TransactionKind) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, money.ErrInvalidAmount
	}
	if strings.TrimSpace(description) == "" {
		return Transaction{}, ErrInvalidDescription
	}
	if !kind.Valid() {
		return Transaction{}, errors.New("unknown transaction kind: " + string(kind))
	}
	return Transaction{
		id:          uuid.New(),
		timestamp:   time.Now(),
		amount:      amount,
		description: description,
		kind:        kind,
	}, nil
}

// TransactionFromData rebuilds a Transaction from raw data. It bypasses
// invariants and must only be used for repository hydration or test fixtures.
func TransactionFromData(
	id uuid.UUID,
	timestamp time.Time,
	amount money.Balance,
	description string,
	kind TransactionKind,
) Transaction {
	return Transaction{
		id:          id,
		timestamp:   timestamp,
		amount:      amount,
		description: description,
		kind:        kind,
	}
}

// ID returns the unique transaction id.
func (t Transaction) ID() uuid.UUID { return t.id }

// Timestamp returns the creation time.
func (t Transaction) Timestamp() time.Time { return t.timestamp }

// Amount returns the movement amount. Always strictly positive.
func (t Transaction) Amount() money.Balance { return t.amount }

// Description returns the human-readable description.
func (t Transaction) Description() string { return t.description }

// Kind returns the movement kind.
func (t Transaction) Kind() TransactionKind { return t.kind }
