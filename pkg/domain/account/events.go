package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/versebank/banking/pkg/money"
)

// Event is a fact emitted by the Account aggregate describing a state
// change, for downstream consumers such as notification and audit.
//
// Events form a closed tagged union: consumers switch on the concrete type
// (or on EventType for routing) rather than on an inheritance hierarchy.
type Event interface {
	EventType() string
}

// AccountOpened is emitted once when a new account is created.
type AccountOpened struct {
	EventID        uuid.UUID
	OccurredAt     time.Time
	AccountID      uuid.UUID
	CustomerID     string
	AccountType    AccountType
	InitialBalance money.Balance
}

// MoneyDeposited is emitted for every successful deposit.
type MoneyDeposited struct {
	EventID    uuid.UUID
	OccurredAt time.Time
	AccountID  uuid.UUID
	Amount     money.Balance
	NewBalance money.Balance
}

// MoneyWithdrawn is emitted for every successful withdrawal, including the
// fee leg of a transfer.
type MoneyWithdrawn struct {
	EventID    uuid.UUID
	OccurredAt time.Time
	AccountID  uuid.UUID
	Amount     money.Balance
	NewBalance money.Balance
}

// MoneyReceived is emitted when an account is credited by an incoming
// transfer, distinguishing it from an organic deposit in the event stream.
type MoneyReceived struct {
	EventID    uuid.UUID
	OccurredAt time.Time
	AccountID  uuid.UUID
	Amount     money.Balance
	NewBalance money.Balance
}

// LargeTransactionDetected is emitted in addition to the movement event when
// a single movement meets the large-transaction threshold. It overlays the
// audit trail; it does not replace the per-mutation event.
type LargeTransactionDetected struct {
	EventID    uuid.UUID
	OccurredAt time.Time
	AccountID  uuid.UUID
	Amount     money.Balance
	Kind       TransactionKind
}

func (AccountOpened) EventType() string            { return "AccountOpened" }
func (MoneyDeposited) EventType() string           { return "MoneyDeposited" }
func (MoneyWithdrawn) EventType() string           { return "MoneyWithdrawn" }
func (MoneyReceived) EventType() string            { return "MoneyReceived" }
func (LargeTransactionDetected) EventType() string { return "LargeTransactionDetected" }

// NewLargeTransactionDetected builds the detection event for a movement.
func NewLargeTransactionDetected(accountID uuid.UUID, amount money.Balance, kind TransactionKind) LargeTransactionDetected {
	return LargeTransactionDetected{
		EventID:    uuid.New(),
		OccurredAt: time.Now(),
		AccountID:  accountID,
		Amount:     amount,
		Kind:       kind,
	}
}
