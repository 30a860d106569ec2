// Package repository defines the persistence contracts consumed by the
// application services. Implementations live under infra/repository.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/versebank/banking/pkg/domain/account"
)

// AccountRepository persists Account aggregates.
//
// Get must return the same logical account content on every successful call
// following a Save: the services rely on a load, mutate, save pattern with
// no staleness tolerance.
type AccountRepository interface {
	// Get loads an account with its transaction log.
	// Returns account.ErrAccountNotFound when the id has no match.
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// Save upserts the account row and appends any new transactions.
	// The transaction log is append-only: existing rows are never
	// rewritten or removed.
	Save(ctx context.Context, a *account.Account) error

	// Delete removes the account. Deletion is an external operation,
	// outside the aggregate's own mutation protocol.
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether an account with the id is stored.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListByCustomer returns every account owned by the customer.
	ListByCustomer(ctx context.Context, customerID string) ([]*account.Account, error)
}

// UnitOfWork runs work inside a transaction boundary and hands out
// repositories bound to that boundary, so every repository operation within
// Do shares one session and commits or rolls back together.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an
	// error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// AccountRepository returns the account repository bound to the
	// current transaction.
	AccountRepository() (AccountRepository, error)
}
