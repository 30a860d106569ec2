package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	pkgrepo "github.com/versebank/banking/pkg/repository"
)

// ErrNoTransaction is returned when a repository is requested outside a Do
// boundary.
var ErrNoTransaction = errors.New("repository requested outside a transaction boundary")

// UoW implements repository.UnitOfWork on a gorm database. Do opens a
// database transaction and hands fn a UoW bound to it, so every repository
// obtained inside fn shares the same session and commits or rolls back
// together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a unit of work for the given database handle.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn within a database transaction. A non-nil error from fn rolls
// the transaction back.
func (u *UoW) Do(ctx context.Context, fn func(uow pkgrepo.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// AccountRepository returns the account repository bound to the current
// transaction.
func (u *UoW) AccountRepository() (pkgrepo.AccountRepository, error) {
	if u.tx == nil {
		return nil, ErrNoTransaction
	}
	return NewAccountRepository(u.tx), nil
}
