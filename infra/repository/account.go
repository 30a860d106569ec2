// Package repository implements the persistence contracts on PostgreSQL
// via gorm.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/versebank/banking/pkg/domain/account"
	"github.com/versebank/banking/pkg/money"
	pkgrepo "github.com/versebank/banking/pkg/repository"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository bound to the given
// gorm session.
func NewAccountRepository(db *gorm.DB) pkgrepo.AccountRepository {
	return &accountRepository{db: db}
}

// Get implements repository.AccountRepository.
func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var rec Account
	err := r.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return hydrate(&rec)
}

// Save implements repository.AccountRepository. The account row is upserted;
// transaction rows are insert-only so replayed saves never rewrite the log.
func (r *accountRepository) Save(ctx context.Context, a *account.Account) error {
	db := r.db.WithContext(ctx)

	rec := Account{
		ID:          a.ID(),
		CustomerID:  a.CustomerID(),
		AccountType: a.Type().String(),
		Balance:     a.Balance().Decimal(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"balance", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return err
	}

	txs := a.Transactions()
	if len(txs) == 0 {
		return nil
	}
	rows := make([]Transaction, 0, len(txs))
	for i, tx := range txs {
		rows = append(rows, Transaction{
			ID:          tx.ID(),
			AccountID:   a.ID(),
			Position:    i,
			Amount:      tx.Amount().Decimal(),
			Description: tx.Description(),
			Kind:        string(tx.Kind()),
			Timestamp:   tx.Timestamp(),
		})
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// Delete implements repository.AccountRepository. The transaction log is
// removed with the account.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("account_id = ?", id).Delete(&Transaction{}).Error; err != nil {
		return err
	}
	return db.Delete(&Account{}, "id = ?", id).Error
}

// Exists implements repository.AccountRepository.
func (r *accountRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// ListByCustomer implements repository.AccountRepository.
func (r *accountRepository) ListByCustomer(ctx context.Context, customerID string) ([]*account.Account, error) {
	var recs []Account
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	accounts := make([]*account.Account, 0, len(recs))
	for i := range recs {
		a, err := hydrate(&recs[i])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// hydrate rebuilds the aggregate from its database records.
func hydrate(rec *Account) (*account.Account, error) {
	balance, err := money.New(rec.Balance)
	if err != nil {
		return nil, err
	}
	txs := make([]account.Transaction, 0, len(rec.Transactions))
	for _, row := range rec.Transactions {
		amount, err := money.New(row.Amount)
		if err != nil {
			return nil, err
		}
		txs = append(txs, account.TransactionFromData(
			row.ID, row.Timestamp, amount, row.Description, account.TransactionKind(row.Kind),
		))
	}
	return account.New().
		WithID(rec.ID).
		WithCustomerID(rec.CustomerID).
		WithType(account.AccountType(rec.AccountType)).
		WithBalance(balance).
		WithTransactions(txs).
		WithCreatedAt(rec.CreatedAt).
		WithUpdatedAt(rec.UpdatedAt).
		Build()
}
