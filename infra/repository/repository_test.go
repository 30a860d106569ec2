package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/versebank/banking/pkg/domain/account"
	"github.com/versebank/banking/pkg/money"
	pkgrepo "github.com/versebank/banking/pkg/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestAccountRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestAccountRepository_Get_HydratesAggregate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	id := uuid.New()
	txID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "customer_id", "account_type", "balance", "created_at", "updated_at"}).
			AddRow(id, "cust-1", "SAVINGS", "150.00", now, now))
	mock.ExpectQuery(`SELECT \* FROM "transactions"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "account_id", "position", "amount", "description", "kind", "timestamp"}).
			AddRow(txID, id, 0, "150.00", "Opening deposit", "DEPOSIT", now))

	a, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, a.ID())
	assert.Equal(t, account.Savings, a.Type())
	assert.True(t, a.Balance().Equal(money.MustParse("150.00")))
	require.Len(t, a.Transactions(), 1)
	assert.Equal(t, account.KindDeposit, a.Transactions()[0].Kind())
	assert.Equal(t, "Opening deposit", a.Transactions()[0].Description())
}

func TestAccountRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	ok, err := repo.Exists(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	ok, err = repo.Exists(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountRepository_ListByCustomer_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	accounts, err := repo.ListByCustomer(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestUoW_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := errors.New("boom")
	err := uow.Do(context.Background(), func(uow pkgrepo.UnitOfWork) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(uow pkgrepo.UnitOfWork) error {
		_, err := uow.AccountRepository()
		return err
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_RepositoryOutsideBoundary(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	_, err := uow.AccountRepository()
	assert.ErrorIs(t, err, ErrNoTransaction)
}
