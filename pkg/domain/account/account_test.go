package account_test

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versebank/banking/pkg/domain/account"
	"github.com/versebank/banking/pkg/money"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func newAccount(t *testing.T, accountType account.AccountType, balance string) *account.Account {
	t.Helper()
	a, err := account.New().
		WithCustomerID("customer-1").
		WithType(accountType).
		WithBalance(money.MustParse(balance)).
		Build()
	require.NoError(t, err)
	return a
}

func newTx(t *testing.T, amount, description string, kind account.TransactionKind) account.Transaction {
	t.Helper()
	tx, err := account.NewTransaction(money.MustParse(amount), description, kind)
	require.NoError(t, err)
	return tx
}

func TestBuilderValidation(t *testing.T) {
	t.Parallel()

	t.Run("requires customer id", func(t *testing.T) {
		_, err := account.New().WithType(account.Checking).Build()
		assert.ErrorIs(t, err, account.ErrInvalidCustomerID)
	})

	t.Run("rejects blank customer id", func(t *testing.T) {
		_, err := account.New().WithCustomerID("   ").Build()
		assert.ErrorIs(t, err, account.ErrInvalidCustomerID)
	})

	t.Run("rejects unknown account type", func(t *testing.T) {
		_, err := account.New().WithCustomerID("c").WithType("PREMIUM").Build()
		assert.ErrorIs(t, err, account.ErrInvalidAccountType)
	})

	t.Run("keeps explicit id", func(t *testing.T) {
		id := uuid.New()
		a, err := account.New().WithID(id).WithCustomerID("c").Build()
		require.NoError(t, err)
		assert.Equal(t, id, a.ID())
	})
}

func TestOpenEmitsAccountOpened(t *testing.T) {
	t.Parallel()
	a, ev, err := account.Open("customer-7", account.Savings, money.MustParse("250"))
	require.NoError(t, err)

	opened, ok := ev.(account.AccountOpened)
	require.True(t, ok, "expected AccountOpened, got %T", ev)
	assert.Equal(t, a.ID(), opened.AccountID)
	assert.Equal(t, "customer-7", opened.CustomerID)
	assert.Equal(t, account.Savings, opened.AccountType)
	assert.True(t, opened.InitialBalance.Equal(money.MustParse("250.00")))
}

func TestDeposit(t *testing.T) {
	t.Parallel()
	a := newAccount(t, account.Checking, "100")

	ev, err := a.Deposit(newTx(t, "50.25", "salary", account.KindDeposit))
	require.NoError(t, err)

	assert.True(t, a.Balance().Equal(money.MustParse("150.25")))
	require.Len(t, a.Transactions(), 1)

	deposited, ok := ev.(account.MoneyDeposited)
	require.True(t, ok, "expected MoneyDeposited, got %T", ev)
	assert.True(t, deposited.Amount.Equal(money.MustParse("50.25")))
	assert.True(t, deposited.NewBalance.Equal(money.MustParse("150.25")))
	assert.Equal(t, a.ID(), deposited.AccountID)
}

func TestWithdraw(t *testing.T) {
	t.Parallel()

	t.Run("debits and records", func(t *testing.T) {
		a := newAccount(t, account.Checking, "100")
		ev, err := a.Withdraw(newTx(t, "40", "groceries", account.KindWithdrawal))
		require.NoError(t, err)

		assert.True(t, a.Balance().Equal(money.MustParse("60")))
		require.Len(t, a.Transactions(), 1)
		withdrawn, ok := ev.(account.MoneyWithdrawn)
		require.True(t, ok)
		assert.True(t, withdrawn.NewBalance.Equal(money.MustParse("60.00")))
	})

	t.Run("insufficient funds leaves account untouched", func(t *testing.T) {
		a := newAccount(t, account.Checking, "1000")
		ev, err := a.Withdraw(newTx(t, "2000", "too much", account.KindWithdrawal))

		assert.ErrorIs(t, err, account.ErrInsufficientFunds)
		assert.Nil(t, ev)
		assert.True(t, a.Balance().Equal(money.MustParse("1000")), "balance must be unchanged")
		assert.Empty(t, a.Transactions(), "failed withdraws never append")
	})

	t.Run("can withdraw exact balance", func(t *testing.T) {
		a := newAccount(t, account.Checking, "75.50")
		_, err := a.Withdraw(newTx(t, "75.50", "close out", account.KindWithdrawal))
		require.NoError(t, err)
		assert.True(t, a.Balance().IsZero())
	})
}

func TestReceiveTransfer(t *testing.T) {
	t.Parallel()
	a := newAccount(t, account.Savings, "500")

	ev, err := a.ReceiveTransfer(newTx(t, "300", "Payment", account.KindTransfer))
	require.NoError(t, err)

	received, ok := ev.(account.MoneyReceived)
	require.True(t, ok, "expected MoneyReceived, got %T", ev)
	assert.True(t, received.Amount.Equal(money.MustParse("300")))
	assert.True(t, a.Balance().Equal(money.MustParse("800")))
}

func TestRejectsZeroValueTransaction(t *testing.T) {
	t.Parallel()
	a := newAccount(t, account.Checking, "10")
	_, err := a.Deposit(account.Transaction{})
	assert.ErrorIs(t, err, account.ErrNilTransaction)
	assert.Empty(t, a.Transactions())
}

func TestTransactionLogOrderAndCopy(t *testing.T) {
	t.Parallel()
	a := newAccount(t, account.Checking, "100")

	first := newTx(t, "10", "first", account.KindDeposit)
	second := newTx(t, "20", "second", account.KindDeposit)
	_, err := a.Deposit(first)
	require.NoError(t, err)
	_, err = a.Deposit(second)
	require.NoError(t, err)

	log := a.Transactions()
	require.Len(t, log, 2)
	assert.Equal(t, first.ID(), log[0].ID(), "insertion order is application order")
	assert.Equal(t, second.ID(), log[1].ID())

	// Two reads return equal, independently mutable copies.
	other := a.Transactions()
	assert.Equal(t, log, other)
	other[0] = other[1]
	assert.Equal(t, first.ID(), a.Transactions()[0].ID(), "callers cannot mutate the log through the returned view")
}

func TestHasSufficientBalance(t *testing.T) {
	t.Parallel()
	a := newAccount(t, account.Checking, "100")

	assert.True(t, a.HasSufficientBalance(money.MustParse("100.00")))
	assert.True(t, a.HasSufficientBalance(money.MustParse("99.99")))
	assert.False(t, a.HasSufficientBalance(money.MustParse("100.01")))
	// Pure query: nothing recorded.
	assert.Empty(t, a.Transactions())
}

func TestCanTransferTo(t *testing.T) {
	t.Parallel()
	source := newAccount(t, account.Business, "2000")
	target := newAccount(t, account.Checking, "0")

	t.Run("allows covered transfer including fee", func(t *testing.T) {
		assert.True(t, source.CanTransferTo(target, money.MustParse("1000")))
	})

	t.Run("rejects transfer to self regardless of balance", func(t *testing.T) {
		assert.False(t, source.CanTransferTo(source, money.MustParse("0.01")))
	})

	t.Run("rejects nil target", func(t *testing.T) {
		assert.False(t, source.CanTransferTo(nil, money.MustParse("1")))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		assert.False(t, source.CanTransferTo(target, money.Zero()))
	})

	t.Run("accounts for the fee", func(t *testing.T) {
		// 2000 covers 1990 + 10.00 fee exactly, but not 1991 + fee.
		assert.True(t, source.CanTransferTo(target, money.MustParse("1990")))
		assert.False(t, source.CanTransferTo(target, money.MustParse("1991")))
	})
}
