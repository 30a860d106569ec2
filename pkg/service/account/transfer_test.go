package account

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/versebank/banking/pkg/domain/account"
	"github.com/versebank/banking/pkg/money"
	"github.com/versebank/banking/pkg/notification"
)

func TestTransfer(t *testing.T) {
	t.Parallel()

	t.Run("moves money between two accounts", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		source := seedAccount(t, env, account.Checking, "1000.00")
		target := seedAccount(t, env, account.Savings, "500.00")
		env.notifier.On("Notify", mock.Anything, source.ID(), notification.OpTransferOut,
			fmt.Sprintf("Transfer of 300.00 to account %s", target.ID())).Return(nil)
		env.notifier.On("Notify", mock.Anything, target.ID(), notification.OpTransferIn,
			fmt.Sprintf("Transfer of 300.00 from account %s", source.ID())).Return(nil)

		err := env.svc.Transfer(context.Background(), source.ID(), target.ID(), dec("300.00"), "Payment")
		require.NoError(t, err)

		storedSource := env.uow.Account(source.ID())
		storedTarget := env.uow.Account(target.ID())
		assert.True(t, storedSource.Balance().Equal(money.MustParse("700.00")))
		assert.True(t, storedTarget.Balance().Equal(money.MustParse("800.00")))

		require.Len(t, storedSource.Transactions(), 1)
		assert.Equal(t, account.KindTransfer, storedSource.Transactions()[0].Kind())
		assert.Equal(t, "Payment", storedSource.Transactions()[0].Description())
		require.Len(t, storedTarget.Transactions(), 1)
		assert.Equal(t, account.KindTransfer, storedTarget.Transactions()[0].Kind())

		assert.Equal(t, []string{"MoneyWithdrawn", "MoneyReceived"}, env.bus.EventTypes())
		env.notifier.AssertExpectations(t)
	})

	t.Run("business source pays a fee as a separate transaction", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		source := seedAccount(t, env, account.Business, "2000.00")
		target := seedAccount(t, env, account.Checking, "0.00")
		env.notifier.On("Notify", mock.Anything, source.ID(), notification.OpTransferOut,
			fmt.Sprintf("Transfer of 1000.00 to account %s (fee: 10.00)", target.ID())).Return(nil)
		env.notifier.On("Notify", mock.Anything, target.ID(), notification.OpTransferIn,
			mock.Anything).Return(nil)

		err := env.svc.Transfer(context.Background(), source.ID(), target.ID(), dec("1000.00"), "Invoice 77")
		require.NoError(t, err)

		storedSource := env.uow.Account(source.ID())
		storedTarget := env.uow.Account(target.ID())
		assert.True(t, storedSource.Balance().Equal(money.MustParse("990.00")), storedSource.Balance().String())
		assert.True(t, storedTarget.Balance().Equal(money.MustParse("1000.00")))

		txs := storedSource.Transactions()
		require.Len(t, txs, 2)
		assert.Equal(t, account.KindTransfer, txs[0].Kind())
		assert.Equal(t, account.KindFee, txs[1].Kind())
		assert.Equal(t, "Transfer fee", txs[1].Description())
		assert.True(t, txs[1].Amount().Equal(money.MustParse("10.00")))
		require.Len(t, storedTarget.Transactions(), 1)

		assert.Equal(t, []string{"MoneyWithdrawn", "MoneyWithdrawn", "MoneyReceived"}, env.bus.EventTypes())
		env.notifier.AssertExpectations(t)
	})

	t.Run("insufficient funds rolls everything back", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		source := seedAccount(t, env, account.Checking, "100.00")
		target := seedAccount(t, env, account.Checking, "50.00")

		err := env.svc.Transfer(context.Background(), source.ID(), target.ID(), dec("100.01"), "too much")
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)

		storedSource := env.uow.Account(source.ID())
		storedTarget := env.uow.Account(target.ID())
		assert.True(t, storedSource.Balance().Equal(money.MustParse("100.00")))
		assert.True(t, storedTarget.Balance().Equal(money.MustParse("50.00")))
		assert.Empty(t, storedSource.Transactions())
		assert.Empty(t, storedTarget.Transactions())
		assert.Empty(t, env.bus.Events())
		env.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fee pushing total past the balance rolls everything back", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		source := seedAccount(t, env, account.Business, "1005.00")
		target := seedAccount(t, env, account.Checking, "0.00")

		// 1000.00 leaves 5.00, not enough for the 10.00 fee.
		err := env.svc.Transfer(context.Background(), source.ID(), target.ID(), dec("1000.00"), "Invoice")
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)

		storedSource := env.uow.Account(source.ID())
		assert.True(t, storedSource.Balance().Equal(money.MustParse("1005.00")))
		assert.Empty(t, storedSource.Transactions())
		assert.Empty(t, env.uow.Account(target.ID()).Transactions())
	})

	t.Run("missing source account", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		target := seedAccount(t, env, account.Checking, "50.00")
		err := env.svc.Transfer(context.Background(), uuid.New(), target.ID(), dec("10.00"), "x")
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})

	t.Run("missing target account", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		source := seedAccount(t, env, account.Checking, "50.00")
		err := env.svc.Transfer(context.Background(), source.ID(), uuid.New(), dec("10.00"), "x")
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
		stored := env.uow.Account(source.ID())
		assert.True(t, stored.Balance().Equal(money.MustParse("50.00")))
		assert.Empty(t, stored.Transactions())
	})

	t.Run("self-transfer is not allowed", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		source := seedAccount(t, env, account.Checking, "50.00")
		err := env.svc.Transfer(context.Background(), source.ID(), source.ID(), dec("10.00"), "x")
		assert.ErrorIs(t, err, account.ErrTransferNotAllowed)
		assert.True(t, env.uow.Account(source.ID()).Balance().Equal(money.MustParse("50.00")))
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		source := seedAccount(t, env, account.Checking, "50.00")
		target := seedAccount(t, env, account.Checking, "50.00")
		for _, raw := range []string{"0", "-1.00"} {
			err := env.svc.Transfer(context.Background(), source.ID(), target.ID(), dec(raw), "x")
			assert.ErrorIs(t, err, money.ErrInvalidAmount, raw)
		}
	})

	t.Run("large transfer also publishes LargeTransactionDetected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.allowNotifications()
		source := seedAccount(t, env, account.Checking, "20000.00")
		target := seedAccount(t, env, account.Checking, "0.00")

		err := env.svc.Transfer(context.Background(), source.ID(), target.ID(), dec("10000.00"), "Acquisition")
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"MoneyWithdrawn", "MoneyReceived", "LargeTransactionDetected"},
			env.bus.EventTypes())
	})
}
