package account_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versebank/banking/pkg/domain/account"
	"github.com/versebank/banking/pkg/money"
)

func TestNewTransaction(t *testing.T) {
	t.Parallel()

	t.Run("creates with fresh id and timestamp", func(t *testing.T) {
		tx, err := account.NewTransaction(money.MustParse("10.00"), "lunch", account.KindWithdrawal)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, tx.ID())
		assert.False(t, tx.Timestamp().IsZero())
		assert.Equal(t, "lunch", tx.Description())
		assert.Equal(t, account.KindWithdrawal, tx.Kind())
	})

	t.Run("ids are never reused", func(t *testing.T) {
		a, err := account.NewTransaction(money.MustParse("1"), "a", account.KindDeposit)
		require.NoError(t, err)
		b, err := account.NewTransaction(money.MustParse("1"), "a", account.KindDeposit)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID(), b.ID())
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := account.NewTransaction(money.Zero(), "zero", account.KindDeposit)
		assert.ErrorIs(t, err, money.ErrInvalidAmount)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := account.NewTransaction(money.MustParse("1"), "  ", account.KindDeposit)
		assert.ErrorIs(t, err, account.ErrInvalidDescription)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := account.NewTransaction(money.MustParse("1"), "x", account.TransactionKind("REFUND"))
		assert.Error(t, err)
	})
}
