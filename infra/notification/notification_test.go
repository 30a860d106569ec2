package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/versebank/banking/pkg/notification"
)

type failing struct{ err error }

func (f failing) Notify(context.Context, uuid.UUID, notification.Operation, string) error {
	return f.err
}

type counting struct{ calls int }

func (c *counting) Notify(context.Context, uuid.UUID, notification.Operation, string) error {
	c.calls++
	return nil
}

func TestFanout_AttemptsEveryChannel(t *testing.T) {
	t.Parallel()
	wantErr := errors.New("smtp down")
	second := &counting{}
	fanout := NewFanout(failing{err: wantErr}, second)

	err := fanout.Notify(context.Background(), uuid.New(), notification.OpDeposit, "Deposit of 10.00 - test")
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, second.calls)
}

func TestLoggingAdapters(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	id := uuid.New()

	assert.NoError(t, NewEmailNotifier(logger).Notify(ctx, id, notification.OpTransferOut, "x"))
	assert.NoError(t, NewSMSNotifier(logger).Notify(ctx, id, notification.OpTransferIn, "x"))
}
