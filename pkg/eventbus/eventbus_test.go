package eventbus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versebank/banking/pkg/eventbus"
)

type testEvent struct{ name string }

func (e testEvent) EventType() string { return e.name }

func TestMemoryBus(t *testing.T) {
	t.Parallel()
	bus := eventbus.NewMemory()

	var got []string
	bus.Subscribe("ping", func(_ context.Context, ev eventbus.Event) {
		got = append(got, ev.EventType())
	})
	bus.Subscribe("ping", func(_ context.Context, ev eventbus.Event) {
		got = append(got, ev.EventType()+"-second")
	})

	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "ping"}))
	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "pong"}))

	// Handlers fire in subscription order; unsubscribed types are dropped.
	assert.Equal(t, []string{"ping", "ping-second"}, got)
}
