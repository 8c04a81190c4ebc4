package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSink records every notification it receives.
type memSink struct {
	items []Notification
	err   error
}

func (m *memSink) Name() string { return "mem" }

func (m *memSink) Send(_ context.Context, n Notification) error {
	m.items = append(m.items, n)
	return m.err
}

func TestBus_Notify_dispatches_to_sinks_and_subscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	sink := &memSink{}
	bus.AddSink(sink)

	var received []Notification
	bus.Subscribe(func(n Notification) {
		received = append(received, n)
	})

	ctx := context.Background()
	bus.Warnf(ctx, "Task Due Soon!", "Task '%s' is due %s", "OS", "2024-01-01")
	bus.Infof(ctx, "Saved", "ok")

	require.Len(t, sink.items, 2)
	require.Len(t, received, 2)
	assert.Equal(t, LevelWarning, received[0].Level)
	assert.Equal(t, "Task 'OS' is due 2024-01-01", received[0].Message)
	assert.Equal(t, LevelInfo, received[1].Level)
	assert.False(t, received[0].CreatedAt.IsZero())
}

func TestBus_Notify_sink_error_is_logged_not_returned(t *testing.T) {
	var buf bytes.Buffer
	bus := NewBus(zerolog.New(&buf))

	failing := &memSink{err: errors.New("dbus unavailable")}
	after := &memSink{}
	bus.AddSink(failing)
	bus.AddSink(after)

	bus.Notify(context.Background(), Notification{Title: "t", Message: "m"})

	assert.Len(t, after.items, 1, "later sinks still receive the notification")
	assert.Contains(t, buf.String(), "dbus unavailable")
}

func TestBus_Notify_recovers_from_panics(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	bus.AddSink(SinkFunc{ID: "boom", Fn: func(context.Context, Notification) error { panic("boom") }})

	called := false
	bus.Subscribe(func(Notification) { panic("again") })
	bus.Subscribe(func(Notification) { called = true })

	assert.NotPanics(t, func() {
		bus.Notify(context.Background(), Notification{Title: "t"})
	})
	assert.True(t, called)
}
