package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(Notification)

// Bus is a synchronous in-process notification bus. Notify dispatches to
// every sink and subscriber inline. Sink errors and subscriber panics are
// logged and swallowed so a broken notifier never reaches the caller.
type Bus struct {
	log zerolog.Logger

	mu          sync.Mutex
	sinks       []Sink
	subscribers []Subscriber
}

// NewBus creates a notification bus that logs delivery failures to log.
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{log: log}
}

// AddSink registers a sink that receives every notification.
func (b *Bus) AddSink(s Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, s)
}

// Subscribe registers a callback that will be invoked on every Notify.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Notify stamps n and fans it out to sinks, then subscribers.
func (b *Bus) Notify(ctx context.Context, n Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if n.Level == "" {
		n.Level = LevelInfo
	}

	b.mu.Lock()
	sinks := make([]Sink, len(b.sinks))
	copy(sinks, b.sinks)
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, s := range sinks {
		b.send(ctx, s, n)
	}

	for _, fn := range subs {
		b.call(fn, n)
	}
}

// Infof publishes an info-level notification.
func (b *Bus) Infof(ctx context.Context, title, format string, args ...any) {
	b.Notify(ctx, Notification{Level: LevelInfo, Title: title, Message: fmt.Sprintf(format, args...)})
}

// Warnf publishes a warning-level notification.
func (b *Bus) Warnf(ctx context.Context, title, format string, args ...any) {
	b.Notify(ctx, Notification{Level: LevelWarning, Title: title, Message: fmt.Sprintf(format, args...)})
}

func (b *Bus) send(ctx context.Context, s Sink, n Notification) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Str("sink", s.Name()).Str("panic", fmt.Sprint(r)).Msg("notification sink panicked")
		}
	}()

	if err := s.Send(ctx, n); err != nil {
		b.log.Warn().Ctx(ctx).Err(err).Str("sink", s.Name()).Str("title", n.Title).Msg("notification delivery failed")
	}
}

func (b *Bus) call(fn Subscriber, n Notification) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Str("panic", fmt.Sprint(r)).Msg("notification subscriber panicked")
		}
	}()
	fn(n)
}
