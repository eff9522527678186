package analytics

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/google/uuid"
)

// DefaultQueueSize is the number of events buffered before new ones are dropped.
const DefaultQueueSize = 256

// sinkTimeout bounds a single sink write.
const sinkTimeout = 5 * time.Second

// Sink persists or forwards events.
type Sink interface {
	Name() string
	Write(ctx context.Context, event domain.AnalyticsEvent) error
}

// Dispatcher is a Recorder that queues events and delivers them to every
// sink from a single worker goroutine.
type Dispatcher struct {
	sessionID string
	sinks     []Sink
	logger    *slog.Logger
	now       func() time.Time

	mu      sync.RWMutex
	closed  bool
	queue   chan domain.AnalyticsEvent
	done    chan struct{}
	dropped atomic.Int64
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSinks adds sinks. Nil sinks are ignored.
func WithSinks(sinks ...Sink) Option {
	return func(d *Dispatcher) {
		for _, s := range sinks {
			if s != nil {
				d.sinks = append(d.sinks, s)
			}
		}
	}
}

// WithLogger sets where sink failures are reported.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithQueueSize overrides DefaultQueueSize.
func WithQueueSize(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queue = make(chan domain.AnalyticsEvent, n)
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDispatcher starts a dispatcher for the given session.
func NewDispatcher(sessionID string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sessionID: sessionID,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
		queue:     make(chan domain.AnalyticsEvent, DefaultQueueSize),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	go d.run()
	return d
}

// Record enqueues an event without blocking. When the queue is full or the
// dispatcher is closed the event is dropped.
func (d *Dispatcher) Record(name string, attrs Attrs) {
	event := domain.AnalyticsEvent{
		ID:         uuid.NewString(),
		SessionID:  d.sessionID,
		Name:       name,
		Attrs:      copyAttrs(attrs),
		RecordedAt: d.now().UTC(),
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.dropped.Add(1)
		return
	}
	select {
	case d.queue <- event:
	default:
		d.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// SessionID returns the session id stamped on every event.
func (d *Dispatcher) SessionID() string {
	return d.sessionID
}

// Close stops accepting events and waits for queued ones to be delivered,
// or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for event := range d.queue {
		for _, s := range d.sinks {
			d.deliver(s, event)
		}
	}
}

func (d *Dispatcher) deliver(s Sink, event domain.AnalyticsEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("analytics_sink_panic", "sink", s.Name(), "event", event.Name, "panic", r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()
	if err := s.Write(ctx, event); err != nil {
		d.logger.Warn("analytics_sink_failed", "sink", s.Name(), "event", event.Name, "error", err.Error())
	}
}
