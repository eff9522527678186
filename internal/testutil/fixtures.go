package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/google/uuid"
)

// TestSessionID is the session used by fixtures unless overridden.
const TestSessionID = "test-session"

var eventClock atomic.Int64

// EventOption customizes a fixture event.
type EventOption func(*domain.AnalyticsEvent)

func WithSession(id string) EventOption {
	return func(e *domain.AnalyticsEvent) { e.SessionID = id }
}

func WithAttrs(attrs map[string]any) EventOption {
	return func(e *domain.AnalyticsEvent) { e.Attrs = attrs }
}

func WithRecordedAt(t time.Time) EventOption {
	return func(e *domain.AnalyticsEvent) { e.RecordedAt = t }
}

// NewTestEvent returns an event with a fresh id. Successive fixtures get
// strictly increasing timestamps.
func NewTestEvent(name string, opts ...EventOption) *domain.AnalyticsEvent {
	base := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	e := &domain.AnalyticsEvent{
		ID:         uuid.New().String(),
		SessionID:  TestSessionID,
		Name:       name,
		Attrs:      map[string]any{},
		RecordedAt: base.Add(time.Duration(eventClock.Add(1)) * time.Millisecond),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
