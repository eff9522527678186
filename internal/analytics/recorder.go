// Package analytics records best-effort telemetry events.
//
// Recording never blocks the caller and never returns an error: events are
// queued and fanned out to sinks on a background worker, and sink failures
// are logged and dropped.
package analytics

import (
	"sync"
	"time"

	"github.com/alexanderramin/giftbox/internal/domain"
)

// Attrs holds event attributes.
type Attrs map[string]any

// Recorder accepts events.
type Recorder interface {
	Record(name string, attrs Attrs)
}

// Noop discards all events.
type Noop struct{}

func (Noop) Record(string, Attrs) {}

// OrNoop returns r, or Noop when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return Noop{}
	}
	return r
}

// Memory keeps events in memory. Useful for tests.
type Memory struct {
	mu     sync.Mutex
	events []domain.AnalyticsEvent
}

// NewMemory returns an empty Memory recorder.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Record(name string, attrs Attrs) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, domain.AnalyticsEvent{
		Name:       name,
		Attrs:      copyAttrs(attrs),
		RecordedAt: time.Now().UTC(),
	})
}

// Events returns a copy of everything recorded so far.
func (m *Memory) Events() []domain.AnalyticsEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AnalyticsEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Named returns recorded events with the given name, in order.
func (m *Memory) Named(name string) []domain.AnalyticsEvent {
	var out []domain.AnalyticsEvent
	for _, e := range m.Events() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events with the given name were recorded.
func (m *Memory) Count(name string) int {
	return len(m.Named(name))
}

func copyAttrs(attrs Attrs) map[string]any {
	if len(attrs) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
