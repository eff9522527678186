// Package timer provides fire-once, cancellable timers whose callbacks run
// on the owner's event loop.
//
// Components that schedule work hold a Group and call StopAll on teardown,
// so no callback scheduled through the group can run after the owner is gone.
package timer

import (
	"sync"
	"time"
)

// Timer is a handle to one scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it had already fired or been stopped.
	Stop() bool
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

// Group tracks timers scheduled on behalf of one owner.
type Group struct {
	sched  Scheduler
	mu     sync.Mutex
	timers []Timer
}

// NewGroup returns a Group scheduling on s.
func NewGroup(s Scheduler) *Group {
	return &Group{sched: s}
}

// After schedules fn and records its handle for StopAll.
func (g *Group) After(d time.Duration, fn func()) Timer {
	t := g.sched.After(d, fn)
	g.mu.Lock()
	g.timers = append(g.timers, t)
	g.mu.Unlock()
	return t
}

// StopAll cancels every timer scheduled through the group and forgets them.
// It returns how many were still pending.
func (g *Group) StopAll() int {
	g.mu.Lock()
	timers := g.timers
	g.timers = nil
	g.mu.Unlock()

	stopped := 0
	for _, t := range timers {
		if t.Stop() {
			stopped++
		}
	}
	return stopped
}
