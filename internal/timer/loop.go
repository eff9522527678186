package timer

import (
	"sync/atomic"
	"time"
)

// Loop schedules on wall-clock time and hands due callbacks to post, which
// must deliver them to the single goroutine that owns the state they touch
// (for the TUI, tea.Program.Send). The callback is checked for cancellation
// again when the loop runs it, so a Stop that races with the OS timer still
// wins.
type Loop struct {
	post func(Fired)
}

// Fired is a due callback waiting to run on the event loop.
type Fired struct {
	t *loopTimer
}

// Run executes the callback unless its timer was stopped after firing.
func (f Fired) Run() {
	if f.t == nil {
		return
	}
	if f.t.state.CompareAndSwap(loopFired, loopDone) {
		f.t.fn()
	}
}

const (
	loopPending int32 = iota
	loopFired
	loopDone
	loopStopped
)

type loopTimer struct {
	fn    func()
	state atomic.Int32
	timer *time.Timer
}

// NewLoop returns a Loop that delivers due callbacks through post.
func NewLoop(post func(Fired)) *Loop {
	return &Loop{post: post}
}

func (l *Loop) After(d time.Duration, fn func()) Timer {
	t := &loopTimer{fn: fn}
	t.timer = time.AfterFunc(d, func() {
		if t.state.CompareAndSwap(loopPending, loopFired) {
			l.post(Fired{t: t})
		}
	})
	return t
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	if t.state.CompareAndSwap(loopPending, loopStopped) {
		return true
	}
	return t.state.CompareAndSwap(loopFired, loopStopped)
}
