// Package sequencer reveals a fixed list of lines one at a time on a timer.
package sequencer

import (
	"time"

	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/gate"
	"github.com/alexanderramin/giftbox/internal/timer"
)

// Title is shown above the revealed lines.
const Title = "Greedy !!"

// DefaultDelay is the gap between two reveals.
const DefaultDelay = 3 * time.Second

// DefaultLines are revealed after gift 3 unlocks.
var DefaultLines = []string{
	"for wanting more kindness than the world gives",
	"for dreaming bigger every time",
	"for still staying soft",
	"Okay, I will teach you chess, no worries 😼",
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLines replaces the revealed lines.
func WithLines(lines []string) Option {
	return func(s *Sequencer) { s.lines = append([]string(nil), lines...) }
}

// WithDelay sets the gap between reveals. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(s *Sequencer) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithPolicy selects stack or replace display.
func WithPolicy(p domain.LinePolicy) Option {
	return func(s *Sequencer) {
		if domain.ValidLinePolicies[string(p)] {
			s.policy = p
		}
	}
}

// WithOnNext sets the callback fired by Skip.
func WithOnNext(fn func()) Option {
	return func(s *Sequencer) { s.onNext = fn }
}

// WithOnStart sets the callback fired each time the sequence activates.
func WithOnStart(fn func()) Option {
	return func(s *Sequencer) { s.onStart = fn }
}

// Sequencer is a timed reveal. Its zero progress is index 0 (nothing shown).
type Sequencer struct {
	lines   []string
	delay   time.Duration
	policy  domain.LinePolicy
	onNext  func()
	onStart func()
	rec     analytics.Recorder
	timers  *timer.Group

	active bool
	index  int
}

// New returns an inactive Sequencer scheduling on sched.
func New(sched timer.Scheduler, rec analytics.Recorder, opts ...Option) *Sequencer {
	s := &Sequencer{
		lines:  DefaultLines,
		delay:  DefaultDelay,
		policy: domain.LinesStack,
		rec:    analytics.OrNoop(rec),
		timers: timer.NewGroup(sched),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Activate schedules one reveal per line at delay×(i+1). Calling it while
// already active does nothing.
func (s *Sequencer) Activate() {
	if s.active {
		return
	}
	s.active = true
	s.index = 0
	s.rec.Record(domain.EventGift3SequenceStart, nil)
	if s.onStart != nil {
		s.onStart()
	}
	for i, line := range s.lines {
		s.timers.After(s.delay*time.Duration(i+1), func() {
			s.index = i + 1
			s.rec.Record(domain.EventGift3SequenceLine, analytics.Attrs{"index": i, "text": line})
		})
	}
}

// Deactivate cancels every pending reveal and resets progress.
func (s *Sequencer) Deactivate() {
	s.timers.StopAll()
	s.active = false
	s.index = 0
}

// Active reports whether the sequence has been started and not torn down.
func (s *Sequencer) Active() bool { return s.active }

// Index returns how many lines have been revealed.
func (s *Sequencer) Index() int { return s.index }

// Done reports whether every line has been revealed.
func (s *Sequencer) Done() bool { return s.active && s.index == len(s.lines) }

// Policy returns the display policy.
func (s *Sequencer) Policy() domain.LinePolicy { return s.policy }

// Visible returns the lines to display under the current policy.
func (s *Sequencer) Visible() []string {
	if s.index == 0 {
		return nil
	}
	if s.policy == domain.LinesReplace {
		return []string{s.lines[s.index-1]}
	}
	return append([]string(nil), s.lines[:s.index]...)
}

// Skip moves on regardless of reveal progress.
func (s *Sequencer) Skip() {
	s.rec.Record(domain.EventGift3NextClicked, analytics.Attrs{"index": s.index})
	if s.onNext != nil {
		s.onNext()
	}
}

// EdgeTrigger starts and stops a Sequencer on transitions of one gift's
// unlock flag.
type EdgeTrigger struct {
	seq    *Sequencer
	gift   domain.GiftID
	last   bool
	cancel func()
}

// Watch attaches seq to ctrl so it activates when gift becomes unlocked and
// deactivates when it becomes locked again. If gift is already unlocked the
// sequence starts immediately.
func Watch(ctrl *gate.Controller, gift domain.GiftID, seq *Sequencer) *EdgeTrigger {
	e := &EdgeTrigger{seq: seq, gift: gift}
	e.Observe(ctrl.Unlocked(gift))
	e.cancel = ctrl.Subscribe(func(ch gate.Change) {
		e.Observe(ch.Next.Get(gift))
	})
	return e
}

// Observe feeds one reading of the flag. Only changes act.
func (e *EdgeTrigger) Observe(unlocked bool) {
	if unlocked == e.last {
		return
	}
	e.last = unlocked
	if unlocked {
		e.seq.Activate()
	} else {
		e.seq.Deactivate()
	}
}

// Stop detaches from the controller and tears the sequence down.
func (e *EdgeTrigger) Stop() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.seq.Deactivate()
}
