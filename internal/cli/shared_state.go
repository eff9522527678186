package cli

import (
	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/celebrate"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/gate"
	"github.com/alexanderramin/giftbox/internal/sequencer"
	"github.com/alexanderramin/giftbox/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
)

// SharedState holds context shared across all views via pointer.
// It is only touched from the bubbletea event loop.
type SharedState struct {
	App  *App
	Opts PlayOptions

	Gate     *gate.Controller
	Rec      analytics.Recorder
	Sched    timer.Scheduler
	Overlay  *celebrate.Overlay
	Sequence *sequencer.Sequencer

	// Terminal dimensions
	Width  int
	Height int

	// Transient line shown under the active view until the next key press.
	Notice string

	trigger   *sequencer.EdgeTrigger
	unsubGate func()
	pending   []tea.Cmd
}

func newSharedState(app *App, sched timer.Scheduler) *SharedState {
	opts := app.Options.withDefaults()
	rec := analytics.OrNoop(app.Recorder)

	s := &SharedState{
		App:   app,
		Opts:  opts,
		Rec:   rec,
		Sched: sched,
	}
	s.Overlay = celebrate.New(sched, rec,
		celebrate.WithDuration(opts.CelebrationDuration),
		celebrate.WithRand(app.Rand),
	)
	s.Gate = gate.New(s.Overlay, rec)
	s.Sequence = sequencer.New(sched, rec,
		sequencer.WithDelay(opts.LineDelay),
		sequencer.WithPolicy(opts.LinePolicy),
		sequencer.WithOnNext(func() { s.Post(navigateTo(domain.Gift4)) }),
		sequencer.WithOnStart(func() {
			s.Post(func() tea.Msg { return focusRevealMsg{gift: domain.Gift3} })
		}),
	)
	s.trigger = sequencer.Watch(s.Gate, domain.Gift3, s.Sequence)
	s.unsubGate = s.Gate.Subscribe(func(gate.Change) {
		s.Post(func() tea.Msg { return gateChangedMsg{} })
	})
	return s
}

// Post queues a command produced outside Update, typically by a timer
// callback or a core component hook. The app model flushes the queue after
// every message it handles.
func (s *SharedState) Post(cmd tea.Cmd) {
	if cmd != nil {
		s.pending = append(s.pending, cmd)
	}
}

// Drain returns and clears the queued commands.
func (s *SharedState) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Close stops every timer owner that outlives individual views.
func (s *SharedState) Close() {
	if s.unsubGate != nil {
		s.unsubGate()
		s.unsubGate = nil
	}
	s.trigger.Stop()
	s.Overlay.Close()
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and the notice line.
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
