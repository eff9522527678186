// Package intro drives the opening beats shown before the hero screen.
package intro

import (
	"time"

	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/timer"
)

// Beat timings.
const (
	StepDelay  = 2500 * time.Millisecond
	ImageDelay = 3000 * time.Millisecond
)

// DefaultSteps are the text beats, followed by one image beat.
var DefaultSteps = []string{"Hi", "Ready?", "Let's go", "Don't Smile :)"}

// Intro walks through the text beats then the image beat, each advancing on
// its own timer or on a key press. It finishes exactly once.
type Intro struct {
	steps  []string
	idx    int
	image  bool
	done   bool
	onDone func()
	rec    analytics.Recorder
	timers *timer.Group
}

// New returns an Intro that calls onDone when finished. Call Start to begin.
func New(sched timer.Scheduler, rec analytics.Recorder, onDone func()) *Intro {
	return &Intro{
		steps:  DefaultSteps,
		onDone: onDone,
		rec:    analytics.OrNoop(rec),
		timers: timer.NewGroup(sched),
	}
}

// Start shows the first beat.
func (in *Intro) Start() {
	in.enter()
}

// Beat returns the current text, or image=true on the image beat.
func (in *Intro) Beat() (text string, image bool) {
	if in.image {
		return "", true
	}
	return in.steps[in.idx], false
}

// Index returns the zero-based text beat.
func (in *Intro) Index() int { return in.idx }

// Done reports whether the intro finished.
func (in *Intro) Done() bool { return in.done }

// Tap advances one beat on user input.
func (in *Intro) Tap() {
	if in.done {
		return
	}
	in.rec.Record(domain.EventIntroTapAdvance, analytics.Attrs{"index": in.idx, "showImage": in.image})
	in.next()
}

// Close cancels the pending auto-advance.
func (in *Intro) Close() {
	in.timers.StopAll()
}

func (in *Intro) next() {
	in.timers.StopAll()
	switch {
	case in.image:
		in.finish()
		return
	case in.idx < len(in.steps)-1:
		in.idx++
	default:
		in.image = true
	}
	in.enter()
}

func (in *Intro) enter() {
	delay := StepDelay
	if in.image {
		delay = ImageDelay
		in.rec.Record(domain.EventIntroImageViewed, nil)
	} else {
		in.rec.Record(domain.EventIntroStepViewed, analytics.Attrs{"step": in.steps[in.idx], "index": in.idx})
	}
	in.timers.After(delay, in.next)
}

func (in *Intro) finish() {
	if in.done {
		return
	}
	in.done = true
	in.timers.StopAll()
	in.rec.Record(domain.EventIntroDone, nil)
	if in.onDone != nil {
		in.onDone()
	}
}
