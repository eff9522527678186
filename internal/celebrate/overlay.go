// Package celebrate shows the transient "gift unlocked" acknowledgment.
package celebrate

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/timer"
)

const (
	// DefaultDuration is how long a burst stays up.
	DefaultDuration = 3 * time.Second
	// FadeLead is how long before dismissal the fade starts.
	FadeLead = 450 * time.Millisecond
)

// Glyphs are the confetti characters.
var Glyphs = []rune{'✦', '✧', '*', '·', '♡', '✺', '+', '°'}

// burst sizes: one centre spray and two side sprays.
var burstSize = map[domain.Intensity][2]int{
	domain.IntensityStandard: {90, 45},
	domain.IntensityElevated: {130, 65},
}

// Particle is one confetti glyph at a normalized position in [0,1)².
type Particle struct {
	X, Y  float64
	Glyph rune
	Hue   int
}

// Burst is the overlay content for one unlock.
type Burst struct {
	Gift      domain.GiftID
	Intensity domain.Intensity
	Badge     string
	Particles []Particle
	Fading    bool
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithDuration sets how long a burst stays up.
func WithDuration(d time.Duration) Option {
	return func(o *Overlay) {
		if d > 0 {
			o.duration = d
		}
	}
}

// WithRand fixes the particle layout source.
func WithRand(r *rand.Rand) Option {
	return func(o *Overlay) { o.rng = r }
}

// Overlay implements gate.Celebrator. At most one burst is visible; a newer
// Notify replaces the older one and cancels its timers.
type Overlay struct {
	timers   *timer.Group
	rec      analytics.Recorder
	duration time.Duration
	rng      *rand.Rand
	current  *Burst
}

// New returns an Overlay scheduling its fade and dismissal on sched.
func New(sched timer.Scheduler, rec analytics.Recorder, opts ...Option) *Overlay {
	o := &Overlay{
		timers:   timer.NewGroup(sched),
		rec:      analytics.OrNoop(rec),
		duration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return o
}

// Notify shows the acknowledgment for gift.
func (o *Overlay) Notify(gift domain.GiftID, intensity domain.Intensity) {
	o.timers.StopAll()
	b := &Burst{
		Gift:      gift,
		Intensity: intensity,
		Badge:     fmt.Sprintf("Gift %d unlocked ✨", int(gift)),
		Particles: o.spray(intensity),
	}
	o.current = b
	o.rec.Record(domain.EventCelebrationShown, analytics.Attrs{"gift": int(gift), "intensity": string(intensity)})

	o.timers.After(max(0, o.duration-FadeLead), func() {
		if o.current == b {
			b.Fading = true
		}
	})
	o.timers.After(o.duration, func() {
		if o.current != b {
			return
		}
		o.current = nil
		o.rec.Record(domain.EventCelebrationHidden, analytics.Attrs{"gift": int(gift)})
	})
}

// Current returns the visible burst.
func (o *Overlay) Current() (Burst, bool) {
	if o.current == nil {
		return Burst{}, false
	}
	return *o.current, true
}

// Visible reports whether a burst is showing.
func (o *Overlay) Visible() bool { return o.current != nil }

// Close cancels pending timers and hides the overlay.
func (o *Overlay) Close() {
	o.timers.StopAll()
	o.current = nil
}

// ParticleCount returns the total particles for intensity.
func ParticleCount(intensity domain.Intensity) int {
	sz, ok := burstSize[intensity]
	if !ok {
		sz = burstSize[domain.IntensityStandard]
	}
	return sz[0] + 2*sz[1]
}

func (o *Overlay) spray(intensity domain.Intensity) []Particle {
	sz, ok := burstSize[intensity]
	if !ok {
		sz = burstSize[domain.IntensityStandard]
	}
	out := make([]Particle, 0, sz[0]+2*sz[1])
	out = o.cone(out, sz[0], 0.5, 0.5, 0.45)
	out = o.cone(out, sz[1], 0.2, 0.55, 0.3)
	out = o.cone(out, sz[1], 0.8, 0.55, 0.3)
	return out
}

// cone scatters n particles around (cx, cy) within spread, clamped to [0,1).
func (o *Overlay) cone(out []Particle, n int, cx, cy, spread float64) []Particle {
	for range n {
		out = append(out, Particle{
			X:     clamp(cx + (o.rng.Float64()*2-1)*spread),
			Y:     clamp(cy + (o.rng.Float64()*2-1)*spread),
			Glyph: Glyphs[o.rng.IntN(len(Glyphs))],
			Hue:   o.rng.IntN(6),
		})
	}
	return out
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v >= 1:
		return 0.999
	}
	return v
}
