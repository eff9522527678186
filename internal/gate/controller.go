// Package gate owns the unlock state of the four gifts.
//
// The Controller is the only writer of UnlockState. Puzzles call Unlock when
// solved; the operator panel calls ForceSet. Availability is always derived
// from the current state, never stored.
//
// A Controller is not safe for concurrent use; it is driven from the UI event
// loop like every other piece of gating state.
package gate

import (
	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/domain"
)

// Celebrator receives "gift unlocked" notifications.
type Celebrator interface {
	Notify(gift domain.GiftID, intensity domain.Intensity)
}

// Change describes one effective state mutation.
type Change struct {
	Gift   domain.GiftID
	Prev   domain.UnlockState
	Next   domain.UnlockState
	Forced bool
}

// Became reports whether g went from locked to unlocked in this change.
func (c Change) Became(g domain.GiftID) bool {
	return !c.Prev.Get(g) && c.Next.Get(g)
}

// Controller holds UnlockState and applies the gating rules.
type Controller struct {
	state     domain.UnlockState
	celebrate Celebrator
	rec       analytics.Recorder

	subs   map[int]func(Change)
	order  []int
	nextID int
}

// New returns a Controller with every gift locked. Either collaborator may be nil.
func New(c Celebrator, rec analytics.Recorder) *Controller {
	return &Controller{
		celebrate: c,
		rec:       analytics.OrNoop(rec),
		subs:      make(map[int]func(Change)),
	}
}

// SetCelebrator replaces the celebration sink.
func (c *Controller) SetCelebrator(cel Celebrator) {
	c.celebrate = cel
}

// IntensityFor returns the celebration tier for g.
func IntensityFor(g domain.GiftID) domain.Intensity {
	if g == domain.Gift4 {
		return domain.IntensityElevated
	}
	return domain.IntensityStandard
}

// Unlock marks g unlocked. It declines (returns false) when g is invalid,
// not yet available, or already unlocked; only the first successful call
// records the event, celebrates and notifies subscribers.
func (c *Controller) Unlock(g domain.GiftID) bool {
	if !g.Valid() || c.state.Get(g) || !c.state.Available(g) {
		return false
	}
	prev := c.state
	c.state = c.state.With(g, true)

	c.rec.Record(domain.EventGiftUnlocked, analytics.Attrs{"gift": int(g)})
	c.notify(g, IntensityFor(g))
	c.publish(Change{Gift: g, Prev: prev, Next: c.state})
	return true
}

// ForceSet is the operator override. Setting true unlocks exactly g.
// Setting false locks g and every later gift so no gift stays unlocked
// behind a locked prerequisite. It reports whether the state changed.
func (c *Controller) ForceSet(g domain.GiftID, value bool) bool {
	if !g.Valid() {
		return false
	}
	prev := c.state
	next := prev
	if value {
		next = next.With(g, true)
	} else {
		for _, later := range domain.AllGifts {
			if later >= g {
				next = next.With(later, false)
			}
		}
	}

	c.rec.Record(domain.EventDevSetGiftUnlock, analytics.Attrs{
		"gift":  int(g),
		"value": value,
		"next":  next.Map(),
	})
	if next == prev {
		return false
	}
	c.state = next
	if value {
		c.notify(g, domain.IntensityStandard)
	}
	c.publish(Change{Gift: g, Prev: prev, Next: next, Forced: true})
	return true
}

// Unlocked reports whether g is unlocked.
func (c *Controller) Unlocked(g domain.GiftID) bool {
	return c.state.Get(g)
}

// Available reports whether g's puzzle may be attempted.
func (c *Controller) Available(g domain.GiftID) bool {
	return c.state.Available(g)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() domain.UnlockState {
	return c.state
}

// Progress returns the number of unlocked gifts and the total.
func (c *Controller) Progress() (done, total int) {
	return c.state.Count(), domain.GiftCount
}

// Consistent reports whether the monotonicity invariant holds. Only an
// operator force-unlock can break it.
func (c *Controller) Consistent() bool {
	return c.state.Monotone()
}

// Subscribe registers fn to run after every effective change, in
// registration order. The returned func removes the subscription.
func (c *Controller) Subscribe(fn func(Change)) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.order = append(c.order, id)
	return func() {
		delete(c.subs, id)
		for i, o := range c.order {
			if o == id {
				c.order = append(c.order[:i:i], c.order[i+1:]...)
				break
			}
		}
	}
}

// Unlocker returns a callback that unlocks g, for handing to a puzzle.
func (c *Controller) Unlocker(g domain.GiftID) func() bool {
	return func() bool { return c.Unlock(g) }
}

func (c *Controller) publish(ch Change) {
	ids := append([]int(nil), c.order...)
	for _, id := range ids {
		if fn, ok := c.subs[id]; ok {
			fn(ch)
		}
	}
}

// notify calls the celebrator, swallowing any panic so presentation
// failures never affect gating.
func (c *Controller) notify(g domain.GiftID, intensity domain.Intensity) {
	if c.celebrate == nil {
		return
	}
	defer func() { _ = recover() }()
	c.celebrate.Notify(g, intensity)
}
