package puzzle

import (
	"math/rand/v2"
	"strings"

	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/domain"
)

// Ordering is the gift 1 timeline puzzle.
type Ordering struct {
	base
	correct []Item
	items   []Item
}

// NewOrdering starts a session with correct shuffled by rng.
// A nil rng uses the package-level source.
func NewOrdering(correct []Item, rng *rand.Rand, unlock UnlockFunc, rec analytics.Recorder) *Ordering {
	o := &Ordering{
		base:    newBase(domain.Gift1, unlock, rec, "Reorder the photos into the right timeline."),
		correct: append([]Item(nil), correct...),
		items:   append([]Item(nil), correct...),
	}
	Shuffle(o.items, rng)
	return o
}

// Shuffle permutes items uniformly (Fisher–Yates).
func Shuffle[T any](items []T, rng *rand.Rand) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(items) - 1; i > 0; i-- {
		j := intN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Items returns the current order.
func (o *Ordering) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Order returns the current item ids.
func (o *Ordering) Order() []string {
	ids := make([]string, len(o.items))
	for i, it := range o.items {
		ids[i] = it.ID
	}
	return ids
}

// Swap exchanges positions i and j. It declines when solved or out of range.
func (o *Ordering) Swap(i, j int) bool {
	if o.solved || i < 0 || j < 0 || i >= len(o.items) || j >= len(o.items) || i == j {
		return false
	}
	o.items[i], o.items[j] = o.items[j], o.items[i]
	o.rec.Record(domain.EventGift1Reorder, analytics.Attrs{
		"from": i,
		"to":   j,
		"next": o.Order(),
	})
	return true
}

// MoveUp swaps position i with the one above it.
func (o *Ordering) MoveUp(i int) bool { return o.Swap(i, i-1) }

// MoveDown swaps position i with the one below it.
func (o *Ordering) MoveDown(i int) bool { return o.Swap(i, i+1) }

// Check compares the current order with the correct one. On a match the
// puzzle is solved and gift 1 unlocks.
func (o *Ordering) Check() bool {
	if o.solved {
		return false
	}
	ok := o.matches()
	o.rec.Record(domain.EventPuzzleAttempt, analytics.Attrs{
		"gift":  int(o.gift),
		"ok":    ok,
		"order": o.Order(),
	})
	if !ok {
		o.msg = "Not yet 😼 Try again."
		return false
	}
	o.msg = "Perfect ✅"
	return o.finish(nil)
}

func (o *Ordering) matches() bool {
	if len(o.items) != len(o.correct) {
		return false
	}
	want := make([]string, len(o.correct))
	for i, it := range o.correct {
		want[i] = it.ID
	}
	return strings.Join(o.Order(), "|") == strings.Join(want, "|")
}

// Sync freezes the puzzle in the correct order when the gift was unlocked
// elsewhere.
func (o *Ordering) Sync(unlocked bool) {
	if unlocked && o.markSolved() {
		o.items = append(o.items[:0], o.correct...)
	}
}
