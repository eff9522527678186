// Package puzzle implements the four gift validators.
//
// Each validator owns its session state and reports success by calling the
// unlock callback it was built with. It freezes only once that callback
// accepts, and after that every mutating call is a silent no-op. Wrong answers are surfaced through Message and
// recorded as analytics, never returned as errors.
package puzzle

import (
	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/domain"
)

// UnlockFunc is called when a puzzle is solved. It reports whether the
// unlock was accepted.
type UnlockFunc func() bool

// base carries what every validator shares.
type base struct {
	gift   domain.GiftID
	solved bool
	msg    string
	unlock UnlockFunc
	rec    analytics.Recorder
}

func newBase(gift domain.GiftID, unlock UnlockFunc, rec analytics.Recorder, msg string) base {
	b := base{gift: gift, unlock: unlock, rec: analytics.OrNoop(rec), msg: msg}
	b.rec.Record(domain.EventGiftOpened, analytics.Attrs{"gift": int(gift)})
	return b
}

// Gift returns which gift this validator guards.
func (b *base) Gift() domain.GiftID { return b.gift }

// Solved reports whether the puzzle is finished and frozen.
func (b *base) Solved() bool { return b.solved }

// Status returns the lifecycle state.
func (b *base) Status() domain.PuzzleStatus {
	if b.solved {
		return domain.PuzzleSolved
	}
	return domain.PuzzleUnsolved
}

// Message returns the current user-facing feedback line.
func (b *base) Message() string { return b.msg }

// lockedMessage is shown when the gate declines an unlock.
const lockedMessage = "Locked 🔒 Finish the earlier gifts first."

// finish signals the unlock and, once the gate accepts it, freezes the
// puzzle. A declined unlock leaves the puzzle open so UnlockState stays the
// only record of progress. Already solved puzzles return false, so a
// duplicate solve never unlocks twice.
func (b *base) finish(attrs analytics.Attrs) bool {
	if b.solved {
		return false
	}
	if b.unlock != nil && !b.unlock() {
		b.msg = lockedMessage
		b.rec.Record(domain.EventPuzzleDeclined, analytics.Attrs{"gift": int(b.gift)})
		return false
	}
	b.solved = true
	if attrs == nil {
		attrs = analytics.Attrs{}
	}
	attrs["gift"] = int(b.gift)
	b.rec.Record(domain.EventPuzzleSolved, attrs)
	return true
}

// markSolved freezes the puzzle without calling unlock, for when the gift
// was unlocked from outside (operator panel).
func (b *base) markSolved() bool {
	if b.solved {
		return false
	}
	b.solved = true
	b.msg = "Solved ✅"
	return true
}
