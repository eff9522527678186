package domain

import "fmt"

// GiftID identifies one gated stage. Valid values are 1 through 4.
type GiftID int

const (
	Gift1 GiftID = iota + 1
	Gift2
	Gift3
	Gift4
)

// GiftCount is the number of gated stages.
const GiftCount = 4

// AllGifts lists every gift in unlock order.
var AllGifts = []GiftID{Gift1, Gift2, Gift3, Gift4}

// Valid reports whether g is one of the four gifts.
func (g GiftID) Valid() bool {
	return g >= Gift1 && g <= Gift4
}

func (g GiftID) String() string {
	return fmt.Sprintf("gift %d", int(g))
}

// ParseGiftID converts a 1-based integer into a GiftID.
func ParseGiftID(n int) (GiftID, error) {
	g := GiftID(n)
	if !g.Valid() {
		return 0, fmt.Errorf("gift %d out of range (1-%d)", n, GiftCount)
	}
	return g, nil
}

// UnlockState maps each gift to whether it is unlocked.
// The zero value has every gift locked.
type UnlockState [GiftCount]bool

// Get returns the unlock flag for g. Invalid ids read as locked.
func (s UnlockState) Get(g GiftID) bool {
	if !g.Valid() {
		return false
	}
	return s[g-1]
}

// With returns a copy of s with g set to v.
func (s UnlockState) With(g GiftID, v bool) UnlockState {
	if g.Valid() {
		s[g-1] = v
	}
	return s
}

// Available reports whether every prerequisite of g is unlocked.
// Gift 1 is always available.
func (s UnlockState) Available(g GiftID) bool {
	if !g.Valid() {
		return false
	}
	for prev := Gift1; prev < g; prev++ {
		if !s.Get(prev) {
			return false
		}
	}
	return true
}

// Count returns how many gifts are unlocked.
func (s UnlockState) Count() int {
	n := 0
	for _, v := range s {
		if v {
			n++
		}
	}
	return n
}

// Monotone reports whether no gift is unlocked while an earlier one is locked.
func (s UnlockState) Monotone() bool {
	for g := Gift2; g <= Gift4; g++ {
		if s.Get(g) && !s.Get(g-1) {
			return false
		}
	}
	return true
}

// Map returns the state keyed by gift number, for event payloads.
func (s UnlockState) Map() map[int]bool {
	m := make(map[int]bool, GiftCount)
	for _, g := range AllGifts {
		m[int(g)] = s.Get(g)
	}
	return m
}
