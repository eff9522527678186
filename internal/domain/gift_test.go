package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnlockState_Available(t *testing.T) {
	var s UnlockState
	assert.True(t, s.Available(Gift1))
	assert.False(t, s.Available(Gift2))

	s = s.With(Gift1, true)
	assert.True(t, s.Available(Gift2))
	assert.False(t, s.Available(Gift3))

	s = s.With(Gift2, true).With(Gift3, true)
	assert.True(t, s.Available(Gift4))
	assert.False(t, s.Available(GiftID(5)))
	assert.False(t, s.Available(GiftID(0)))
}

func TestUnlockState_Monotone(t *testing.T) {
	var s UnlockState
	assert.True(t, s.Monotone())

	s = s.With(Gift1, true).With(Gift2, true)
	assert.True(t, s.Monotone())

	s = s.With(Gift1, false)
	assert.False(t, s.Monotone())
}

func TestUnlockState_WithIgnoresInvalidGift(t *testing.T) {
	var s UnlockState
	s = s.With(GiftID(9), true)
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.Get(GiftID(9)))
}

func TestParseGiftID(t *testing.T) {
	g, err := ParseGiftID(3)
	require.NoError(t, err)
	assert.Equal(t, Gift3, g)

	_, err = ParseGiftID(0)
	assert.Error(t, err)
	_, err = ParseGiftID(5)
	assert.Error(t, err)
}

func TestBoard_MoveCapturesDestination(t *testing.T) {
	b := StartPosition()
	require.Equal(t, BlackPawn, b["f7"])

	ok := b.Move("c4", "f7")
	require.True(t, ok)
	assert.False(t, b.Occupied("c4"))
	assert.Equal(t, WhiteBishop, b["f7"])
}

func TestBoard_MoveFromEmptySquareIsNoop(t *testing.T) {
	b := StartPosition()
	before := b.Clone()

	assert.False(t, b.Move("d4", "d5"))
	assert.Equal(t, before, b)
}

func TestParseSquare(t *testing.T) {
	sq, err := ParseSquare("e4")
	require.NoError(t, err)
	assert.Equal(t, Square("e4"), sq)

	for _, bad := range []string{"", "e9", "i1", "e44", "E4"} {
		_, err := ParseSquare(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, Square("a8"), SquareAt(0, 0))
	assert.Equal(t, Square("h1"), SquareAt(7, 7))
	assert.True(t, Square("a1").Dark())
	assert.False(t, Square("h1").Dark())
}
