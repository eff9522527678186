package intro

import (
	"testing"

	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIntro() (*Intro, *timer.Fake, *analytics.Memory, *int) {
	clock := timer.NewFake()
	rec := analytics.NewMemory()
	done := 0
	in := New(clock, rec, func() { done++ })
	in.Start()
	return in, clock, rec, &done
}

func TestIntro_AutoAdvances(t *testing.T) {
	in, clock, rec, done := newTestIntro()

	text, img := in.Beat()
	assert.Equal(t, "Hi", text)
	assert.False(t, img)

	for i := 1; i < len(DefaultSteps); i++ {
		clock.Advance(StepDelay)
		text, _ = in.Beat()
		assert.Equal(t, DefaultSteps[i], text)
	}
	clock.Advance(StepDelay)
	_, img = in.Beat()
	assert.True(t, img)
	assert.False(t, in.Done())

	clock.Advance(ImageDelay)
	assert.True(t, in.Done())
	assert.Equal(t, 1, *done)
	assert.Equal(t, 4, rec.Count(domain.EventIntroStepViewed))
	assert.Equal(t, 1, rec.Count(domain.EventIntroImageViewed))
	assert.Equal(t, 1, rec.Count(domain.EventIntroDone))
	assert.Zero(t, clock.Pending())
}

func TestIntro_TapAdvancesAndResetsTimer(t *testing.T) {
	in, clock, rec, _ := newTestIntro()
	clock.Advance(StepDelay - 1)
	in.Tap()
	assert.Equal(t, 1, in.Index())

	// the old timer was cancelled; a fresh full delay applies
	clock.Advance(StepDelay - 1)
	assert.Equal(t, 1, in.Index())
	clock.Advance(1)
	assert.Equal(t, 2, in.Index())
	assert.Equal(t, 1, rec.Count(domain.EventIntroTapAdvance))
}

func TestIntro_TapThroughFinishesOnce(t *testing.T) {
	in, clock, rec, done := newTestIntro()
	for range len(DefaultSteps) + 1 {
		in.Tap()
	}
	require.True(t, in.Done())
	in.Tap()
	clock.Advance(ImageDelay * 10)
	assert.Equal(t, 1, *done)
	assert.Equal(t, 1, rec.Count(domain.EventIntroDone))
	assert.Equal(t, len(DefaultSteps)+1, rec.Count(domain.EventIntroTapAdvance))
}

func TestIntro_CloseStopsAutoAdvance(t *testing.T) {
	in, clock, _, done := newTestIntro()
	in.Close()
	clock.Advance(StepDelay * 10)
	assert.Equal(t, 0, in.Index())
	assert.Zero(t, *done)
}
