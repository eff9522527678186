package cli

import (
	"slices"
	"testing"
	"time"

	"github.com/alexanderramin/giftbox/internal/celebrate"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/intro"
	"github.com/alexanderramin/giftbox/internal/puzzle"
	"github.com/alexanderramin/giftbox/internal/sequencer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHomeDriver starts the TUI on the home view.
func newHomeDriver(t *testing.T) (*TestDriver, testDeps) {
	t.Helper()
	app, deps := testApp(t)
	app.Options.SkipIntro = true
	d := NewTestDriver(t, app)
	require.Equal(t, ViewHome, d.ActiveViewID())
	return d, deps
}

// forceUnlock flips gifts on through the operator path, lets the model
// process the change notifications and waits out the celebration so the
// content area is visible again.
func (d *TestDriver) forceUnlock(gifts ...domain.GiftID) {
	d.T.Helper()
	for _, g := range gifts {
		d.State().Gate.ForceSet(g, true)
	}
	d.Advance(0)
	d.Advance(celebrate.DefaultDuration)
	require.False(d.T, d.State().Overlay.Visible())
}

// openFromHome unwinds to the home view and opens gift g by its digit.
func (d *TestDriver) openFromHome(g domain.GiftID) {
	d.T.Helper()
	d.Press("esc")
	require.Equal(d.T, ViewHome, d.ActiveViewID())
	d.PressKey(rune('0' + int(g)))
}

// solveOrdering reorders the timeline with shift-moves and checks it.
func (d *TestDriver) solveOrdering() {
	d.T.Helper()
	v, ok := d.appModel().activeView().(*orderingView)
	require.True(d.T, ok, "active view is not the ordering view")

	for i, want := range puzzle.TimelineItems {
		j := slices.Index(v.puzzle.Order(), want.ID)
		for v.cursor < j {
			d.Press("down")
		}
		for v.cursor > j {
			d.Press("up")
		}
		for k := j; k > i; k-- {
			d.PressKey('K')
		}
	}
	d.Press("enter")
}

// playChess taps through the scripted mate, waiting out each reply.
func (d *TestDriver) playChess() {
	d.T.Helper()
	for _, st := range puzzle.MateInThree {
		d.Type(string(st.Player.From))
		d.Type(string(st.Player.To))
		d.Advance(puzzle.DefaultReplyDelay)
	}
	d.Advance(puzzle.DefaultSolveDelay)
}

// =============================================================================
// Intro
// =============================================================================

func TestTUI_Intro_AutoAdvancesToHome(t *testing.T) {
	app, deps := testApp(t)
	d := NewTestDriver(t, app)
	assert.Equal(t, ViewIntro, d.ActiveViewID())
	assert.Contains(t, d.View(), intro.DefaultSteps[0])

	d.Advance(intro.StepDelay)
	assert.Contains(t, d.View(), intro.DefaultSteps[1])

	d.Advance(3*intro.StepDelay + intro.ImageDelay)
	assert.Equal(t, ViewHome, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
	assert.Equal(t, len(intro.DefaultSteps), deps.rec.Count(domain.EventIntroStepViewed))
	assert.Equal(t, 1, deps.rec.Count(domain.EventIntroImageViewed))
	assert.Equal(t, 1, deps.rec.Count(domain.EventIntroDone))
}

func TestTUI_Intro_KeyPressesAdvance(t *testing.T) {
	app, deps := testApp(t)
	d := NewTestDriver(t, app)

	for range len(intro.DefaultSteps) {
		d.PressKey('x')
	}
	assert.Equal(t, ViewIntro, d.ActiveViewID())
	assert.Contains(t, d.View(), "tap to continue")

	d.Press("space")
	assert.Equal(t, ViewHome, d.ActiveViewID())
	assert.Equal(t, len(intro.DefaultSteps)+1, deps.rec.Count(domain.EventIntroTapAdvance))
	assert.Equal(t, 1, deps.rec.Count(domain.EventIntroDone))

	// The cancelled auto-advance never fires a second finish.
	d.Advance(time.Minute)
	assert.Equal(t, 1, deps.rec.Count(domain.EventIntroDone))
}

// =============================================================================
// Home
// =============================================================================

func TestTUI_Home_ShowsHeroAndRoadmap(t *testing.T) {
	d, deps := newHomeDriver(t)

	view := d.View()
	assert.Contains(t, view, "Mira ✨")
	assert.Contains(t, view, "GIFT ROADMAP")
	assert.Contains(t, view, "0/4 unlocked")
	assert.Contains(t, view, "● Ready")
	assert.Contains(t, view, "🔒 Locked")
	assert.Equal(t, 1, deps.rec.Count(domain.EventPageView))
}

func TestTUI_Home_LockedGiftShowsNotice(t *testing.T) {
	d, deps := newHomeDriver(t)

	d.PressKey('3')
	assert.Equal(t, ViewHome, d.ActiveViewID())
	assert.Contains(t, d.State().Notice, "Gift 3 — Chess is locked")
	assert.Zero(t, deps.rec.Count(domain.EventRoadmapClick))

	// The notice clears on the next key.
	d.Press("down")
	assert.Empty(t, d.State().Notice)
}

func TestTUI_Home_StartOpensFirstLockedGift(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1)

	d.PressKey('s')
	assert.Equal(t, ViewCipher, d.ActiveViewID())
	assert.Equal(t, []ViewID{ViewHome, ViewCipher}, d.ViewStackIDs())
	assert.Equal(t, 1, deps.rec.Count(domain.EventHeroStartClick))
}

func TestTUI_Home_EnterOpensSelectedGift(t *testing.T) {
	d, deps := newHomeDriver(t)

	d.Press("enter")
	assert.Equal(t, ViewOrdering, d.ActiveViewID())

	clicks := deps.rec.Named(domain.EventRoadmapClick)
	require.Len(t, clicks, 1)
	assert.Equal(t, 1, clicks[0].Attrs["gift"])
	assert.Equal(t, false, clicks[0].Attrs["locked"])

	d.Press("esc")
	assert.Equal(t, ViewHome, d.ActiveViewID())
}

// =============================================================================
// Gift 1: ordering
// =============================================================================

func TestTUI_Ordering_SolveUnlocksAndCelebrates(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.PressKey('1')
	require.Equal(t, ViewOrdering, d.ActiveViewID())

	d.solveOrdering()

	assert.True(t, d.State().Gate.Unlocked(domain.Gift1))
	assert.True(t, d.State().Overlay.Visible())
	assert.Equal(t, 1, deps.rec.Count(domain.EventPuzzleSolved))
	assert.Equal(t, 1, deps.rec.Count(domain.EventCelebrationShown))
	assert.Contains(t, d.View(), "Gift 1 unlocked")
	assert.Contains(t, d.View(), "✦ STANDARD")

	d.Advance(celebrate.DefaultDuration)
	assert.False(t, d.State().Overlay.Visible())
	assert.Equal(t, 1, deps.rec.Count(domain.EventCelebrationHidden))

	view := d.View()
	assert.Contains(t, view, "GIFT #1")
	assert.Contains(t, view, "[n] "+gift1CTA)
	assert.Contains(t, view, "1/4")

	d.PressKey('n')
	assert.Equal(t, ViewCipher, d.ActiveViewID())
	assert.Equal(t, []ViewID{ViewHome, ViewCipher}, d.ViewStackIDs())
	assert.Equal(t, 1, deps.rec.Count(domain.EventRevealCTAClick))
}

func TestTUI_Ordering_FrozenAfterSolve(t *testing.T) {
	d, _ := newHomeDriver(t)
	d.PressKey('1')
	d.solveOrdering()

	v := d.appModel().activeView().(*orderingView)
	before := v.puzzle.Order()
	d.PressKey('J')
	assert.Equal(t, before, v.puzzle.Order())
}

func TestTUI_Ordering_ReopenShowsSolvedOrder(t *testing.T) {
	d, _ := newHomeDriver(t)
	d.forceUnlock(domain.Gift1)

	d.PressKey('1')
	v := d.appModel().activeView().(*orderingView)
	assert.True(t, v.puzzle.Solved())
	assert.Equal(t, []string{"met", "joke", "best", "today"}, v.puzzle.Order())
}

// =============================================================================
// Gift 2: cipher
// =============================================================================

func TestTUI_Cipher_TypedAnswerUnlocks(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1)

	d.PressKey('2')
	require.Equal(t, ViewCipher, d.ActiveViewID())
	assert.True(t, viewCapturesInput(d.appModel().activeView()))

	d.Type("you are magic")
	d.Press("enter")

	assert.True(t, d.State().Gate.Unlocked(domain.Gift2))
	assert.False(t, viewCapturesInput(d.appModel().activeView()))
	assert.Equal(t, 1, deps.rec.Count(domain.EventGift2CipherSubmit))

	d.Advance(celebrate.DefaultDuration)
	assert.Contains(t, d.View(), puzzle.CipherAnswer)
	assert.Contains(t, d.View(), gift2RevealBody)

	d.PressKey('n')
	assert.Equal(t, ViewChess, d.ActiveViewID())
}

func TestTUI_Cipher_InputSwallowsGlobalKeys(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1)
	d.PressKey('2')

	d.PressKey('q')
	assert.False(t, d.IsQuitting())

	d.Press("enter")
	assert.False(t, d.State().Gate.Unlocked(domain.Gift2))
	assert.Contains(t, d.View(), "Not yet")

	submits := deps.rec.Named(domain.EventGift2CipherSubmit)
	require.Len(t, submits, 1)
	assert.Equal(t, "q", submits[0].Attrs["input"])
	assert.Equal(t, false, submits[0].Attrs["ok"])
}

func TestTUI_Cipher_EscReleasesInputForHint(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1)
	d.PressKey('2')

	d.Press("esc")
	assert.Equal(t, ViewCipher, d.ActiveViewID(), "first esc only blurs the input")

	d.PressKey('h')
	assert.Contains(t, d.View(), "Hint: "+puzzle.CipherHint)
	assert.Equal(t, 1, deps.rec.Count(domain.EventGift2HintClicked))

	d.Press("esc")
	assert.Equal(t, ViewHome, d.ActiveViewID())
}

// =============================================================================
// Gift 3: chess + reveal sequence
// =============================================================================

func TestTUI_Chess_ScriptedMateUnlocks(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1, domain.Gift2)
	d.PressKey('3')
	require.Equal(t, ViewChess, d.ActiveViewID())

	d.playChess()

	assert.True(t, d.State().Gate.Unlocked(domain.Gift3))
	assert.Equal(t, 2, deps.rec.Count(domain.EventGift3OpponentMove))
	assert.Equal(t, 1, deps.rec.Count(domain.EventGift3SequenceStart))
	assert.True(t, d.State().Sequence.Active())
}

func TestTUI_Chess_TapsIgnoredWhileReplyPending(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1, domain.Gift2)
	d.PressKey('3')

	d.Type("c4f7")
	v := d.appModel().activeView().(*chessView)
	require.True(t, v.puzzle.Pending())

	d.Type("e4")
	assert.Equal(t, 1, deps.rec.Count(domain.EventGift3PieceSelected), "taps during the reply are ignored")

	d.Advance(puzzle.DefaultReplyDelay)
	assert.False(t, v.puzzle.Pending())
	assert.Equal(t, 2, v.puzzle.Stage())
}

func TestTUI_Chess_ArrowKeysTapSquares(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1, domain.Gift2)
	d.PressKey('3')

	// Cursor starts on c4; move to the knight on c3 and tap it.
	d.Press("down")
	d.Press("enter")
	assert.Equal(t, 1, deps.rec.Count(domain.EventGift3WrongPiece))

	d.Press("up")
	d.Press("space")
	v := d.appModel().activeView().(*chessView)
	assert.Equal(t, domain.Square("c4"), v.puzzle.Selected())
}

func TestTUI_Chess_SequenceRevealsLinesThenNext(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1, domain.Gift2)
	d.PressKey('3')
	d.playChess()

	d.Advance(sequencer.DefaultDelay)
	assert.Equal(t, 1, d.State().Sequence.Index())
	assert.Contains(t, d.View(), sequencer.DefaultLines[0])

	d.Advance(sequencer.DefaultDelay)
	view := d.View()
	assert.Contains(t, view, sequencer.DefaultLines[0])
	assert.Contains(t, view, sequencer.DefaultLines[1])

	d.PressKey('n')
	assert.Equal(t, ViewChoice, d.ActiveViewID())
	assert.Equal(t, []ViewID{ViewHome, ViewChoice}, d.ViewStackIDs())
	assert.Equal(t, 1, deps.rec.Count(domain.EventGift3NextClicked))
}

func TestTUI_Chess_UnlockFromHomeFocusesReveal(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1, domain.Gift2)
	require.Equal(t, ViewHome, d.ActiveViewID())

	d.forceUnlock(domain.Gift3)
	assert.Equal(t, []ViewID{ViewHome, ViewChess}, d.ViewStackIDs())
	assert.Equal(t, 1, deps.rec.Count(domain.EventGift3ScrolledTo))
	view := d.View()
	assert.Contains(t, view, "GREEDY !!")
	assert.Contains(t, view, sequencer.DefaultLines[0], "the first line lands while the celebration plays")
}

func TestTUI_Chess_SolvedInPlaceKeepsView(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1, domain.Gift2)
	d.PressKey('3')
	d.playChess()

	assert.Equal(t, []ViewID{ViewHome, ViewChess}, d.ViewStackIDs())
	assert.Equal(t, 1, deps.rec.Count(domain.EventGift3ScrolledTo))
}

func TestTUI_Chess_ReplacePolicyShowsOneLine(t *testing.T) {
	app, _ := testApp(t)
	app.Options.SkipIntro = true
	app.Options.LinePolicy = domain.LinesReplace
	d := NewTestDriver(t, app)
	d.forceUnlock(domain.Gift1, domain.Gift2)
	d.PressKey('3')
	d.playChess()

	d.Advance(2 * sequencer.DefaultDelay)
	assert.Equal(t, []string{sequencer.DefaultLines[1]}, d.State().Sequence.Visible())
}

// =============================================================================
// Gift 4: choices
// =============================================================================

func TestTUI_Choice_DigitsAnswerEveryQuestion(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1, domain.Gift2, domain.Gift3)
	d.openFromHome(domain.Gift4)
	require.Equal(t, ViewChoice, d.ActiveViewID())
	assert.Contains(t, d.View(), "1 Junoon")

	d.PressKey('2')
	assert.Contains(t, d.View(), "Question 2/4")
	d.PressKey('1')
	d.PressKey('2')
	d.PressKey('1')

	assert.True(t, d.State().Gate.Unlocked(domain.Gift4))
	assert.Equal(t, 4, deps.rec.Count(domain.EventGift4Choice))

	shown := deps.rec.Named(domain.EventCelebrationShown)
	require.NotEmpty(t, shown)
	assert.Equal(t, string(domain.IntensityElevated), shown[len(shown)-1].Attrs["intensity"])

	d.Advance(celebrate.DefaultDuration)
	assert.Contains(t, d.View(), "FINAL GIFT")
}

func TestTUI_Choice_ReplayReturnsHomeKeepingProgress(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1, domain.Gift2, domain.Gift3)
	d.openFromHome(domain.Gift4)
	for range puzzle.VibeQuestions {
		d.PressKey('1')
	}

	d.PressKey('r')
	assert.Equal(t, []ViewID{ViewHome}, d.ViewStackIDs())
	assert.Equal(t, 1, deps.rec.Count(domain.EventReplayClicked))

	done, total := d.State().Gate.Progress()
	assert.Equal(t, total, done)
}

func TestTUI_Choice_OutOfRangeDigitIgnored(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1, domain.Gift2, domain.Gift3)
	d.openFromHome(domain.Gift4)

	d.PressKey('7')
	assert.Zero(t, deps.rec.Count(domain.EventGift4Choice))
	assert.Contains(t, d.View(), "Question 1/4")
}

// =============================================================================
// Operator keys
// =============================================================================

func TestTUI_Dev_UnlockAndLockActiveGift(t *testing.T) {
	app, deps := testApp(t)
	app.Options.SkipIntro = true
	app.Options.Dev = true
	d := NewTestDriver(t, app)

	d.PressKey('1')
	d.PressKey('U')
	assert.True(t, d.State().Gate.Unlocked(domain.Gift1))
	assert.Equal(t, "operator: gift 1 set to unlocked", d.State().Notice)

	v := d.appModel().activeView().(*orderingView)
	assert.True(t, v.puzzle.Solved(), "forced unlock freezes the open session")

	d.PressKey('L')
	assert.False(t, d.State().Gate.Unlocked(domain.Gift1))
	v = d.appModel().activeView().(*orderingView)
	assert.False(t, v.puzzle.Solved(), "forced lock starts a fresh session")
	assert.Equal(t, 2, deps.rec.Count(domain.EventDevSetGiftUnlock))
}

func TestTUI_Dev_HeaderFlagsOutOfOrderState(t *testing.T) {
	app, _ := testApp(t)
	app.Options.SkipIntro = true
	app.Options.Dev = true
	d := NewTestDriver(t, app)

	d.forceUnlock(domain.Gift3)
	assert.False(t, d.State().Gate.Consistent())
	assert.Equal(t, ViewHome, d.ActiveViewID(), "an unreachable gift is not focused")
	assert.Contains(t, d.View(), "(out of order)")
	assert.Contains(t, d.View(), "DEV")
}

func TestTUI_Dev_KeysInactiveWithoutFlag(t *testing.T) {
	d, _ := newHomeDriver(t)
	d.PressKey('1')
	d.PressKey('U')
	assert.False(t, d.State().Gate.Unlocked(domain.Gift1))
	assert.NotContains(t, d.View(), "U: unlock")
}

// =============================================================================
// Quit
// =============================================================================

func TestTUI_QuitRecordsUnloadOnce(t *testing.T) {
	d, deps := newHomeDriver(t)

	d.PressKey('q')
	assert.True(t, d.IsQuitting())
	assert.Equal(t, 1, deps.rec.Count(domain.EventPageUnload))
	assert.Empty(t, d.View())
}

func TestTUI_CtrlCQuitsFromInput(t *testing.T) {
	d, deps := newHomeDriver(t)
	d.forceUnlock(domain.Gift1)
	d.PressKey('2')

	d.Press("ctrl+c")
	assert.True(t, d.IsQuitting())
	assert.Equal(t, 1, deps.rec.Count(domain.EventPageUnload))
}
