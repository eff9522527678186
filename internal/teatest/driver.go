// Package teatest provides a synchronous test driver for bubbletea models.
//
// A Driver stands in for tea.Program: it calls Update directly and runs the
// returned commands on the test goroutine until nothing is left, so a test
// sees the model exactly as it is after each key press.
//
// Models that schedule work through a timer.Scheduler are built with a
// timer.Fake and driven with Advance, which moves the clock and then lets the
// model flush whatever the fired callbacks queued.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/giftbox/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many commands one message may chain into.
const MaxDrainDepth = 100

// cmdTimeout separates instant commands (message factories, queued posts)
// from ones that sleep, such as the text input cursor blink.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been delivered. After that the
	// driver ignores further input, like a stopped program would.
	Quitting bool

	// Clock is the manual scheduler shared with the model, if any.
	Clock *timer.Fake
}

// Option configures a Driver during construction.
type Option func(*Driver)

// WithSize delivers an initial WindowSizeMsg before Init runs.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithClock attaches the fake scheduler the model was built with.
func WithClock(c *timer.Fake) Option {
	return func(d *Driver) { d.Clock = c }
}

// New wraps model. Call DrainInit afterwards to run the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init command and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(d.Model.Init(), 0)
}

// Send delivers msg through Update and drains the resulting commands.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.deliver(msg, 0)
}

// Advance moves the attached clock forward, firing due callbacks on the test
// goroutine, then sends a zero timer.Fired so the model drains any commands
// those callbacks queued.
func (d *Driver) Advance(dur time.Duration) {
	d.T.Helper()
	if d.Clock == nil {
		d.T.Fatal("teatest: Advance needs a clock, construct the driver WithClock")
		return
	}
	d.Clock.Advance(dur)
	d.Send(timer.Fired{})
}

// View returns the model's current rendering.
func (d *Driver) View() string {
	return d.Model.View()
}

// ── Keys ─────────────────────────────────────────────────────────────────────

// namedKeys maps the names accepted by Press to key types.
var namedKeys = map[string]tea.KeyType{
	"enter":      tea.KeyEnter,
	"esc":        tea.KeyEsc,
	"tab":        tea.KeyTab,
	"backspace":  tea.KeyBackspace,
	"up":         tea.KeyUp,
	"down":       tea.KeyDown,
	"left":       tea.KeyLeft,
	"right":      tea.KeyRight,
	"shift+up":   tea.KeyShiftUp,
	"shift+down": tea.KeyShiftDown,
	"ctrl+c":     tea.KeyCtrlC,
}

// Press sends each key in order. Keys are either names from the table
// above, "space", or a single character.
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		d.Send(keyMsg(d.T, k))
	}
}

// PressKey sends a single character.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends s one character at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func keyMsg(t *testing.T, k string) tea.KeyMsg {
	t.Helper()
	if kt, ok := namedKeys[k]; ok {
		return tea.KeyMsg{Type: kt}
	}
	if k == "space" {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if r := []rune(k); len(r) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: r}
	}
	t.Fatalf("teatest: unknown key %q", k)
	return tea.KeyMsg{}
}

// ── Draining ─────────────────────────────────────────────────────────────────

// deliver feeds msg to the model and drains what it returns.
func (d *Driver) deliver(msg tea.Msg, depth int) {
	d.T.Helper()
	if _, ok := msg.(tea.QuitMsg); ok {
		d.Quitting = true
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	if d.Quitting {
		return
	}
	d.run(cmd, depth+1)
}

// run executes cmd and routes its message, expanding batches depth first.
func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil || d.Quitting {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg, ok := runWithTimeout(cmd)
	if !ok || msg == nil || isCursorBlink(msg) {
		return
	}
	if batch, isBatch := msg.(tea.BatchMsg); isBatch {
		for _, sub := range batch {
			d.run(sub, depth+1)
		}
		return
	}
	d.deliver(msg, depth)
}

// runWithTimeout runs cmd on its own goroutine and gives up after cmdTimeout.
func runWithTimeout(cmd tea.Cmd) (tea.Msg, bool) {
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

// isCursorBlink matches the unexported blink messages from bubbles/cursor,
// which would otherwise chain into more sleeping commands.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
