package cli

import (
	"testing"

	"github.com/alexanderramin/giftbox/internal/teatest"
	"github.com/alexanderramin/giftbox/internal/timer"
)

// TestDriver wraps teatest.Driver with giftbox-specific inspection methods.
// It provides access to appModel internals (view stack, shared state)
// that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// The model runs on a manual clock, so timed beats only fire on Advance.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	clock := timer.NewFake()
	m := newAppModel(app, clock)
	d := teatest.New(t, m, teatest.WithSize(120, 40), teatest.WithClock(clock))
	d.DrainInit()

	td := &TestDriver{Driver: d}
	t.Cleanup(func() { td.appModel().shutdown() })
	return td
}

// ── Inspection ───────────────────────────────────────────────────────────────

// appModel returns a copy of the current model. Views and the shared state
// are pointers, so inspecting them through the copy sees live values.
func (d *TestDriver) appModel() *appModel {
	m := d.Model.(appModel)
	return &m
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.appModel().activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
