package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/giftbox/internal/cli/formatter"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack, the celebration overlay and the operator keys.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

// closer is implemented by views that own timers.
type closer interface {
	Close()
}

func newAppModel(app *App, sched timer.Scheduler) appModel {
	state := newSharedState(app, sched)
	m := appModel{state: state}

	if state.Opts.SkipIntro {
		m.viewStack = []View{newHomeView(state)}
	} else {
		m.viewStack = []View{newIntroView(state)}
	}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// dropTop removes the top view and stops its timers.
func (m *appModel) dropTop() {
	top := m.activeView()
	if top == nil {
		return
	}
	if c, ok := top.(closer); ok {
		c.Close()
	}
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
}

// shutdown tears down every timer owner. Called once the program exits.
func (m *appModel) shutdown() {
	for len(m.viewStack) > 0 {
		m.dropTop()
	}
	m.state.Close()
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	m.state.Rec.Record(domain.EventPageView, nil)
	var cmds []tea.Cmd
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	cmds = append(cmds, m.state.Drain())
	return tea.Batch(cmds...)
}

// Update handles msg, then flushes commands that timer callbacks and core
// hooks queued on the shared state while it ran.
func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next, tea.Batch(cmd, m.state.Drain())
}

func (m appModel) update(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m.forward(msg)

	case timer.Fired:
		msg.Run()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	// Navigation messages from views
	case replaceViewMsg:
		if len(m.viewStack) > 0 {
			m.dropTop()
		}
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case openGiftMsg:
		return m.openGift(msg.gift)

	case focusRevealMsg:
		// Out-of-order operator unlocks leave the gift unreachable.
		if !m.state.Gate.Available(msg.gift) {
			return m, nil
		}
		m.state.Rec.Record(domain.EventGift3ScrolledTo, nil)
		return m.openGift(msg.gift)

	case homeMsg:
		for len(m.viewStack) > 1 {
			m.dropTop()
		}
		if v := m.activeView(); v == nil || v.ID() != ViewHome {
			m.dropTop()
			home := newHomeView(m.state)
			m.viewStack = append(m.viewStack, home)
			return m, home.Init()
		}
		return m, nil

	case gateChangedMsg:
		// Broadcast so every view on the stack re-syncs its puzzle session.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case noticeMsg:
		m.state.Notice = msg.text
		return m, nil
	}

	return m.forward(msg)
}

// forward passes msg to the active view.
func (m appModel) forward(msg tea.Msg) (appModel, tea.Cmd) {
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

// openGift shows the view for g on top of home, replacing any other gift
// view. Gifts that are not yet available decline with a notice.
func (m appModel) openGift(g domain.GiftID) (appModel, tea.Cmd) {
	if !g.Valid() {
		return m, nil
	}
	if !m.state.Gate.Available(g) {
		m.state.Notice = lockedNotice(g)
		return m, nil
	}
	if gv, ok := m.activeView().(giftView); ok {
		if gv.Gift() == g {
			return m, nil
		}
		m.dropTop()
	}
	v := newGiftView(m.state, g)
	m.viewStack = append(m.viewStack, v)
	return m, v.Init()
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	m.state.Notice = ""

	// If active view captures input (has its own text input), forward directly.
	// This bypasses global keybindings so the cipher input can receive all
	// characters including 'q' and 'U'.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		return m.forward(msg)
	}

	switch {
	case msg.String() == "q":
		return m.quit()

	case msg.Type == tea.KeyEsc:
		// Pop view stack (go back)
		if len(m.viewStack) > 1 {
			m.dropTop()
		}
		return m, nil

	case m.state.Opts.Dev && (msg.String() == "U" || msg.String() == "L"):
		if gv, ok := m.activeView().(giftView); ok {
			value := msg.String() == "U"
			if m.state.Gate.ForceSet(gv.Gift(), value) {
				m.state.Notice = fmt.Sprintf("operator: %s set to %s", gv.Gift(), lockWord(value))
			}
			return m, nil
		}
	}

	return m.forward(msg)
}

func (m appModel) quit() (appModel, tea.Cmd) {
	if !m.quitting {
		m.state.Rec.Record(domain.EventPageUnload, nil)
	}
	m.quitting = true
	return m, tea.Quit
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string

	// Header
	sections = append(sections, m.renderHeader())

	// Content area: the celebration replaces the view while it is up.
	if burst, ok := m.state.Overlay.Current(); ok && m.state.Width > 0 {
		sections = append(sections, formatter.RenderConfetti(burst, m.state.Width, m.state.ContentHeight()))
	} else if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	// Notice line
	sections = append(sections, formatter.StyleYellow.Render(m.state.Notice))

	// Status/shortcut bar
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("giftbox")

	// Breadcrumb from view stack
	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	done, total := m.state.Gate.Progress()
	header := title + breadcrumb + "  " + formatter.Dim("[") + formatter.StyleGreen.Render(fmt.Sprintf("%d/%d", done, total)) + formatter.Dim("]")
	if burst, ok := m.state.Overlay.Current(); ok {
		header += "  " + formatter.IntensityBadge(burst.Intensity)
	}
	if m.state.Opts.Dev {
		header += "  " + formatter.StyleRed.Render("DEV")
		if !m.state.Gate.Consistent() {
			header += " " + formatter.Dim("(out of order)")
		}
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	v := m.activeView()
	if v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}

	if v == nil || !viewCapturesInput(v) {
		if _, ok := v.(giftView); ok && m.state.Opts.Dev {
			hints = append(hints, formatter.StyleRed.Render("U: unlock  L: lock"))
		}
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		hints = append(hints, formatter.Dim("q: quit"))
	}

	bar := strings.Join(hints, "  ")
	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}

func lockWord(unlocked bool) string {
	if unlocked {
		return "unlocked"
	}
	return "locked"
}
