package cli

import (
	"github.com/alexanderramin/giftbox/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// replaceViewMsg replaces the current top view with a new one.
type replaceViewMsg struct {
	view View
}

// openGiftMsg asks the app to show a gift's view. Locked gifts decline.
type openGiftMsg struct {
	gift domain.GiftID
}

// focusRevealMsg brings a freshly unlocked gift's reveal into view.
type focusRevealMsg struct {
	gift domain.GiftID
}

// homeMsg unwinds the stack back to the home view.
type homeMsg struct{}

// gateChangedMsg is broadcast to every view after the unlock state changes.
type gateChangedMsg struct{}

// noticeMsg sets the transient line under the content area.
type noticeMsg struct {
	text string
}

// replaceView returns a tea.Cmd that replaces the top view.
func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

// navigateTo returns a tea.Cmd that opens the view for g.
func navigateTo(g domain.GiftID) tea.Cmd {
	return func() tea.Msg { return openGiftMsg{gift: g} }
}

// goHome returns a tea.Cmd that returns to the home view.
func goHome() tea.Cmd {
	return func() tea.Msg { return homeMsg{} }
}

// notice returns a tea.Cmd that shows text under the active view.
func notice(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}
