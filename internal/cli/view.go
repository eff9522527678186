package cli

import (
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewIntro ViewID = iota
	ViewHome
	ViewOrdering
	ViewCipher
	ViewChess
	ViewChoice
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// giftView is a View that hosts one gift's puzzle.
type giftView interface {
	View
	Gift() domain.GiftID
}

// inputCapturer is implemented by views that own a focused text input.
type inputCapturer interface {
	CapturesInput() bool
}

// viewCapturesInput returns true if the active view has its own focused text
// input and should receive all key events, bypassing global bindings.
func viewCapturesInput(v View) bool {
	c, ok := v.(inputCapturer)
	return ok && c.CapturesInput()
}
