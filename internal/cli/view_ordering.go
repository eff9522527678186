package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/giftbox/internal/cli/formatter"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/puzzle"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const gift1CTA = "Go to Gift 2 →"

// orderingView hosts the gift 1 timeline puzzle.
type orderingView struct {
	state  *SharedState
	puzzle *puzzle.Ordering
	cursor int
}

func newOrderingView(state *SharedState) *orderingView {
	v := &orderingView{state: state}
	v.reset()
	return v
}

// reset starts a new puzzle session.
func (v *orderingView) reset() {
	v.puzzle = puzzle.NewOrdering(puzzle.TimelineItems, v.state.App.Rand, v.state.Gate.Unlocker(domain.Gift1), v.state.Rec)
	v.puzzle.Sync(v.state.Gate.Unlocked(domain.Gift1))
	v.cursor = 0
}

func (v *orderingView) ID() ViewID          { return ViewOrdering }
func (v *orderingView) Title() string       { return "Gift 1" }
func (v *orderingView) Gift() domain.GiftID { return domain.Gift1 }

func (v *orderingView) ShortHelp() []key.Binding {
	if v.puzzle.Solved() {
		return []key.Binding{
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "gift 2")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "select")),
		key.NewBinding(key.WithKeys("shift+up", "shift+down"), key.WithHelp("shift+↑↓/K J", "move")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check order")),
	}
}

func (v *orderingView) Init() tea.Cmd { return nil }

func (v *orderingView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gateChangedMsg:
		v.sync()
		return v, nil

	case tea.KeyMsg:
		last := len(v.puzzle.Items()) - 1
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < last {
				v.cursor++
			}
		case "shift+up", "K":
			if v.puzzle.MoveUp(v.cursor) {
				v.cursor--
			}
		case "shift+down", "J":
			if v.puzzle.MoveDown(v.cursor) {
				v.cursor++
			}
		case "enter":
			v.puzzle.Check()
		case "n":
			if v.state.Gate.Unlocked(domain.Gift1) {
				return v, revealCTA(v.state, gift1RevealTitle, gift1CTA, domain.Gift2)
			}
		}
	}
	return v, nil
}

// sync follows operator changes: a forced unlock freezes the session, a
// forced lock of a solved session starts a new one.
func (v *orderingView) sync() {
	unlocked := v.state.Gate.Unlocked(domain.Gift1)
	if v.puzzle.Solved() && !unlocked {
		v.reset()
		return
	}
	v.puzzle.Sync(unlocked)
}

func (v *orderingView) View() string {
	var b strings.Builder
	b.WriteString(renderGiftHeader(v.state, domain.Gift1))
	b.WriteString("\n")

	for i, it := range v.puzzle.Items() {
		mark := " "
		label := formatter.StyleFg.Render(it.Label)
		if i == v.cursor && !v.puzzle.Solved() {
			mark = cursorMark
			label = formatter.Bold(it.Label)
		}
		fmt.Fprintf(&b, " %s %s %s\n", mark, formatter.Dim(fmt.Sprintf("%d.", i+1)), label)
	}
	b.WriteString("\n")
	if msg := message(v.puzzle.Message(), v.puzzle.Solved()); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n")
	}

	if v.state.Gate.Unlocked(domain.Gift1) {
		b.WriteString("\n")
		b.WriteString(renderReveal(gift1RevealTitle, gift1RevealBody, gift1CTA))
	}
	return b.String()
}
