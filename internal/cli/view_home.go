package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/cli/formatter"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	heroKicker = lipgloss.NewStyle().Foreground(formatter.ColorPurple)
	heroTitle  = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	cursorMark = formatter.StyleHeader.Render("▸")
)

// homeView is the hero card plus the gift roadmap.
type homeView struct {
	state  *SharedState
	cursor int
}

func newHomeView(state *SharedState) *homeView {
	return &homeView{state: state}
}

func (v *homeView) ID() ViewID    { return ViewHome }
func (v *homeView) Title() string { return "Home" }

func (v *homeView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start unlocking")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "select")),
		key.NewBinding(key.WithKeys("enter", "1", "2", "3", "4"), key.WithHelp("enter/1-4", "open gift")),
	}
}

func (v *homeView) Init() tea.Cmd { return nil }

func (v *homeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < domain.GiftCount-1 {
			v.cursor++
		}
	case "s":
		v.state.Rec.Record(domain.EventHeroStartClick, nil)
		g := v.nextGift()
		v.cursor = int(g) - 1
		return v, navigateTo(g)
	case "enter":
		return v, v.open(domain.GiftID(v.cursor + 1))
	case "1", "2", "3", "4":
		g := domain.GiftID(keyMsg.Runes[0] - '0')
		v.cursor = int(g) - 1
		return v, v.open(g)
	}
	return v, nil
}

// open behaves like tapping a roadmap item: locked items are disabled.
func (v *homeView) open(g domain.GiftID) tea.Cmd {
	if !v.state.Gate.Available(g) {
		return notice(lockedNotice(g))
	}
	v.state.Rec.Record(domain.EventRoadmapClick, analytics.Attrs{"gift": int(g), "locked": false})
	return navigateTo(g)
}

// nextGift returns the first gift that is available but still locked, or
// the last gift when everything is open.
func (v *homeView) nextGift() domain.GiftID {
	for _, g := range domain.AllGifts {
		if !v.state.Gate.Unlocked(g) {
			return g
		}
	}
	return domain.Gift4
}

func (v *homeView) View() string {
	var b strings.Builder

	done, total := v.state.Gate.Progress()
	hero := heroKicker.Render("Happy Birthday") + "\n" +
		heroTitle.Render(v.state.Opts.Name+" ✨") + "\n" +
		formatter.StyleFg.Render("I made you a tiny universe. Unlock it.") + "\n\n" +
		formatter.StyleHeader.Render("[s] Start unlocking →") + "   " + formatter.RenderProgress(done, total, 12)
	b.WriteString(formatter.RenderBox("", hero))
	b.WriteString("\n\n")

	b.WriteString(formatter.Header("Gift Roadmap"))
	b.WriteString("  " + formatter.Dim("Pick a gift to jump"))
	b.WriteString("\n")
	for i, g := range domain.AllGifts {
		mark := " "
		if i == v.cursor {
			mark = cursorMark
		}
		label := fmt.Sprintf("%-24s", giftCopies[g].short)
		if v.state.Gate.Available(g) {
			label = formatter.StyleFg.Render(label)
		} else {
			label = formatter.Dim(label)
		}
		fmt.Fprintf(&b, " %s %s  %s %s\n", mark, formatter.Bold(fmt.Sprintf("%d", int(g))), label,
			formatter.GiftPill(v.state.Gate.Unlocked(g), v.state.Gate.Available(g)))
	}

	b.WriteString("\n")
	b.WriteString(formatter.Dim("Made with ✨ and a little chaos."))
	return b.String()
}
