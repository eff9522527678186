package cli

import (
	"github.com/alexanderramin/giftbox/internal/cli/formatter"
	"github.com/alexanderramin/giftbox/internal/intro"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// introCamera stands in for the photo on the image beat.
const introCamera = `    __      _
  o'')}____//     ┌──────┐
   ` + "`" + `_/      )    │ (◉)  │
   (_(_/-(_/     └──────┘
  say cheese ♡`

var introTextStyle = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true).Padding(1, 4).
	Border(lipgloss.RoundedBorder()).BorderForeground(formatter.ColorPurple)

// introView plays the opening beats, then hands over to the home view.
type introView struct {
	state *SharedState
	intro *intro.Intro
}

func newIntroView(state *SharedState) *introView {
	v := &introView{state: state}
	v.intro = intro.New(state.Sched, state.Rec, func() {
		state.Post(replaceView(newHomeView(state)))
	})
	return v
}

func (v *introView) ID() ViewID    { return ViewIntro }
func (v *introView) Title() string { return "" }

func (v *introView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("any"), key.WithHelp("any key", "continue")),
	}
}

func (v *introView) Init() tea.Cmd {
	v.intro.Start()
	return nil
}

func (v *introView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		v.intro.Tap()
	}
	return v, nil
}

// Close stops the auto-advance timer.
func (v *introView) Close() {
	v.intro.Close()
}

func (v *introView) View() string {
	text, image := v.intro.Beat()
	body := introTextStyle.Render(text) + "\n\n" + formatter.Dim("tap anywhere")
	if image {
		body = formatter.StyleFg.Render(introCamera) + "\n\n" + formatter.Dim("tap to continue")
	}
	return formatter.Center(v.state.Width, v.state.ContentHeight(), lipgloss.JoinVertical(lipgloss.Center, body))
}
