package cli

import (
	"strings"

	"github.com/alexanderramin/giftbox/internal/cli/formatter"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/puzzle"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const gift2CTA = "Go to Gift 3 →"

var cipherStyle = lipgloss.NewStyle().Foreground(formatter.ColorPurple).Bold(true).
	Padding(0, 2).Border(lipgloss.DoubleBorder()).BorderForeground(formatter.ColorDim)

// chocolateBar stands in for the photo on the gift 2 reveal.
const chocolateBar = `┌────────────────────┐
│  ★ 5 STAR  ★  ★ ★  │
└────────────────────┘`

// cipherView hosts the gift 2 cipher. While the input is focused it takes
// every key; esc releases focus so the other shortcuts work.
type cipherView struct {
	state  *SharedState
	puzzle *puzzle.Cipher
	input  textinput.Model
}

func newCipherView(state *SharedState) *cipherView {
	v := &cipherView{state: state}
	v.reset()
	return v
}

// reset starts a new puzzle session.
func (v *cipherView) reset() {
	v.puzzle = puzzle.NewCipher(puzzle.CipherTarget, puzzle.CipherAnswer, v.state.Gate.Unlocker(domain.Gift2), v.state.Rec)
	v.input = textinput.New()
	v.input.Placeholder = "Type the decoded message…"
	v.input.CharLimit = 64
	v.input.Prompt = "› "
	v.input.PromptStyle = formatter.StyleHeader
	v.input.TextStyle = formatter.StyleFg
	v.input.PlaceholderStyle = formatter.StyleDim
	v.sync()
}

func (v *cipherView) ID() ViewID          { return ViewCipher }
func (v *cipherView) Title() string       { return "Gift 2" }
func (v *cipherView) Gift() domain.GiftID { return domain.Gift2 }

// CapturesInput reports whether typing goes to the answer field.
func (v *cipherView) CapturesInput() bool { return v.input.Focused() }

func (v *cipherView) ShortHelp() []key.Binding {
	switch {
	case v.input.Focused():
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop typing")),
		}
	case v.puzzle.Solved():
		return []key.Binding{
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "gift 3")),
		}
	default:
		return []key.Binding{
			key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "type answer")),
			key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hint")),
		}
	}
}

func (v *cipherView) Init() tea.Cmd {
	if v.puzzle.Solved() {
		return nil
	}
	return v.input.Focus()
}

func (v *cipherView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gateChangedMsg:
		if v.puzzle.Solved() && !v.state.Gate.Unlocked(domain.Gift2) {
			v.reset()
			return v, v.input.Focus()
		}
		v.sync()
		return v, nil

	case tea.KeyMsg:
		if v.input.Focused() {
			return v.updateInput(msg)
		}
		switch msg.String() {
		case "i", "/":
			if !v.puzzle.Solved() {
				return v, v.input.Focus()
			}
		case "h":
			v.puzzle.RevealHint()
		case "n":
			if v.state.Gate.Unlocked(domain.Gift2) {
				return v, revealCTA(v.state, gift2RevealTitle, gift2CTA, domain.Gift3)
			}
		}
		return v, nil
	}

	if v.input.Focused() {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *cipherView) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.input.Blur()
		return v, nil
	case tea.KeyEnter:
		v.puzzle.SetInput(v.input.Value())
		if v.puzzle.Submit() {
			v.input.SetValue(v.puzzle.Input())
			v.input.Blur()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.puzzle.SetInput(v.input.Value())
	return v, cmd
}

// sync freezes the session when gift 2 was unlocked elsewhere.
func (v *cipherView) sync() {
	v.puzzle.Sync(v.state.Gate.Unlocked(domain.Gift2))
	if v.puzzle.Solved() {
		v.input.SetValue(v.puzzle.Input())
		v.input.Blur()
	}
}

func (v *cipherView) View() string {
	var b strings.Builder
	b.WriteString(renderGiftHeader(v.state, domain.Gift2))
	b.WriteString("\n")

	b.WriteString(cipherStyle.Render(puzzle.CipherText))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")
	if msg := message(v.puzzle.Message(), v.puzzle.Solved()); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n")
	}
	if v.puzzle.HintVisible() {
		b.WriteString(formatter.StyleBlue.Render("Hint: " + puzzle.CipherHint))
		b.WriteString("\n")
	}

	if v.state.Gate.Unlocked(domain.Gift2) {
		b.WriteString("\n")
		b.WriteString(renderReveal(gift2RevealTitle, formatter.StyleYellow.Render(chocolateBar)+"\n\n"+gift2RevealBody, gift2CTA))
	}
	return b.String()
}
