package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/giftbox/internal/cli/formatter"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/puzzle"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// choiceView hosts the gift 4 questions, one huh select per question.
// Digits pick an answer directly.
type choiceView struct {
	state  *SharedState
	puzzle *puzzle.Choice
	form   *huh.Form
	answer string
}

func newChoiceView(state *SharedState) *choiceView {
	v := &choiceView{state: state}
	v.reset()
	return v
}

// reset starts a new puzzle session.
func (v *choiceView) reset() {
	v.puzzle = puzzle.NewChoice(puzzle.VibeQuestions, v.state.Gate.Unlocker(domain.Gift4), v.state.Rec)
	v.puzzle.Sync(v.state.Gate.Unlocked(domain.Gift4))
	v.buildForm()
}

// buildForm prepares the form for the current question, or clears it once
// every question is answered.
func (v *choiceView) buildForm() {
	q, ok := v.puzzle.Current()
	if !ok {
		v.form = nil
		return
	}
	v.answer = ""
	v.form = questionForm(q, &v.answer)
}

func (v *choiceView) initForm() tea.Cmd {
	if v.form == nil {
		return nil
	}
	return v.form.Init()
}

func (v *choiceView) ID() ViewID          { return ViewChoice }
func (v *choiceView) Title() string       { return "Gift 4" }
func (v *choiceView) Gift() domain.GiftID { return domain.Gift4 }

func (v *choiceView) ShortHelp() []key.Binding {
	if v.puzzle.Solved() {
		return []key.Binding{
			key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "replay everything")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "select")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter/1-2", "choose")),
	}
}

func (v *choiceView) Init() tea.Cmd {
	return v.initForm()
}

func (v *choiceView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gateChangedMsg:
		unlocked := v.state.Gate.Unlocked(domain.Gift4)
		if v.puzzle.Solved() && !unlocked {
			v.reset()
			return v, v.initForm()
		}
		v.puzzle.Sync(unlocked)
		if v.puzzle.Solved() {
			v.form = nil
		}
		return v, nil

	case tea.KeyMsg:
		if v.puzzle.Solved() {
			if msg.String() == "r" && v.state.Gate.Unlocked(domain.Gift4) {
				v.state.Rec.Record(domain.EventReplayClicked, nil)
				return v, goHome()
			}
			return v, nil
		}
		if len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
			q, _ := v.puzzle.Current()
			if i := int(msg.Runes[0] - '1'); i < len(q.Answers) {
				return v, v.choose(q.Answers[i])
			}
			return v, nil
		}
	}

	if v.form == nil {
		return v, nil
	}
	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		return v, tea.Batch(cmd, v.choose(v.answer))
	}
	return v, cmd
}

// choose answers the current question and moves to the next one.
func (v *choiceView) choose(answer string) tea.Cmd {
	if !v.puzzle.Choose(answer) {
		return nil
	}
	v.buildForm()
	return v.initForm()
}

func (v *choiceView) View() string {
	var b strings.Builder
	b.WriteString(renderGiftHeader(v.state, domain.Gift4))
	b.WriteString("\n")

	if q, ok := v.puzzle.Current(); ok {
		fmt.Fprintf(&b, "%s\n\n", formatter.Dim(fmt.Sprintf("Question %d/%d", v.puzzle.Index()+1, v.puzzle.Len())))
		if v.form != nil {
			b.WriteString(v.form.View())
		}
		b.WriteString("\n")
		var opts []string
		for i, a := range q.Answers {
			opts = append(opts, fmt.Sprintf("%d %s", i+1, a))
		}
		b.WriteString(formatter.Dim(strings.Join(opts, "  ·  ")))
		b.WriteString("\n")
	} else if msg := message(v.puzzle.Message(), v.puzzle.Solved()); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n")
	}

	if v.state.Gate.Unlocked(domain.Gift4) {
		b.WriteString("\n")
		content := revealStyle.Render(finalBody) + "\n\n" + formatter.StyleHeader.Render("[r] Replay everything")
		b.WriteString(formatter.RenderAccentBox(finalTitle, content))
	}
	return b.String()
}
