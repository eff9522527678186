package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/giftbox/internal/cli/formatter"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/puzzle"
	"github.com/alexanderramin/giftbox/internal/sequencer"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const sequenceCTA = "Go to Gift 4 →"

var sequenceLineStyle = lipgloss.NewStyle().Foreground(formatter.ColorFg).PaddingLeft(2)

// chessView hosts the gift 3 scripted mate and, once gift 3 is unlocked,
// the timed reveal lines. Squares are picked with the arrow keys and enter,
// or by typing a coordinate such as "c4".
type chessView struct {
	state  *SharedState
	puzzle *puzzle.Chess
	row    int
	col    int
	file   rune // first half of a typed coordinate
}

func newChessView(state *SharedState) *chessView {
	v := &chessView{state: state}
	v.reset()
	return v
}

// reset starts a new puzzle session with the cursor on the bishop.
func (v *chessView) reset() {
	if v.puzzle != nil {
		v.puzzle.Close()
	}
	opts := v.state.Opts
	v.puzzle = puzzle.NewChess(v.state.Sched, v.state.Gate.Unlocker(domain.Gift3), v.state.Rec,
		puzzle.WithDelays(opts.ReplyDelay, opts.SolveDelay))
	v.puzzle.Sync(v.state.Gate.Unlocked(domain.Gift3))
	v.row, v.col = 4, 2 // c4
	v.file = 0
}

func (v *chessView) ID() ViewID          { return ViewChess }
func (v *chessView) Title() string       { return "Gift 3" }
func (v *chessView) Gift() domain.GiftID { return domain.Gift3 }

func (v *chessView) ShortHelp() []key.Binding {
	if v.state.Gate.Unlocked(domain.Gift3) {
		return []key.Binding{
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "gift 4")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "move")),
		key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "tap square")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a1-h8", "tap by name")),
		key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "hint")),
	}
}

func (v *chessView) Init() tea.Cmd { return nil }

// Close cancels a pending reply or solve.
func (v *chessView) Close() {
	v.puzzle.Close()
}

func (v *chessView) cursor() domain.Square {
	return domain.SquareAt(v.row, v.col)
}

func (v *chessView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gateChangedMsg:
		unlocked := v.state.Gate.Unlocked(domain.Gift3)
		if v.puzzle.Solved() && !unlocked {
			v.reset()
		} else {
			v.puzzle.Sync(unlocked)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *chessView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()

	if s == "n" && v.state.Gate.Unlocked(domain.Gift3) {
		v.state.Sequence.Skip()
		return v, nil
	}

	// Typed coordinate: a file letter followed by a rank digit.
	if len(msg.Runes) == 1 {
		r := msg.Runes[0]
		switch {
		case r >= 'a' && r <= 'h':
			v.file = r
			return v, nil
		case v.file != 0 && r >= '1' && r <= '8':
			sq, err := domain.ParseSquare(string([]rune{v.file, r}))
			v.file = 0
			if err == nil {
				v.row, v.col = int('8'-r), int(sq[0]-'a')
				v.puzzle.Tap(sq)
			}
			return v, nil
		}
	}
	v.file = 0

	switch s {
	case "up":
		v.row = max(v.row-1, 0)
	case "down":
		v.row = min(v.row+1, len(domain.Ranks)-1)
	case "left":
		v.col = max(v.col-1, 0)
	case "right":
		v.col = min(v.col+1, len(domain.Files)-1)
	case "enter", " ":
		v.puzzle.Tap(v.cursor())
	case "?":
		v.puzzle.Hint()
	}
	return v, nil
}

func (v *chessView) View() string {
	var b strings.Builder
	b.WriteString(renderGiftHeader(v.state, domain.Gift3))
	b.WriteString("\n")

	cursor := v.cursor()
	if v.puzzle.Solved() {
		cursor = ""
	}
	board := formatter.RenderBoard(v.puzzle.Board(), cursor, v.puzzle.Selected())

	var side strings.Builder
	fmt.Fprintf(&side, "%s %d/%d\n", formatter.Dim("Move"), min(v.puzzle.Stage(), v.puzzle.Stages()), v.puzzle.Stages())
	if v.file != 0 {
		fmt.Fprintf(&side, "%s %c_\n", formatter.Dim("Square:"), v.file)
	}
	if v.puzzle.Pending() {
		side.WriteString(formatter.Dim("…") + "\n")
	}
	side.WriteString("\n")
	side.WriteString(message(v.puzzle.Message(), v.puzzle.Solved()))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "    ", side.String()))
	b.WriteString("\n")

	if v.state.Gate.Unlocked(domain.Gift3) {
		b.WriteString("\n")
		b.WriteString(renderSequence(v.state.Sequence))
	}
	return b.String()
}

// renderSequence draws the reveal lines shown after gift 3.
func renderSequence(seq *sequencer.Sequencer) string {
	var lines []string
	for _, l := range seq.Visible() {
		lines = append(lines, sequenceLineStyle.Render(l))
	}
	if len(lines) == 0 {
		lines = append(lines, formatter.Dim("  …"))
	}
	content := strings.Join(lines, "\n") + "\n\n" + formatter.StyleHeader.Render("[n] "+sequenceCTA)
	return formatter.RenderAccentBox(sequencer.Title, content)
}
