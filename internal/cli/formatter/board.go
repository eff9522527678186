package formatter

import (
	"strings"

	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	lightSquare = lipgloss.NewStyle().Background(ColorLightSquare).Foreground(ColorPiece)
	darkSquare  = lipgloss.NewStyle().Background(ColorDarkSquare).Foreground(ColorFg)
	cursorCell  = lipgloss.NewStyle().Background(ColorYellow).Foreground(ColorPiece).Bold(true)
	pickedCell  = lipgloss.NewStyle().Background(ColorGreen).Foreground(ColorPiece).Bold(true)
)

// RenderBoard draws the board with rank 8 at the top, file and rank labels,
// the keyboard cursor and the currently selected square highlighted.
func RenderBoard(b domain.Board, cursor, selected domain.Square) string {
	var sb strings.Builder
	for row, rank := range domain.Ranks {
		sb.WriteString(StyleDim.Render(string(rank)) + " ")
		for col := range domain.Files {
			sq := domain.SquareAt(row, col)
			glyph := " "
			if p, ok := b[sq]; ok {
				glyph = p.String()
			}
			sb.WriteString(squareStyle(sq, cursor, selected).Render(" " + glyph + " "))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  ")
	for _, f := range domain.Files {
		sb.WriteString(StyleDim.Render(" " + string(f) + " "))
	}
	return sb.String()
}

func squareStyle(sq, cursor, selected domain.Square) lipgloss.Style {
	switch {
	case sq == cursor:
		return cursorCell
	case sq == selected:
		return pickedCell
	case sq.Dark():
		return darkSquare
	default:
		return lightSquare
	}
}
