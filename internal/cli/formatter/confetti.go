package formatter

import (
	"strings"

	"github.com/alexanderramin/giftbox/internal/celebrate"
	"github.com/charmbracelet/lipgloss"
)

type confettiCell struct {
	r    rune
	hue  int // -1 for badge text
	skip bool
}

// RenderConfetti draws a burst into a width×height field with its badge
// boxed in the middle. A fading burst is drawn dim.
func RenderConfetti(b celebrate.Burst, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	grid := make([][]confettiCell, height)
	for y := range grid {
		grid[y] = make([]confettiCell, width)
		for x := range grid[y] {
			grid[y][x] = confettiCell{r: ' '}
		}
	}

	for _, p := range b.Particles {
		x := min(int(p.X*float64(width)), width-1)
		y := min(int(p.Y*float64(height)), height-1)
		grid[y][x] = confettiCell{r: p.Glyph, hue: p.Hue}
	}

	label := "  " + b.Badge + "  "
	inner := lipgloss.Width(label)
	box := []string{
		"╭" + strings.Repeat("─", inner) + "╮",
		"│" + label + "│",
		"╰" + strings.Repeat("─", inner) + "╯",
	}
	top := max(0, height/2-1)
	for i, line := range box {
		if top+i >= height {
			break
		}
		left := max(0, (width-lipgloss.Width(line))/2)
		stamp(grid[top+i], left, line)
	}

	var sb strings.Builder
	for y, row := range grid {
		for _, c := range row {
			if c.skip {
				continue
			}
			sb.WriteString(confettiStyle(c, b.Fading).Render(string(c.r)))
		}
		if y < height-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// stamp writes text into row starting at col, reserving a trailing cell for
// each double-width rune.
func stamp(row []confettiCell, col int, text string) {
	for _, r := range text {
		if col >= len(row) {
			return
		}
		row[col] = confettiCell{r: r, hue: -1}
		col++
		if lipgloss.Width(string(r)) == 2 && col < len(row) {
			row[col] = confettiCell{skip: true}
			col++
		}
	}
}

func confettiStyle(c confettiCell, fading bool) lipgloss.Style {
	switch {
	case c.r == ' ':
		return lipgloss.NewStyle()
	case fading:
		return StyleDim
	case c.hue < 0:
		return StyleHeader
	default:
		return lipgloss.NewStyle().Foreground(ConfettiColors[c.hue%len(ConfettiColors)])
	}
}
