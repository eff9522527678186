package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")

	// Board squares.
	ColorLightSquare = lipgloss.Color("#d5c4a1")
	ColorDarkSquare  = lipgloss.Color("#665c54")
	ColorPiece       = lipgloss.Color("#1d2021")
)

// ConfettiColors are cycled by particle hue.
var ConfettiColors = []lipgloss.Color{ColorYellow, ColorPurple, ColorGreen, ColorBlue, ColorHeader, ColorRed}

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// GiftPill returns the roadmap indicator for a gift.
func GiftPill(unlocked, available bool) string {
	switch {
	case unlocked:
		return StyleGreen.Render("✔ Unlocked")
	case available:
		return StyleYellow.Render("● Ready")
	default:
		return StyleDim.Render("🔒 Locked")
	}
}

// IntensityBadge labels a celebration tier.
func IntensityBadge(i domain.Intensity) string {
	if i == domain.IntensityElevated {
		return StylePurple.Render("✺ " + strings.ToUpper(string(i)))
	}
	return StyleYellow.Render("✦ " + strings.ToUpper(string(i)))
}

// MessageStyle colors a puzzle message by whether the puzzle is solved.
func MessageStyle(solved bool) lipgloss.Style {
	if solved {
		return StyleGreen
	}
	return StyleYellow
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
