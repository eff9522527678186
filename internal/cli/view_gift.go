package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/cli/formatter"
	"github.com/alexanderramin/giftbox/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// giftCopy is the fixed text around each gift.
type giftCopy struct {
	short    string // roadmap label
	title    string
	subtitle string
	requires string // shown while the gift is unavailable
}

var giftCopies = map[domain.GiftID]giftCopy{
	domain.Gift1: {short: "Warm-up", title: "Gift 1 — Warm-up", subtitle: "Put these moments in order."},
	domain.Gift2: {short: "Cipher", title: "Gift 2 — Cipher", subtitle: "Decode it. Easy.", requires: "unlock Gift 1 first"},
	domain.Gift3: {short: "Chess", title: "Gift 3 — Chess", subtitle: "White to move. Mate in 3.", requires: "unlock Gift 1 & 2 first"},
	domain.Gift4: {short: "Final", title: "Gift 4 — Final", subtitle: "Choose your vibe.", requires: "unlock Gift 3 first"},
}

// Reveal copy.
const (
	gift1RevealTitle = "Gift #1 — Appreciation"
	gift1RevealBody  = `Your presence has always mattered.

I don't say it enough, but I'm genuinely proud of you.
For how you handle things. For how you keep going. For being you.

And yes… hate you, as always 😼`
	gift2RevealTitle = "Gift #2 🍫"
	gift2RevealBody  = "For the laziest person."
	finalTitle       = "Final Gift 🎁"
	finalBody        = `This will be a good gift , WAIT AND WATCH !!

A very happy birthday to you once again.`
)

var revealStyle = lipgloss.NewStyle().Foreground(formatter.ColorFg)

// newGiftView builds a fresh puzzle session view for g.
func newGiftView(state *SharedState, g domain.GiftID) giftView {
	switch g {
	case domain.Gift1:
		return newOrderingView(state)
	case domain.Gift2:
		return newCipherView(state)
	case domain.Gift3:
		return newChessView(state)
	default:
		return newChoiceView(state)
	}
}

// lockedNotice is shown when an unavailable gift is requested.
func lockedNotice(g domain.GiftID) string {
	return fmt.Sprintf("%s is locked 🔒 (%s)", giftCopies[g].title, giftCopies[g].requires)
}

// giftStatus mirrors the header pill: availability first, then unlock state.
func giftStatus(state *SharedState, g domain.GiftID) string {
	switch {
	case !state.Gate.Available(g):
		return formatter.Dim("Locked 🔒 (" + giftCopies[g].requires + ")")
	case state.Gate.Unlocked(g):
		return formatter.StyleGreen.Render("Unlocked ✅")
	default:
		return formatter.StyleYellow.Render("Locked 🔒")
	}
}

// renderGiftHeader renders title, subtitle and status pill for g.
func renderGiftHeader(state *SharedState, g domain.GiftID) string {
	c := giftCopies[g]
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(c.title))
	b.WriteString("  ")
	b.WriteString(giftStatus(state, g))
	b.WriteString("\n")
	b.WriteString(formatter.Dim(c.subtitle))
	b.WriteString("\n")
	return b.String()
}

// renderReveal renders an unlocked gift's content with an optional call to
// action hint.
func renderReveal(title, body, cta string) string {
	content := revealStyle.Render(body)
	if cta != "" {
		content += "\n\n" + formatter.StyleHeader.Render("[n] "+cta)
	}
	return formatter.RenderAccentBox(title, content)
}

// revealCTA records the call to action and moves to the next gift.
func revealCTA(state *SharedState, title, label string, next domain.GiftID) tea.Cmd {
	state.Rec.Record(domain.EventRevealCTAClick, analytics.Attrs{"title": title, "ctaLabel": label})
	return navigateTo(next)
}

// message renders a puzzle's feedback line.
func message(text string, solved bool) string {
	if text == "" {
		return ""
	}
	return formatter.MessageStyle(solved).Render(text)
}
