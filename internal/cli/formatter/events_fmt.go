package formatter

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/service"
)

const attrsWidth = 60

// FormatEvents renders journal events newest first.
func FormatEvents(events []*domain.AnalyticsEvent, now time.Time) string {
	if len(events) == 0 {
		return Dim("No events recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			HumanTimestamp(e.RecordedAt, now),
			TruncID(e.SessionID),
			eventName(e.Name),
			Truncate(FormatAttrs(e.Attrs), attrsWidth),
		})
	}
	return RenderTable([]string{"WHEN", "SESSION", "EVENT", "ATTRS"}, rows)
}

// FormatAttrs renders attributes as sorted key=value pairs.
func FormatAttrs(attrs map[string]any) string {
	if len(attrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(attrs))
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, attrs[k]))
	}
	return strings.Join(parts, " ")
}

// FormatJournalStats renders per-event counts and the replayed unlock state.
func FormatJournalStats(stats *service.JournalStats, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Journal"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d   %s %d\n\n", Dim("events:"), stats.Total, Dim("sessions:"), stats.Sessions)

	var unlocked int
	var pills []string
	for _, g := range domain.AllGifts {
		on := stats.Unlocked[g-1]
		if on {
			unlocked++
		}
		pills = append(pills, fmt.Sprintf("%s %s", Bold(g.String()), GiftPill(on, false)))
	}
	b.WriteString(RenderProgress(unlocked, domain.GiftCount, 16))
	b.WriteString("\n")
	b.WriteString(strings.Join(pills, "  "))
	b.WriteString("\n\n")

	if len(stats.ByName) == 0 {
		b.WriteString(Dim("No events recorded yet."))
		b.WriteString("\n")
		return b.String()
	}
	rows := make([][]string, 0, len(stats.ByName))
	for _, c := range stats.ByName {
		rows = append(rows, []string{eventName(c.Name), fmt.Sprintf("%d", c.Count), HumanTimestamp(c.Last, now)})
	}
	b.WriteString(RenderTable([]string{"EVENT", "COUNT", "LAST"}, rows))
	return b.String()
}

// eventName colors gating events so they stand out in listings.
func eventName(name string) string {
	switch name {
	case domain.EventGiftUnlocked, domain.EventPuzzleSolved:
		return StyleGreen.Render(name)
	case domain.EventDevSetGiftUnlock:
		return StyleRed.Render(name)
	case domain.EventCelebrationShown, domain.EventCelebrationHidden:
		return StylePurple.Render(name)
	default:
		return StyleFg.Render(name)
	}
}
