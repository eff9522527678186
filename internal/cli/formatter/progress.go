package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders unlock progress like [██████░░░░░░] 2/4 unlocked.
// The bar is red with nothing unlocked, yellow part way and green when full.
func RenderProgress(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	done = min(max(done, 0), total)
	width = max(width, 2)

	filled := done * width / total
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	switch done {
	case 0:
		style = StyleRed
	case total:
		style = StyleGreen
	}
	return fmt.Sprintf("[%s] %d/%d unlocked", style.Render(bar), done, total)
}
