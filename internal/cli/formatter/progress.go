package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nuclea/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct, width = clampBar(pct, width)
	bar := blocks(pct, width)

	var style = StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", style.Render(bar), pctStr)
}

// RenderScoreBar renders one block per rubric point, e.g. ████░ 4/5.
func RenderScoreBar(score int) string {
	score = domain.ClampScore(score)
	bar := strings.Repeat(filledBlock, score) + strings.Repeat(emptyBlock, domain.MaxScore-score)
	return fmt.Sprintf("%s %d/%d", ScoreColor(score).Render(bar), score, domain.MaxScore)
}

// RenderFitBar renders a 0-100 fit as a bar of the given width with the number.
func RenderFitBar(fit, width int) string {
	pct, width := clampBar(float64(fit)/100, width)
	return fmt.Sprintf("%s %3d", FitColor(fit).Render(blocks(pct, width)), fit)
}

func clampBar(pct float64, width int) (float64, int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}
	return pct, width
}

func blocks(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}
