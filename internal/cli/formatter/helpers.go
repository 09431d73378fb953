package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// HumanDate returns "Today", "Yesterday" or an absolute date relative to now.
func HumanDate(t time.Time) string {
	return HumanDateFrom(t, time.Now())
}

// HumanDateFrom is HumanDate against a fixed reference time.
func HumanDateFrom(t, now time.Time) string {
	t = t.In(now.Location())
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// ModeBadge returns a styled education tier label.
func ModeBadge(mode domain.AnalysisMode) string {
	switch mode {
	case domain.ModeElementary:
		return StyleBlue.Render("● " + mode.Label())
	case domain.ModeUniversity:
		return StylePurple.Render("● " + mode.Label())
	default:
		return StyleGreen.Render("● " + mode.Label())
	}
}

// WorkTypeBadge returns a capitalized, purple-styled work type label.
func WorkTypeBadge(t domain.WorkType) string {
	s := string(t)
	if s == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(strings.ToUpper(s[:1]) + s[1:])
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatElapsed renders a processing time as "850ms" or "12.4s".
func FormatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// bulletList renders items as dimmed-bullet lines; empty input renders a dash.
func bulletList(items []string) string {
	if len(items) == 0 {
		return "  " + Dim("--") + "\n"
	}
	var b strings.Builder
	for _, it := range items {
		b.WriteString("  " + StyleDim.Render("•") + " " + StyleFg.Render(it) + "\n")
	}
	return b.String()
}
