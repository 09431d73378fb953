package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/talent"
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
)

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

// ScoreColor returns the style for a 0-5 rubric score.
func ScoreColor(score int) lipgloss.Style {
	switch {
	case score >= 4:
		return StyleGreen
	case score >= 3:
		return StyleYellow
	default:
		return StyleRed
	}
}

// FitColor returns the style for a 0-100 domain fit.
func FitColor(fit int) lipgloss.Style {
	switch {
	case fit >= 70:
		return StyleGreen
	case fit >= 40:
		return StyleYellow
	default:
		return StyleDim
	}
}

// WellbeingIndicator returns a colored level marker such as "● MILD".
func WellbeingIndicator(level domain.WellbeingLevel) string {
	switch level {
	case domain.WellbeingFlag:
		return StyleRed.Render("● FLAG")
	case domain.WellbeingMild:
		return StyleYellow.Render("● MILD")
	case domain.WellbeingNone:
		return StyleGreen.Render("● NONE")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// TrendIndicator renders a trend with its arrow.
func TrendIndicator(t talent.Trend) string {
	switch t {
	case talent.TrendImproving:
		return StyleGreen.Render("▲ improving")
	case talent.TrendDeclining:
		return StyleRed.Render("▼ declining")
	default:
		return StyleDim.Render("● stable")
	}
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
