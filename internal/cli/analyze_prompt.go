package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/nuclea/internal/cli/formatter"
	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// nucleaHuhTheme returns a huh theme using the formatter palette.
func nucleaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// analyzePrompt collects whatever the analyze flags left open.
type analyzePrompt struct {
	Text      string
	StudentID string
	Title     string
	Mode      domain.AnalysisMode
	Wellbeing bool

	AskMode    bool
	AskConsent bool
}

// fields builds the form fields for the values still missing.
func (p *analyzePrompt) fields() []huh.Field {
	var fields []huh.Field
	if strings.TrimSpace(p.Text) == "" {
		fields = append(fields, huh.NewText().
			Title("Student Work").
			Description("Paste the text to analyze.").
			Lines(8).
			Value(&p.Text).
			Validate(requiredField("text")))
	}
	if strings.TrimSpace(p.StudentID) == "" {
		fields = append(fields, huh.NewInput().
			Title("Student ID").
			Value(&p.StudentID).
			Validate(requiredField("student ID")))
	}
	if strings.TrimSpace(p.Title) == "" {
		fields = append(fields, huh.NewInput().
			Title("Work Title").
			Value(&p.Title).
			Validate(requiredField("title")))
	}
	if p.AskMode {
		options := make([]huh.Option[domain.AnalysisMode], 0, len(domain.AnalysisModes))
		for _, m := range domain.AnalysisModes {
			options = append(options, huh.NewOption(m.Label(), m))
		}
		fields = append(fields, huh.NewSelect[domain.AnalysisMode]().
			Title("Education Level").
			Options(options...).
			Value(&p.Mode))
	}
	if p.AskConsent {
		fields = append(fields, huh.NewConfirm().
			Title("Run wellbeing screen?").
			Description("Only with the student's consent.").
			Affirmative("Yes").
			Negative("No").
			Value(&p.Wellbeing))
	}
	return fields
}

func (p *analyzePrompt) run() error {
	fields := p.fields()
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(nucleaHuhTheme()).
		WithShowHelp(false).
		Run()
}

func requiredField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}
