package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/talent"
)

const fitBarWidth = 20

// FormatReport renders a finished analysis as a terminal report: rubric bars,
// profile, talents, domain fits and, when assessed, the wellbeing note.
func FormatReport(resp *contract.AnalyzeResponse) string {
	if resp == nil || resp.Result == nil {
		return ""
	}
	r := resp.Result
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s  %s\n", Bold(resp.Work.Title), WorkTypeBadge(resp.Work.WorkType), ModeBadge(resp.Mode)))
	b.WriteString(Dim(fmt.Sprintf("%s · %d words · %s · %s",
		resp.Work.StudentID, resp.Work.WordCount, resp.Model, FormatElapsed(resp.Elapsed))) + "\n\n")

	b.WriteString(formatRubric(r.Rubric))

	b.WriteString("\n" + Header("Strengths") + "\n")
	b.WriteString(bulletList(r.Strengths))
	b.WriteString("\n" + Header("Growth Areas") + "\n")
	b.WriteString(bulletList(r.GrowthAreas))
	if r.CognitivePattern != "" {
		b.WriteString("\n" + Header("Thinking Pattern") + "\n")
		b.WriteString("  " + StyleFg.Render(r.CognitivePattern) + "\n")
	}
	b.WriteString("\n" + Header("Development Plan") + "\n")
	b.WriteString(numberedList(r.DevelopmentPlan))

	b.WriteString("\n" + Header("Talent Indicators") + "\n")
	b.WriteString(bulletList(r.TalentIndicators))
	if len(r.MatchingDomains) > 0 {
		b.WriteString("  " + Dim("Matching: "+strings.Join(r.MatchingDomains, ", ")) + "\n")
	}
	for _, f := range r.TalentDevelopmentFocus {
		b.WriteString("\n  " + StylePurple.Render(f.Talent) + "\n")
		if f.Rationale != "" {
			b.WriteString("  " + Dim(f.Rationale) + "\n")
		}
		for _, step := range f.NextSteps {
			b.WriteString("    " + StyleDim.Render("→") + " " + step + "\n")
		}
	}
	if len(r.LearningRecommendations) > 0 {
		b.WriteString("\n" + Header("Recommendations") + "\n")
		b.WriteString(bulletList(r.LearningRecommendations))
	}

	b.WriteString("\n" + Header("Domain Fit") + "\n")
	b.WriteString(FormatDomainFits(resp.DomainFits))

	if r.Wellbeing != nil {
		b.WriteString("\n" + formatWellbeing(*r.Wellbeing))
	}

	title := "Analysis"
	if resp.AnalysisID != "" {
		title = "Analysis " + resp.AnalysisID[:min(8, len(resp.AnalysisID))]
	}
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

func formatRubric(r domain.RubricResult) string {
	var b strings.Builder
	b.WriteString(Header("Rubric") + "\n")
	for _, d := range domain.Dimensions {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", d.Label(), RenderScoreBar(r.Scores.Get(d))))
		if j := r.Justifications[d]; j != "" {
			b.WriteString("  " + strings.Repeat(" ", 13) + Dim(j) + "\n")
		}
	}
	b.WriteString(fmt.Sprintf("  %-12s %s\n", "Average", Bold(fmt.Sprintf("%.1f", r.Scores.Average()))))
	return b.String()
}

// FormatDomainFits renders the career-domain table sorted as given.
func FormatDomainFits(fits []talent.DomainFit) string {
	rows := make([][]string, 0, len(fits))
	for _, f := range fits {
		rows = append(rows, []string{f.Icon + " " + f.Name, RenderFitBar(f.Fit, fitBarWidth)})
	}
	return RenderTable([]string{"DOMAIN", "FIT"}, rows)
}

func formatWellbeing(w domain.WellbeingResult) string {
	var b strings.Builder
	b.WriteString(Header("Wellbeing") + "\n")
	b.WriteString("  " + WellbeingIndicator(w.Level) + "\n")
	if w.Note != "" {
		b.WriteString("  " + StyleFg.Render(w.Note) + "\n")
	}
	if w.NextStep != "" {
		b.WriteString("  " + Dim("Next step: "+w.NextStep) + "\n")
	}
	return b.String()
}

func numberedList(items []string) string {
	if len(items) == 0 {
		return "  " + Dim("--") + "\n"
	}
	var b strings.Builder
	for i, it := range items {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleDim.Render(fmt.Sprintf("%d.", i+1)), it))
	}
	return b.String()
}
