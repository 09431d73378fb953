package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/talent"
)

// FormatProfile renders a student's longitudinal profile.
func FormatProfile(resp *contract.ProfileResponse) string {
	if resp == nil {
		return ""
	}
	title := "Profile " + resp.StudentID
	if resp.Status == contract.ProfileInsufficientData || resp.Profile == nil {
		return RenderBox(title, Dim("No analyzed works yet. Run `nuclea analyze` first."))
	}
	p := resp.Profile
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s analyses\n", Bold(fmt.Sprintf("%d", p.TotalAnalyses))))

	b.WriteString("\n" + Header("Trajectories") + "\n")
	if !resp.TrendsAvailable {
		b.WriteString("  " + Dim(fmt.Sprintf("Trends need at least %d analyses.", talent.MinEntriesForTrends)) + "\n")
	} else {
		rows := make([][]string, 0, len(p.Trajectories))
		for _, t := range p.Trajectories {
			rows = append(rows, []string{
				t.Label,
				fmt.Sprintf("%d → %d", t.FirstScore, t.LastScore),
				fmt.Sprintf("%.1f", t.AverageScore),
				TrendIndicator(t.Trend),
				fmt.Sprintf("%+d%%", t.ChangePercent),
			})
		}
		b.WriteString(RenderTable([]string{"DIMENSION", "FIRST→LAST", "AVG", "TREND", "CHANGE"}, rows))
	}

	b.WriteString("\n" + Header("Talent Signals") + "\n")
	if len(p.TalentSignals) == 0 {
		b.WriteString("  " + Dim("--") + "\n")
	}
	for _, s := range p.TalentSignals {
		b.WriteString(fmt.Sprintf("  %s %s\n", StylePurple.Render(s.Indicator),
			Dim(fmt.Sprintf("%d/%d · %d%%", s.Frequency, s.TotalAnalyses, s.Confidence))))
	}

	b.WriteString("\n" + Header("Consistent Strengths") + "\n")
	b.WriteString(bulletList(p.ConsistentStrengths))

	b.WriteString("\n" + Header("Top Domains") + "\n")
	rows := make([][]string, 0, len(p.TopDomains))
	for _, d := range p.TopDomains {
		rows = append(rows, []string{d.Icon + " " + d.Name, RenderFitBar(d.AvgFit, fitBarWidth)})
	}
	b.WriteString(RenderTable([]string{"DOMAIN", "AVG FIT"}, rows))

	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

// FormatWorks renders a student's works in the order given, which is
// oldest first when they come from the works store.
func FormatWorks(studentID string, works []contract.WorkSummary) string {
	if len(works) == 0 {
		return RenderBox("Works "+studentID, Dim("No works recorded."))
	}
	rows := make([][]string, 0, len(works))
	for _, w := range works {
		avg := Dim("--")
		level := Dim("--")
		if w.Analyzed {
			avg = fmt.Sprintf("%.1f", w.Average)
			if w.WellbeingLevel != nil {
				level = WellbeingIndicator(*w.WellbeingLevel)
			}
		}
		rows = append(rows, []string{
			TruncID(w.ID),
			Bold(w.Title),
			WorkTypeBadge(w.WorkType),
			fmt.Sprintf("%d", w.WordCount),
			HumanDate(w.CreatedAt),
			avg,
			level,
		})
	}
	return RenderBox("Works "+studentID,
		strings.TrimRight(RenderTable([]string{"ID", "TITLE", "TYPE", "WORDS", "DATE", "AVG", "WELLBEING"}, rows), "\n"))
}
