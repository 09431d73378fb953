package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/talent"
	"github.com/alexanderramin/nuclea/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func sampleResponse(wellbeing *domain.WellbeingResult) *contract.AnalyzeResponse {
	scores := domain.RubricScores{Structure: 4, Clarity: 3, Evidence: 5, Originality: 2, Coherence: 4}
	result := testutil.NewTestResult(scores)
	result.Strengths = []string{"Evidence Use + cites primary sources"}
	result.DevelopmentPlan = []string{"Outline before drafting", "Add counterarguments"}
	result.TalentIndicators = []string{"Research synthesis"}
	result.Wellbeing = wellbeing
	return &contract.AnalyzeResponse{
		AnalysisID: "0123456789abcdef",
		Result:     &result,
		Work: domain.Work{
			StudentID: "stu-1",
			Title:     "The Fall of Rome",
			WorkType:  domain.WorkEssay,
			WordCount: 412,
		},
		Mode:       domain.ModeHighSchool,
		DomainFits: talent.DomainFits(scores),
		Model:      "stub",
		Elapsed:    1500 * time.Millisecond,
	}
}

func TestFormatReport_Sections(t *testing.T) {
	out := stripANSI(FormatReport(sampleResponse(nil)))

	assert.Contains(t, out, "ANALYSIS 01234567")
	assert.Contains(t, out, "The Fall of Rome")
	assert.Contains(t, out, "stu-1 · 412 words · stub · 1.5s")
	assert.Contains(t, out, "Evidence     █████ 5/5")
	assert.Contains(t, out, "Originality  ██░░░ 2/5")
	assert.Contains(t, out, "Average      3.6")
	assert.Contains(t, out, "Evidence Use + cites primary sources")
	assert.Contains(t, out, "1. Outline before drafting")
	assert.Contains(t, out, "Research synthesis")
	assert.Contains(t, out, "DOMAIN FIT")
	for _, d := range talent.CareerDomains {
		assert.Contains(t, out, d.Name)
	}
	assert.NotContains(t, out, "WELLBEING")
}

func TestFormatReport_WellbeingNote(t *testing.T) {
	out := stripANSI(FormatReport(sampleResponse(&domain.WellbeingResult{
		Level:    domain.WellbeingMild,
		Note:     "Some stress signals.",
		NextStep: "Check in informally.",
	})))

	assert.Contains(t, out, "WELLBEING")
	assert.Contains(t, out, "● MILD")
	assert.Contains(t, out, "Next step: Check in informally.")
}

func TestFormatReport_Empty(t *testing.T) {
	assert.Empty(t, FormatReport(nil))
	assert.Empty(t, FormatReport(&contract.AnalyzeResponse{}))
}
