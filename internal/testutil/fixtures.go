package testutil

import (
	"time"

	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/google/uuid"
)

const sampleText = "The Roman Empire declined because political instability weakened every institution it relied on."

// Work options
type WorkOption func(*domain.Work)

func WithWorkTitle(title string) WorkOption {
	return func(w *domain.Work) {
		w.Title = title
	}
}

func WithWorkType(t domain.WorkType) WorkOption {
	return func(w *domain.Work) {
		w.WorkType = t
	}
}

func WithWorkText(text string) WorkOption {
	return func(w *domain.Work) {
		w.Text = text
		w.WordCount = domain.CountWords(text)
	}
}

func WithWorkCreatedAt(t time.Time) WorkOption {
	return func(w *domain.Work) {
		w.CreatedAt = t.UTC()
	}
}

func NewTestWork(studentID string, opts ...WorkOption) *domain.Work {
	w := &domain.Work{
		ID:        uuid.New().String(),
		StudentID: studentID,
		Title:     "Essay",
		WorkType:  domain.WorkEssay,
		Text:      sampleText,
		WordCount: domain.CountWords(sampleText),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Analysis options
type AnalysisOption func(*domain.Analysis)

func WithScores(s domain.RubricScores) AnalysisOption {
	return func(a *domain.Analysis) {
		a.Scores = s
		a.Result.Rubric.Scores = s
	}
}

func WithMode(m domain.AnalysisMode) AnalysisOption {
	return func(a *domain.Analysis) {
		a.Mode = m
	}
}

func WithStrengths(strengths ...string) AnalysisOption {
	return func(a *domain.Analysis) {
		a.Result.Strengths = strengths
	}
}

func WithTalentIndicators(indicators ...string) AnalysisOption {
	return func(a *domain.Analysis) {
		a.Result.TalentIndicators = indicators
	}
}

func WithWellbeing(level domain.WellbeingLevel) AnalysisOption {
	return func(a *domain.Analysis) {
		wb := domain.DefaultWellbeing()
		wb.Level = level
		a.Result.Wellbeing = &wb
		a.WellbeingEnabled = true
		a.WellbeingLevel = &level
	}
}

func WithAnalysisCreatedAt(t time.Time) AnalysisOption {
	return func(a *domain.Analysis) {
		a.CreatedAt = t.UTC()
	}
}

// NewTestResult returns a complete result envelope with the given scores.
func NewTestResult(scores domain.RubricScores) domain.AnalysisResult {
	return domain.AnalysisResult{
		Rubric: domain.RubricResult{
			Scores:         scores,
			Justifications: map[domain.Dimension]string{domain.DimStructure: "Clear sections. Example: 'first, second'"},
		},
		Strengths:               []string{"Causal Linking + 'because political instability'"},
		GrowthAreas:             []string{"Low evidence density + 'every institution'"},
		CognitivePattern:        "Analytical reasoning.",
		DevelopmentPlan:         []string{"Day 1: a", "Day 2: b", "Day 3: c"},
		TalentIndicators:        []string{"Systems thinking"},
		MatchingDomains:         []string{"History"},
		LearningRecommendations: []string{},
		TalentDevelopmentFocus:  []domain.TalentFocus{},
	}
}

func NewTestAnalysis(workID string, opts ...AnalysisOption) *domain.Analysis {
	scores := domain.DefaultScores()
	a := &domain.Analysis{
		ID:               uuid.New().String(),
		WorkID:           workID,
		Mode:             domain.ModeHighSchool,
		Scores:           scores,
		Result:           NewTestResult(scores),
		LLMModel:         "stub",
		ProcessingTimeMs: 42,
		CreatedAt:        time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
