package domain

import (
	"strings"
	"time"
)

// Work is one submitted piece of student text.
type Work struct {
	ID        string
	StudentID string
	Title     string
	WorkType  WorkType
	Text      string
	WordCount int
	CreatedAt time.Time
}

// CountWords counts whitespace-separated tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// DisplayID truncates ID to 8 characters.
func (w *Work) DisplayID() string {
	if len(w.ID) >= 8 {
		return w.ID[:8]
	}
	return w.ID
}

// Analysis is the stored outcome of analysing one Work. Scores are
// flattened alongside the full result for querying.
type Analysis struct {
	ID               string
	WorkID           string
	Mode             AnalysisMode
	Scores           RubricScores
	Result           AnalysisResult
	WellbeingEnabled bool
	WellbeingLevel   *WellbeingLevel
	LLMModel         string
	ProcessingTimeMs int64
	CreatedAt        time.Time
}

// AnalyzedWork pairs a Work with its Analysis for longitudinal views.
type AnalyzedWork struct {
	Work     Work
	Analysis Analysis
}
