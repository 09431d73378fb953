package contract

import (
	"time"

	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/talent"
)

type ProfileStatus string

const (
	ProfileOK               ProfileStatus = "ok"
	ProfileInsufficientData ProfileStatus = "insufficient_data"
)

// ProfileResponse wraps the longitudinal profile of one student. Profile is
// nil when the student has no analyzed work; TrendsAvailable is false below
// talent.MinEntriesForTrends analyses.
type ProfileResponse struct {
	StudentID       string          `json:"student_id"`
	Status          ProfileStatus   `json:"status"`
	TrendsAvailable bool            `json:"trends_available"`
	Profile         *talent.Profile `json:"profile"`
}

// WorkSummary is one row of a student's work listing.
type WorkSummary struct {
	ID             string                 `json:"id"`
	Title          string                 `json:"title"`
	WorkType       domain.WorkType        `json:"work_type"`
	WordCount      int                    `json:"word_count"`
	CreatedAt      time.Time              `json:"created_at"`
	Analyzed       bool                   `json:"analyzed"`
	AnalysisID     string                 `json:"analysis_id,omitempty"`
	Mode           domain.AnalysisMode    `json:"analysis_mode,omitempty"`
	Average        float64                `json:"average_score,omitempty"`
	WellbeingLevel *domain.WellbeingLevel `json:"wellbeing_level,omitempty"`
}

// AnalysisView is a stored analysis with its derived domain fits.
type AnalysisView struct {
	AnalysisID       string                `json:"analysis_id"`
	WorkID           string                `json:"work_id"`
	Mode             domain.AnalysisMode   `json:"analysis_mode"`
	Result           domain.AnalysisResult `json:"result"`
	DomainFits       []talent.DomainFit    `json:"domain_fits"`
	LLMModel         string                `json:"llm_model"`
	ProcessingTimeMs int64                 `json:"processing_time_ms"`
	CreatedAt        time.Time             `json:"created_at"`
}
