package contract

import (
	"time"

	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/talent"
)

// AnalyzeRequest is the caller-facing input of one analysis run.
type AnalyzeRequest struct {
	Text             string `json:"text"`
	Mode             string `json:"analysis_mode"`
	StudentID        string `json:"student_id"`
	WorkTitle        string `json:"work_title"`
	WorkType         string `json:"work_type"`
	WellbeingEnabled bool   `json:"wellbeing_enabled"`
}

func NewAnalyzeRequest(text, studentID, workTitle string) AnalyzeRequest {
	return AnalyzeRequest{
		Text:      text,
		Mode:      string(domain.DefaultMode),
		StudentID: studentID,
		WorkTitle: workTitle,
		WorkType:  string(domain.WorkEssay),
	}
}

// AnalyzeResponse is the outcome of a successful run, before persistence.
// AnalysisID and Work.ID are assigned up front so the stream can announce
// the identifier before the row is written.
type AnalyzeResponse struct {
	AnalysisID       string
	Result           *domain.AnalysisResult
	Work             domain.Work
	Mode             domain.AnalysisMode
	WellbeingEnabled bool
	DomainFits       []talent.DomainFit
	Model            string
	Elapsed          time.Duration
}

type EventType string

const (
	EventProgress EventType = "progress"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// ErrCodeGenerationFailed marks a stream that ended because the model gateway failed.
const ErrCodeGenerationFailed = "generation_failed"

// StreamEvent is one server-sent event of an analysis stream.
type StreamEvent struct {
	Type       EventType              `json:"type"`
	Percent    int                    `json:"percent,omitempty"`
	Message    string                 `json:"message,omitempty"`
	Result     *domain.AnalysisResult `json:"result,omitempty"`
	AnalysisID string                 `json:"analysis_id,omitempty"`
	Code       string                 `json:"code,omitempty"`
}

func ProgressEvent(percent int, message string) StreamEvent {
	return StreamEvent{Type: EventProgress, Percent: percent, Message: message}
}

func CompleteEvent(result *domain.AnalysisResult, analysisID string) StreamEvent {
	return StreamEvent{Type: EventComplete, Result: result, AnalysisID: analysisID}
}

func ErrorEvent(message string) StreamEvent {
	return StreamEvent{Type: EventError, Message: message, Code: ErrCodeGenerationFailed}
}
