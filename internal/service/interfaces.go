package service

import (
	"context"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/domain"
)

type AnalysisService interface {
	// Validate checks a request without calling the model, so transports can
	// reject bad input before they start streaming.
	Validate(req contract.AnalyzeRequest) error
	Analyze(ctx context.Context, req contract.AnalyzeRequest, progress analysis.ProgressFunc) (*contract.AnalyzeResponse, error)
	// Record persists a finished run. Failures are logged and returned but
	// must not change what the caller already reported.
	Record(ctx context.Context, resp *contract.AnalyzeResponse) (*domain.Analysis, error)
	GetAnalysis(ctx context.Context, workID string) (*contract.AnalysisView, error)
}

type ProfileService interface {
	StudentProfile(ctx context.Context, studentID string) (*contract.ProfileResponse, error)
	ListWorks(ctx context.Context, studentID string) ([]contract.WorkSummary, error)
}

// Recorder stores a work together with its analysis.
type Recorder interface {
	Record(ctx context.Context, in RecordInput) (*domain.Analysis, error)
}
