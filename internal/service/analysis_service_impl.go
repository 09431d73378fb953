package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/logger"
	"github.com/alexanderramin/nuclea/internal/repository"
	"github.com/alexanderramin/nuclea/internal/talent"
	"github.com/google/uuid"
)

const msgStudentAndTitle = "Student and work title are required."

type analysisService struct {
	pipeline *analysis.Pipeline
	model    string
	recorder Recorder
	analyses repository.AnalysisRepo
	log      *logger.Logger
	observer UseCaseObserver
}

// NewAnalysisService wires the pipeline to a recorder. analyses may be nil
// when persistence is disabled; GetAnalysis then returns ErrPersistenceDisabled.
func NewAnalysisService(
	pipeline *analysis.Pipeline,
	model string,
	recorder Recorder,
	analyses repository.AnalysisRepo,
	log *logger.Logger,
	observers ...UseCaseObserver,
) AnalysisService {
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &analysisService{
		pipeline: pipeline,
		model:    model,
		recorder: recorder,
		analyses: analyses,
		log:      log,
		observer: useCaseObserverOrNoop(observers),
	}
}

// preparedRun is a validated request.
type preparedRun struct {
	run      analysis.Request
	workType domain.WorkType
}

func prepare(req contract.AnalyzeRequest) (preparedRun, error) {
	run := analysis.Request{Text: req.Text, WellbeingEnabled: req.WellbeingEnabled}
	if err := run.Validate(); err != nil {
		return preparedRun{}, err
	}
	mode, err := domain.ParseAnalysisMode(req.Mode)
	if err != nil {
		return preparedRun{}, analysis.NewValidationError("mode", err.Error(), err)
	}
	run.Mode = mode
	if strings.TrimSpace(req.StudentID) == "" {
		return preparedRun{}, analysis.NewValidationError("student_id", msgStudentAndTitle, ErrMissingField)
	}
	if strings.TrimSpace(req.WorkTitle) == "" {
		return preparedRun{}, analysis.NewValidationError("work_title", msgStudentAndTitle, ErrMissingField)
	}
	workType, err := domain.ParseWorkType(req.WorkType)
	if err != nil {
		return preparedRun{}, analysis.NewValidationError("work_type", err.Error(), err)
	}
	return preparedRun{run: run, workType: workType}, nil
}

func (s *analysisService) Validate(req contract.AnalyzeRequest) error {
	_, err := prepare(req)
	return err
}

func (s *analysisService) Analyze(ctx context.Context, req contract.AnalyzeRequest, progress analysis.ProgressFunc) (resp *contract.AnalyzeResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"student_id": req.StudentID,
		"mode":       req.Mode,
		"wellbeing":  req.WellbeingEnabled,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "analyze",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var prepared preparedRun
	prepared, err = prepare(req)
	if err != nil {
		return nil, err
	}
	fields["mode"] = string(prepared.run.Mode)

	var result *domain.AnalysisResult
	result, err = s.pipeline.Run(ctx, prepared.run, progress)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	return &contract.AnalyzeResponse{
		AnalysisID: uuid.New().String(),
		Result:     result,
		Work: domain.Work{
			ID:        uuid.New().String(),
			StudentID: strings.TrimSpace(req.StudentID),
			Title:     strings.TrimSpace(req.WorkTitle),
			WorkType:  prepared.workType,
			Text:      text,
			WordCount: domain.CountWords(text),
		},
		Mode:             prepared.run.Mode,
		WellbeingEnabled: prepared.run.WellbeingEnabled,
		DomainFits:       talent.DomainFits(result.Rubric.Scores),
		Model:            s.model,
		Elapsed:          time.Since(startedAt),
	}, nil
}

func (s *analysisService) Record(ctx context.Context, resp *contract.AnalyzeResponse) (a *domain.Analysis, err error) {
	if resp == nil || resp.Result == nil {
		return nil, errors.New("recording analysis: empty response")
	}
	startedAt := time.Now()
	fields := map[string]any{
		"analysis_id": resp.AnalysisID,
		"student_id":  resp.Work.StudentID,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "record-analysis",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	a, err = s.recorder.Record(ctx, RecordInput{
		AnalysisID:       resp.AnalysisID,
		Work:             resp.Work,
		Mode:             resp.Mode,
		Result:           *resp.Result,
		WellbeingEnabled: resp.WellbeingEnabled,
		Model:            resp.Model,
		Elapsed:          resp.Elapsed,
	})
	if err != nil {
		s.log.Warn("analysis not persisted", "analysis_id", resp.AnalysisID, "error", err)
		return nil, fmt.Errorf("recording analysis %s: %w", resp.AnalysisID, err)
	}
	return a, nil
}

func (s *analysisService) GetAnalysis(ctx context.Context, workID string) (*contract.AnalysisView, error) {
	if s.analyses == nil {
		return nil, ErrPersistenceDisabled
	}
	a, err := s.analyses.GetByWorkID(ctx, workID)
	if err != nil {
		return nil, err
	}
	return &contract.AnalysisView{
		AnalysisID:       a.ID,
		WorkID:           a.WorkID,
		Mode:             a.Mode,
		Result:           a.Result,
		DomainFits:       talent.DomainFits(a.Scores),
		LLMModel:         a.LLMModel,
		ProcessingTimeMs: a.ProcessingTimeMs,
		CreatedAt:        a.CreatedAt,
	}, nil
}
