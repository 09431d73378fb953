package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/repository"
	"github.com/alexanderramin/nuclea/internal/talent"
)

type profileService struct {
	works    repository.WorkRepo
	analyses repository.AnalysisRepo
	observer UseCaseObserver
}

// NewProfileService builds the read side over stored works. Nil repos
// make every call return ErrPersistenceDisabled.
func NewProfileService(works repository.WorkRepo, analyses repository.AnalysisRepo, observers ...UseCaseObserver) ProfileService {
	return &profileService{
		works:    works,
		analyses: analyses,
		observer: useCaseObserverOrNoop(observers),
	}
}

func requireStudent(studentID string) error {
	if strings.TrimSpace(studentID) == "" {
		return analysis.NewValidationError("student_id", "student_id parameter is required", ErrMissingField)
	}
	return nil
}

func (s *profileService) StudentProfile(ctx context.Context, studentID string) (resp *contract.ProfileResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"student_id": studentID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "student-profile",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = requireStudent(studentID); err != nil {
		return nil, err
	}
	if s.analyses == nil {
		return nil, ErrPersistenceDisabled
	}

	var analyzed []domain.AnalyzedWork
	analyzed, err = s.analyses.ListAnalyzedWorks(ctx, studentID)
	if err != nil {
		return nil, err
	}
	fields["analyses"] = len(analyzed)

	entries := make([]talent.Entry, len(analyzed))
	for i := range analyzed {
		entries[i] = talent.EntryFromAnalyzedWork(analyzed[i])
	}
	profile := talent.Aggregate(entries)

	resp = &contract.ProfileResponse{
		StudentID:       studentID,
		Status:          contract.ProfileOK,
		TrendsAvailable: profile.HasTrends(),
		Profile:         profile,
	}
	if profile == nil {
		resp.Status = contract.ProfileInsufficientData
	}
	return resp, nil
}

func (s *profileService) ListWorks(ctx context.Context, studentID string) (out []contract.WorkSummary, err error) {
	startedAt := time.Now()
	fields := map[string]any{"student_id": studentID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "list-works",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = requireStudent(studentID); err != nil {
		return nil, err
	}
	if s.works == nil || s.analyses == nil {
		return nil, ErrPersistenceDisabled
	}

	works, err := s.works.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	analyzed, err := s.analyses.ListAnalyzedWorks(ctx, studentID)
	if err != nil {
		return nil, err
	}
	fields["works"] = len(works)
	fields["analyzed"] = len(analyzed)
	byWork := make(map[string]domain.Analysis, len(analyzed))
	for _, aw := range analyzed {
		byWork[aw.Work.ID] = aw.Analysis
	}

	out = make([]contract.WorkSummary, 0, len(works))
	for _, w := range works {
		row := contract.WorkSummary{
			ID:        w.ID,
			Title:     w.Title,
			WorkType:  w.WorkType,
			WordCount: w.WordCount,
			CreatedAt: w.CreatedAt,
		}
		if a, ok := byWork[w.ID]; ok {
			row.Analyzed = true
			row.AnalysisID = a.ID
			row.Mode = a.Mode
			row.Average = a.Scores.Average()
			row.WellbeingLevel = a.WellbeingLevel
		}
		out = append(out, row)
	}
	return out, nil
}
