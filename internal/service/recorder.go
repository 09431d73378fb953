package service

import (
	"context"
	"time"

	"github.com/alexanderramin/nuclea/internal/db"
	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/repository"
)

// RecordInput is everything needed to persist one finished run.
type RecordInput struct {
	AnalysisID       string
	Work             domain.Work
	Mode             domain.AnalysisMode
	Result           domain.AnalysisResult
	WellbeingEnabled bool
	Model            string
	Elapsed          time.Duration
}

// newAnalysisRecord flattens a run into the stored row shape.
func newAnalysisRecord(in RecordInput, now time.Time) *domain.Analysis {
	a := &domain.Analysis{
		ID:               in.AnalysisID,
		WorkID:           in.Work.ID,
		Mode:             in.Mode,
		Scores:           in.Result.Rubric.Scores,
		Result:           in.Result,
		WellbeingEnabled: in.WellbeingEnabled,
		LLMModel:         in.Model,
		ProcessingTimeMs: in.Elapsed.Milliseconds(),
		CreatedAt:        now,
	}
	if in.WellbeingEnabled && in.Result.Wellbeing != nil {
		level := in.Result.Wellbeing.Level
		a.WellbeingLevel = &level
	}
	return a
}

type sqlRecorder struct {
	uow db.UnitOfWork
	now func() time.Time
}

// NewSQLRecorder writes the work and its analysis in one transaction.
func NewSQLRecorder(uow db.UnitOfWork) Recorder {
	return &sqlRecorder{uow: uow, now: func() time.Time { return time.Now().UTC() }}
}

func (r *sqlRecorder) Record(ctx context.Context, in RecordInput) (*domain.Analysis, error) {
	now := r.now()
	work := in.Work
	if work.CreatedAt.IsZero() {
		work.CreatedAt = now
	}
	if work.WordCount == 0 {
		work.WordCount = domain.CountWords(work.Text)
	}
	a := newAnalysisRecord(in, now)

	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteWorkRepo(tx).Create(ctx, &work); err != nil {
			return err
		}
		return repository.NewSQLiteAnalysisRepo(tx).Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// NoopRecorder discards runs; used when persistence is disabled.
type NoopRecorder struct{}

func (NoopRecorder) Record(_ context.Context, in RecordInput) (*domain.Analysis, error) {
	return newAnalysisRecord(in, time.Now().UTC()), nil
}
