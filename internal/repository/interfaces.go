package repository

import (
	"context"

	"github.com/alexanderramin/nuclea/internal/domain"
)

type WorkRepo interface {
	Create(ctx context.Context, w *domain.Work) error
	GetByID(ctx context.Context, id string) (*domain.Work, error)
	// ListByStudent returns the student's works, oldest first.
	ListByStudent(ctx context.Context, studentID string) ([]*domain.Work, error)
}

type AnalysisRepo interface {
	Create(ctx context.Context, a *domain.Analysis) error
	GetByID(ctx context.Context, id string) (*domain.Analysis, error)
	GetByWorkID(ctx context.Context, workID string) (*domain.Analysis, error)
	// ListAnalyzedWorks joins every analysed work of a student with its
	// analysis, ordered by work creation time.
	ListAnalyzedWorks(ctx context.Context, studentID string) ([]domain.AnalyzedWork, error)
}
