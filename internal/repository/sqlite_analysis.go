package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/nuclea/internal/db"
	"github.com/alexanderramin/nuclea/internal/domain"
)

// SQLiteAnalysisRepo implements AnalysisRepo using a SQLite database.
// Scores are stored in flat columns next to the full result envelope.
type SQLiteAnalysisRepo struct {
	db db.DBTX
}

// NewSQLiteAnalysisRepo creates a new SQLiteAnalysisRepo.
func NewSQLiteAnalysisRepo(conn db.DBTX) *SQLiteAnalysisRepo {
	return &SQLiteAnalysisRepo{db: conn}
}

// talentRecord is the talent_json column.
type talentRecord struct {
	TalentIndicators        []string             `json:"talent_indicators"`
	MatchingDomains         []string             `json:"matching_domains"`
	LearningRecommendations []string             `json:"learning_recommendations"`
	TalentDevelopmentFocus  []domain.TalentFocus `json:"talent_development_focus"`
}

const analysisColumns = `a.id, a.work_id, a.mode,
	a.score_structure, a.score_clarity, a.score_evidence, a.score_originality, a.score_coherence,
	a.result_json, a.wellbeing_enabled, a.wellbeing_level, a.llm_model, a.processing_time_ms, a.created_at`

func (r *SQLiteAnalysisRepo) Create(ctx context.Context, a *domain.Analysis) error {
	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("encoding analysis result: %w", err)
	}
	talentJSON, err := json.Marshal(talentRecord{
		TalentIndicators:        a.Result.TalentIndicators,
		MatchingDomains:         a.Result.MatchingDomains,
		LearningRecommendations: a.Result.LearningRecommendations,
		TalentDevelopmentFocus:  a.Result.TalentDevelopmentFocus,
	})
	if err != nil {
		return fmt.Errorf("encoding talent record: %w", err)
	}

	query := `INSERT INTO analyses (id, work_id, mode,
		score_structure, score_clarity, score_evidence, score_originality, score_coherence,
		result_json, talent_json, wellbeing_enabled, wellbeing_level, llm_model, processing_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		a.ID,
		a.WorkID,
		string(a.Mode),
		a.Scores.Structure,
		a.Scores.Clarity,
		a.Scores.Evidence,
		a.Scores.Originality,
		a.Scores.Coherence,
		string(resultJSON),
		string(talentJSON),
		boolToInt(a.WellbeingEnabled),
		nullableLevelToValue(a.WellbeingLevel),
		a.LLMModel,
		a.ProcessingTimeMs,
		formatTime(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting analysis: %w", err)
	}
	return nil
}

func (r *SQLiteAnalysisRepo) GetByID(ctx context.Context, id string) (*domain.Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses a WHERE a.id = ?`
	return r.getOne(ctx, query, id, "analysis "+id)
}

func (r *SQLiteAnalysisRepo) GetByWorkID(ctx context.Context, workID string) (*domain.Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses a WHERE a.work_id = ?`
	return r.getOne(ctx, query, workID, "analysis for work "+workID)
}

func (r *SQLiteAnalysisRepo) getOne(ctx context.Context, query, arg, what string) (*domain.Analysis, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	a, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning analysis: %w", err)
	}
	return a, nil
}

func (r *SQLiteAnalysisRepo) ListAnalyzedWorks(ctx context.Context, studentID string) ([]domain.AnalyzedWork, error) {
	query := `SELECT w.id, w.student_id, w.title, w.work_type, w.text, w.word_count, w.created_at, ` + analysisColumns + `
		FROM works w
		JOIN analyses a ON a.work_id = w.id
		WHERE w.student_id = ?
		ORDER BY w.created_at, w.id`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing analyzed works: %w", err)
	}
	defer rows.Close()

	var out []domain.AnalyzedWork
	for rows.Next() {
		var aw domain.AnalyzedWork
		var workType, workCreated string
		var ar analysisRow
		dest := append([]any{
			&aw.Work.ID, &aw.Work.StudentID, &aw.Work.Title, &workType,
			&aw.Work.Text, &aw.Work.WordCount, &workCreated,
		}, ar.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning analyzed work row: %w", err)
		}

		aw.Work.WorkType = domain.WorkType(workType)
		if aw.Work.CreatedAt, err = parseTime(workCreated); err != nil {
			return nil, err
		}
		a, err := ar.build()
		if err != nil {
			return nil, err
		}
		aw.Analysis = *a
		out = append(out, aw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analyzed works: %w", err)
	}
	return out, nil
}

// analysisRow holds the raw column values of one analyses row.
type analysisRow struct {
	a                domain.Analysis
	mode             string
	resultJSON       string
	wellbeingEnabled int
	wellbeingLevel   sql.NullString
	createdAt        string
}

func (r *analysisRow) dest() []any {
	return []any{
		&r.a.ID, &r.a.WorkID, &r.mode,
		&r.a.Scores.Structure, &r.a.Scores.Clarity, &r.a.Scores.Evidence,
		&r.a.Scores.Originality, &r.a.Scores.Coherence,
		&r.resultJSON, &r.wellbeingEnabled, &r.wellbeingLevel,
		&r.a.LLMModel, &r.a.ProcessingTimeMs, &r.createdAt,
	}
}

func (r *analysisRow) build() (*domain.Analysis, error) {
	a := r.a
	a.Mode = domain.AnalysisMode(r.mode)
	a.WellbeingEnabled = intToBool(r.wellbeingEnabled)
	a.WellbeingLevel = parseNullableLevel(r.wellbeingLevel)

	if err := json.Unmarshal([]byte(r.resultJSON), &a.Result); err != nil {
		return nil, fmt.Errorf("decoding result of analysis %s: %w", a.ID, err)
	}
	// The flat columns are authoritative for scores.
	a.Result.Rubric.Scores = a.Scores

	t, err := parseTime(r.createdAt)
	if err != nil {
		return nil, err
	}
	a.CreatedAt = t
	return &a, nil
}

func scanAnalysis(s scanner) (*domain.Analysis, error) {
	var ar analysisRow
	if err := s.Scan(ar.dest()...); err != nil {
		return nil, err
	}
	return ar.build()
}
