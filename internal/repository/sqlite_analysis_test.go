package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/nuclea/internal/db"
	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type analysisFixture struct {
	db       *sql.DB
	works    *SQLiteWorkRepo
	analyses *SQLiteAnalysisRepo
}

func newAnalysisFixture(t *testing.T) analysisFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return analysisFixture{
		db:       database,
		works:    NewSQLiteWorkRepo(database),
		analyses: NewSQLiteAnalysisRepo(database),
	}
}

func (f analysisFixture) seed(t *testing.T, studentID string, at time.Time, opts ...testutil.AnalysisOption) (*domain.Work, *domain.Analysis) {
	t.Helper()
	ctx := context.Background()
	w := testutil.NewTestWork(studentID, testutil.WithWorkCreatedAt(at))
	require.NoError(t, f.works.Create(ctx, w))
	a := testutil.NewTestAnalysis(w.ID, append([]testutil.AnalysisOption{testutil.WithAnalysisCreatedAt(at.Add(time.Minute))}, opts...)...)
	require.NoError(t, f.analyses.Create(ctx, a))
	return w, a
}

func TestAnalysisRepo_CreateAndGet(t *testing.T) {
	f := newAnalysisFixture(t)
	ctx := context.Background()
	scores := domain.RubricScores{Structure: 5, Clarity: 4, Evidence: 3, Originality: 2, Coherence: 1}

	_, a := f.seed(t, "stu-1", time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
		testutil.WithScores(scores),
		testutil.WithMode(domain.ModeUniversity),
		testutil.WithWellbeing(domain.WellbeingMild),
	)

	got, err := f.analyses.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	byWork, err := f.analyses.GetByWorkID(ctx, a.WorkID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, byWork.ID)
	require.NotNil(t, byWork.WellbeingLevel)
	assert.Equal(t, domain.WellbeingMild, *byWork.WellbeingLevel)
	assert.Equal(t, "stub", byWork.LLMModel)
	assert.Equal(t, int64(42), byWork.ProcessingTimeMs)
}

func TestAnalysisRepo_WellbeingDisabledStoresNull(t *testing.T) {
	f := newAnalysisFixture(t)
	_, a := f.seed(t, "stu-1", time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC))

	var level sql.NullString
	require.NoError(t, f.db.QueryRow(`SELECT wellbeing_level FROM analyses WHERE id = ?`, a.ID).Scan(&level))
	assert.False(t, level.Valid)

	got, err := f.analyses.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.WellbeingLevel)
	assert.Nil(t, got.Result.Wellbeing)
	assert.False(t, got.WellbeingEnabled)
}

func TestAnalysisRepo_StoresTalentRecordAndFlatScores(t *testing.T) {
	f := newAnalysisFixture(t)
	scores := domain.RubricScores{Structure: 1, Clarity: 2, Evidence: 3, Originality: 4, Coherence: 5}
	_, a := f.seed(t, "stu-1", time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
		testutil.WithScores(scores),
		testutil.WithTalentIndicators("Systems thinking", "Argumentation"),
	)

	var talentJSON string
	var originality int
	require.NoError(t, f.db.QueryRow(`SELECT talent_json, score_originality FROM analyses WHERE id = ?`, a.ID).
		Scan(&talentJSON, &originality))
	assert.JSONEq(t, `{"talent_indicators":["Systems thinking","Argumentation"],"matching_domains":["History"],
		"learning_recommendations":[],"talent_development_focus":[]}`, talentJSON)
	assert.Equal(t, 4, originality)
}

func TestAnalysisRepo_NotFound(t *testing.T) {
	f := newAnalysisFixture(t)
	ctx := context.Background()

	_, err := f.analyses.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.analyses.GetByWorkID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnalysisRepo_RejectsSecondAnalysisForWork(t *testing.T) {
	f := newAnalysisFixture(t)
	w, _ := f.seed(t, "stu-1", time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC))

	err := f.analyses.Create(context.Background(), testutil.NewTestAnalysis(w.ID))
	assert.Error(t, err)
}

func TestAnalysisRepo_ListAnalyzedWorks(t *testing.T) {
	f := newAnalysisFixture(t)
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	w2, _ := f.seed(t, "stu-1", base.Add(24*time.Hour), testutil.WithScores(domain.RubricScores{Structure: 4, Clarity: 4, Evidence: 4, Originality: 4, Coherence: 4}))
	w1, _ := f.seed(t, "stu-1", base, testutil.WithStrengths("Clear Thesis + 'I argue'"))
	f.seed(t, "stu-2", base)

	// A work without an analysis is excluded.
	unanalysed := testutil.NewTestWork("stu-1", testutil.WithWorkCreatedAt(base.Add(time.Hour)))
	require.NoError(t, f.works.Create(ctx, unanalysed))

	list, err := f.analyses.ListAnalyzedWorks(ctx, "stu-1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, w1.ID, list[0].Work.ID)
	assert.Equal(t, w1.ID, list[0].Analysis.WorkID)
	assert.Equal(t, []string{"Clear Thesis + 'I argue'"}, list[0].Analysis.Result.Strengths)
	assert.Equal(t, w2.ID, list[1].Work.ID)
	assert.Equal(t, 4, list[1].Analysis.Scores.Evidence)
	assert.Equal(t, w2.Text, list[1].Work.Text)

	none, err := f.analyses.ListAnalyzedWorks(ctx, "stu-9")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAnalysisRepo_WorksInsideUnitOfWork(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	w := testutil.NewTestWork("stu-1")
	a := testutil.NewTestAnalysis(w.ID)
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteWorkRepo(tx).Create(ctx, w); err != nil {
			return err
		}
		return NewSQLiteAnalysisRepo(tx).Create(ctx, a)
	})
	require.NoError(t, err)

	got, err := NewSQLiteAnalysisRepo(database).GetByWorkID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}
