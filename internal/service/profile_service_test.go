package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/repository"
	"github.com/alexanderramin/nuclea/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAnalyzed(t *testing.T, f serviceFixture, studentID string, at time.Time, scores domain.RubricScores, strengths ...string) *domain.Work {
	t.Helper()
	ctx := context.Background()
	w := testutil.NewTestWork(studentID, testutil.WithWorkCreatedAt(at))
	require.NoError(t, repository.NewSQLiteWorkRepo(f.db).Create(ctx, w))
	opts := []testutil.AnalysisOption{testutil.WithScores(scores)}
	if len(strengths) > 0 {
		opts = append(opts, testutil.WithStrengths(strengths...))
	}
	require.NoError(t, repository.NewSQLiteAnalysisRepo(f.db).Create(ctx, testutil.NewTestAnalysis(w.ID, opts...)))
	return w
}

func uniform(v int) domain.RubricScores {
	return domain.RubricScores{Structure: v, Clarity: v, Evidence: v, Originality: v, Coherence: v}
}

func TestStudentProfile_NoAnalysesIsInsufficientData(t *testing.T) {
	f := setupServices(t)

	resp, err := f.profile.StudentProfile(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, contract.ProfileInsufficientData, resp.Status)
	assert.False(t, resp.TrendsAvailable)
	assert.Nil(t, resp.Profile)
}

func TestStudentProfile_SingleAnalysisHasNoTrends(t *testing.T) {
	f := setupServices(t)
	seedAnalyzed(t, f, "stu-1", time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC), uniform(3))

	resp, err := f.profile.StudentProfile(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, contract.ProfileOK, resp.Status)
	assert.False(t, resp.TrendsAvailable)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, 1, resp.Profile.TotalAnalyses)
}

func TestStudentProfile_AggregatesChronologically(t *testing.T) {
	f := setupServices(t)
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	seedAnalyzed(t, f, "stu-1", base.Add(48*time.Hour), uniform(4), "Clear Thesis + 'I argue'")
	seedAnalyzed(t, f, "stu-1", base, uniform(2), "Clear Thesis + 'my claim'")
	seedAnalyzed(t, f, "stu-2", base, uniform(5))

	resp, err := f.profile.StudentProfile(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, contract.ProfileOK, resp.Status)
	assert.True(t, resp.TrendsAvailable)

	p := resp.Profile
	require.NotNil(t, p)
	assert.Equal(t, 2, p.TotalAnalyses)
	require.Len(t, p.ScoreProgression, 2)
	assert.Equal(t, 2.0, p.ScoreProgression[0].Average)
	assert.Equal(t, 4.0, p.ScoreProgression[1].Average)
	require.NotEmpty(t, p.Trajectories)
	assert.Equal(t, "improving", string(p.Trajectories[0].Trend))
	assert.Equal(t, 100, p.Trajectories[0].ChangePercent)
	assert.Equal(t, []string{"Clear Thesis"}, p.ConsistentStrengths)

	events := f.observer.byName("student-profile")
	require.Len(t, events, 1)
	assert.Equal(t, 2, events[0].Fields["analyses"])
}

func TestStudentProfile_RequiresStudent(t *testing.T) {
	f := setupServices(t)
	_, err := f.profile.StudentProfile(context.Background(), "  ")
	assert.ErrorIs(t, err, analysis.ErrInvalidInput)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestStudentProfile_PersistenceDisabled(t *testing.T) {
	svc := NewProfileService(nil, nil)
	_, err := svc.StudentProfile(context.Background(), "stu-1")
	assert.ErrorIs(t, err, ErrPersistenceDisabled)
	_, err = svc.ListWorks(context.Background(), "stu-1")
	assert.ErrorIs(t, err, ErrPersistenceDisabled)
}

func TestListWorks_MarksAnalyzedWorks(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	analyzed := seedAnalyzed(t, f, "stu-1", base, domain.RubricScores{Structure: 5, Clarity: 4, Evidence: 3, Originality: 2, Coherence: 1})
	pending := testutil.NewTestWork("stu-1", testutil.WithWorkTitle("Draft"), testutil.WithWorkCreatedAt(base.Add(time.Hour)))
	require.NoError(t, repository.NewSQLiteWorkRepo(f.db).Create(ctx, pending))

	rows, err := f.profile.ListWorks(ctx, "stu-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, analyzed.ID, rows[0].ID)
	assert.True(t, rows[0].Analyzed)
	assert.NotEmpty(t, rows[0].AnalysisID)
	assert.Equal(t, 3.0, rows[0].Average)
	assert.Equal(t, domain.ModeHighSchool, rows[0].Mode)

	assert.Equal(t, "Draft", rows[1].Title)
	assert.False(t, rows[1].Analyzed)
	assert.Empty(t, rows[1].AnalysisID)
}

func TestListWorks_EmitsUseCaseEvent(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	seedAnalyzed(t, f, "stu-1", base, uniform(3))
	require.NoError(t, repository.NewSQLiteWorkRepo(f.db).Create(ctx,
		testutil.NewTestWork("stu-1", testutil.WithWorkCreatedAt(base.Add(time.Hour)))))

	_, err := f.profile.ListWorks(ctx, "stu-1")
	require.NoError(t, err)
	_, err = f.profile.ListWorks(ctx, " ")
	require.Error(t, err)

	events := f.observer.byName("list-works")
	require.Len(t, events, 2)
	assert.True(t, events[0].Success)
	assert.Equal(t, "stu-1", events[0].Fields["student_id"])
	assert.Equal(t, 2, events[0].Fields["works"])
	assert.Equal(t, 1, events[0].Fields["analyzed"])
	assert.False(t, events[1].Success)
	assert.ErrorIs(t, events[1].Err, ErrMissingField)
}

func TestAnalyzeThenProfile_EndToEnd(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second"} {
		resp, err := f.analysis.Analyze(ctx, newRequest(title), nil)
		require.NoError(t, err)
		_, err = f.analysis.Record(ctx, resp)
		require.NoError(t, err)
	}

	resp, err := f.profile.StudentProfile(ctx, "stu-1")
	require.NoError(t, err)
	assert.True(t, resp.TrendsAvailable)
	require.NotEmpty(t, resp.Profile.TalentSignals)
	assert.Equal(t, "Research synthesis", resp.Profile.TalentSignals[0].Indicator)
	assert.Equal(t, 100, resp.Profile.TalentSignals[0].Confidence)
	assert.ElementsMatch(t, []string{"Evidence Use", "Structure"}, resp.Profile.ConsistentStrengths)
}
