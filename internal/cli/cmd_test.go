package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/repository"
	"github.com/alexanderramin/nuclea/internal/service"
	"github.com/alexanderramin/nuclea/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const essayText = "The Roman Empire declined because political instability weakened every institution it relied on."

// testApp wires a full App backed by an in-memory DB and a scripted model.
func testApp(t *testing.T) (*App, *testutil.StubLLM) {
	t.Helper()
	db := testutil.NewTestDB(t)
	stub := testutil.NewWellFormedLLM()

	works := repository.NewSQLiteWorkRepo(db)
	analyses := repository.NewSQLiteAnalysisRepo(db)

	return &App{
		Analysis: service.NewAnalysisService(
			analysis.New(stub), stub.ModelName(),
			service.NewSQLRecorder(testutil.NewTestUoW(db)), analyses, nil,
		),
		Profiles: service.NewProfileService(works, analyses),
	}, stub
}

// executeCmd runs the root command with stdin and captures stdout and stderr.
func executeCmd(t *testing.T, app *App, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(app)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeCmd_FromStdin(t *testing.T) {
	app, stub := testApp(t)

	out, errOut, err := executeCmd(t, app, essayText,
		"analyze", "--student", "stu-1", "--title", "The Fall of Rome")
	require.NoError(t, err)

	assert.Contains(t, errOut, " 20% Evaluating rubric scores...")
	assert.Contains(t, errOut, "] 100% ")
	assert.Contains(t, out, "The Fall of Rome")
	assert.Contains(t, out, "Research synthesis")
	assert.Contains(t, out, "DOMAIN FIT")
	assert.NotContains(t, out, "WELLBEING")
	assert.Len(t, stub.Calls(), 3)

	works, err := app.Profiles.ListWorks(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, works, 1)
	assert.True(t, works[0].Analyzed)
}

func TestAnalyzeCmd_FromFileWithWellbeing(t *testing.T) {
	app, _ := testApp(t)
	path := filepath.Join(t.TempDir(), "essay.txt")
	require.NoError(t, os.WriteFile(path, []byte(essayText), 0o644))

	out, _, err := executeCmd(t, app, "",
		"analyze", path, "--student", "stu-1", "--title", "Rome", "--mode", "university", "--wellbeing")
	require.NoError(t, err)

	assert.Contains(t, out, "University")
	assert.Contains(t, out, "WELLBEING")
	assert.Contains(t, out, "Mentions pressure.")
}

func TestAnalyzeCmd_JSONAndNoSave(t *testing.T) {
	app, _ := testApp(t)

	out, _, err := executeCmd(t, app, essayText,
		"analyze", "-", "--student", "stu-1", "--title", "Rome", "--type", "exam", "--json", "--no-save")
	require.NoError(t, err)

	var resp contract.AnalyzeResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.NotEmpty(t, resp.AnalysisID)
	require.NotNil(t, resp.Result)
	assert.Equal(t, 5, resp.Result.Rubric.Scores.Evidence)
	assert.Equal(t, domain.WorkExam, resp.Work.WorkType)
	assert.Len(t, resp.DomainFits, 6)

	works, err := app.Profiles.ListWorks(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Empty(t, works)
}

func TestAnalyzeCmd_RejectsBeforeGenerating(t *testing.T) {
	app, stub := testApp(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"short text", "too short", []string{"--student", "s", "--title", "t"}, "at least"},
		{"missing student", essayText, []string{"--title", "t"}, "required"},
		{"unknown mode", essayText, []string{"--student", "s", "--title", "t", "--mode", "postdoc"}, "invalid argument"},
		{"unknown type", essayText, []string{"--student", "s", "--title", "t", "--type", "novel"}, "invalid argument"},
		{"missing file", "", []string{"/nonexistent/essay.txt", "--student", "s", "--title", "t"}, "reading"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCmd(t, app, tt.stdin, append([]string{"analyze"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.Empty(t, stub.Calls())
}

func TestAnalyzeCmd_ModeAlias(t *testing.T) {
	app, stub := testApp(t)

	_, _, err := executeCmd(t, app, essayText,
		"analyze", "--student", "s", "--title", "t", "--mode", "high_school", "--no-save")
	require.NoError(t, err)
	require.NotEmpty(t, stub.Calls())
	assert.Contains(t, stub.Calls()[0].UserPrompt, "high school")
}

func TestProfileCmd(t *testing.T) {
	app, _ := testApp(t)

	out, _, err := executeCmd(t, app, "", "profile", "stu-1")
	require.NoError(t, err)
	assert.Contains(t, out, "No analyzed works yet.")

	for i := 0; i < 2; i++ {
		_, _, err := executeCmd(t, app, essayText, "analyze", "--student", "stu-1", "--title", "Essay")
		require.NoError(t, err)
	}

	out, _, err = executeCmd(t, app, "", "profile", "stu-1")
	require.NoError(t, err)
	assert.Contains(t, out, "2 analyses")
	assert.Contains(t, out, "TRAJECTORIES")
	assert.Contains(t, out, "Research synthesis")

	out, _, err = executeCmd(t, app, "", "profile", "stu-1", "--json")
	require.NoError(t, err)
	var resp contract.ProfileResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.TrendsAvailable)
}

func TestWorksCmd(t *testing.T) {
	app, _ := testApp(t)
	_, _, err := executeCmd(t, app, essayText, "analyze", "--student", "stu-1", "--title", "Rome Essay")
	require.NoError(t, err)

	out, _, err := executeCmd(t, app, "", "works", "stu-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Rome Essay")
	assert.Contains(t, out, "Essay")

	_, _, err = executeCmd(t, app, "", "works")
	assert.Error(t, err, "student argument is required")
}

func TestServeCmd_OnlyWhenWired(t *testing.T) {
	app, _ := testApp(t)
	_, _, err := executeCmd(t, app, "", "serve")
	assert.Error(t, err)

	var served bool
	app.Serve = func(ctx context.Context) error {
		served = ctx != nil
		return nil
	}
	_, _, err = executeCmd(t, app, "", "serve")
	require.NoError(t, err)
	assert.True(t, served)
}

func TestReadInput(t *testing.T) {
	got, err := readInput(strings.NewReader("piped"), nil, false)
	require.NoError(t, err)
	assert.Equal(t, "piped", got)

	got, err = readInput(strings.NewReader("piped"), nil, true)
	require.NoError(t, err)
	assert.Empty(t, got, "interactive sessions prompt instead of reading stdin")

	got, err = readInput(strings.NewReader("dash"), []string{"-"}, true)
	require.NoError(t, err)
	assert.Equal(t, "dash", got)
}
