package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeProgressModel_TracksStages(t *testing.T) {
	d := teatest.New(t, newAnalyzeProgressModel(nil), teatest.WithSize(80, 24))
	d.DrainInit()

	assert.Contains(t, d.View(), "Starting analysis...")

	d.Send(stageMsg{percent: 50, message: "Building cognitive profile..."})
	assert.Contains(t, d.View(), "Building cognitive profile...")
	assert.Contains(t, d.View(), "50%")
	assert.False(t, d.Quitting)

	resp := &contract.AnalyzeResponse{AnalysisID: "a-1"}
	d.Send(analyzeDoneMsg{resp: resp})
	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())

	m := d.Model.(analyzeProgressModel)
	assert.Same(t, resp, m.resp)
	assert.NoError(t, m.err)
}

func TestAnalyzeProgressModel_CtrlCCancels(t *testing.T) {
	var canceled bool
	d := teatest.New(t, newAnalyzeProgressModel(func() { canceled = true }))

	d.Send(stageMsg{percent: 20, message: "Evaluating rubric scores..."})
	d.PressCtrlC()

	assert.True(t, canceled)
	assert.True(t, d.Quitting)
	assert.ErrorIs(t, d.Model.(analyzeProgressModel).err, errInterrupted)
}

func TestRunWithProgressBar_ReturnsResult(t *testing.T) {
	app, _ := testApp(t)
	req := contract.NewAnalyzeRequest(essayText, "stu-1", "Rome")

	var out bytes.Buffer
	resp, err := runWithProgressBar(context.Background(), app.Analysis, req, nil, &out)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.AnalysisID)
	assert.Equal(t, 5, resp.Result.Rubric.Scores.Evidence)
}

func TestRunWithProgressBar_PropagatesFailure(t *testing.T) {
	app, stub := testApp(t)
	stub.Fail("rubric", errors.New("backend down"))
	req := contract.NewAnalyzeRequest(essayText, "stu-1", "Rome")

	var out bytes.Buffer
	resp, err := runWithProgressBar(context.Background(), app.Analysis, req, nil, &out)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, analysis.ErrGeneration)
}
