package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/metrics"
	"github.com/alexanderramin/nuclea/internal/repository"
	"github.com/alexanderramin/nuclea/internal/service"
	"github.com/alexanderramin/nuclea/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const essayText = "The Roman Empire declined because political instability weakened every institution it relied on."

type apiFixture struct {
	router  *gin.Engine
	stub    *testutil.StubLLM
	works   *repository.SQLiteWorkRepo
	metrics *metrics.Manager
}

func newAPIFixture(t *testing.T, timeout time.Duration) apiFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	stub := testutil.NewWellFormedLLM()
	works := repository.NewSQLiteWorkRepo(database)
	analyses := repository.NewSQLiteAnalysisRepo(database)
	m := metrics.NewManager(metrics.WithRegistry(prometheus.NewRegistry()))

	svc := service.NewAnalysisService(
		analysis.New(stub, analysis.WithObserver(m)), stub.ModelName(),
		service.NewSQLRecorder(testutil.NewTestUoW(database)), analyses, nil, m,
	)
	router := NewRouter(RouterConfig{
		Analysis:       svc,
		Profiles:       service.NewProfileService(works, analyses, m),
		Metrics:        m,
		CORSOrigins:    []string{"http://dashboard.test"},
		AnalyzeTimeout: timeout,
	})
	return apiFixture{router: router, stub: stub, works: works, metrics: m}
}

func analyzeBody(t *testing.T, edit func(*contract.AnalyzeRequest)) *bytes.Reader {
	t.Helper()
	req := contract.NewAnalyzeRequest(essayText, "stu-1", "The Fall of Rome")
	if edit != nil {
		edit(&req)
	}
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func (f apiFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// parseEvents decodes every "data: " frame of an event stream.
func parseEvents(t *testing.T, body string) []contract.StreamEvent {
	t.Helper()
	var out []contract.StreamEvent
	sc := bufio.NewScanner(strings.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev contract.StreamEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		out = append(out, ev)
	}
	require.NoError(t, sc.Err())
	return out
}

func percents(events []contract.StreamEvent) []int {
	var out []int
	for _, e := range events {
		if e.Type == contract.EventProgress {
			out = append(out, e.Percent)
		}
	}
	return out
}
