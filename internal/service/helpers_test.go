package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/repository"
	"github.com/alexanderramin/nuclea/internal/testutil"
)

const essayText = "The Roman Empire declined because political instability weakened every institution it relied on."

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) byName(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

type serviceFixture struct {
	db       *sql.DB
	stub     *testutil.StubLLM
	analysis AnalysisService
	profile  ProfileService
	observer *recordingObserver
}

func setupServices(t *testing.T) serviceFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	stub := testutil.NewWellFormedLLM()
	obs := &recordingObserver{}
	works := repository.NewSQLiteWorkRepo(database)
	analyses := repository.NewSQLiteAnalysisRepo(database)
	return serviceFixture{
		db:   database,
		stub: stub,
		analysis: NewAnalysisService(
			analysis.New(stub), stub.ModelName(),
			NewSQLRecorder(testutil.NewTestUoW(database)), analyses, nil, obs,
		),
		profile:  NewProfileService(works, analyses, obs),
		observer: obs,
	}
}

func newRequest(title string) contract.AnalyzeRequest {
	return contract.NewAnalyzeRequest(essayText, "stu-1", title)
}
