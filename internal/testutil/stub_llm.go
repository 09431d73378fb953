package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/nuclea/internal/llm"
)

// StubLLM is a scripted llm.LLMClient. Responses and errors are keyed by
// task; a queued error is returned once, before the task's response.
type StubLLM struct {
	mu        sync.Mutex
	responses map[llm.TaskType]string
	errs      map[llm.TaskType][]error
	calls     []llm.GenerateRequest

	// OnGenerate, if set, runs before each call returns.
	OnGenerate func(ctx context.Context, req llm.GenerateRequest)
}

// NewStubLLM creates a stub that answers "{}" for every task.
func NewStubLLM() *StubLLM {
	return &StubLLM{
		responses: make(map[llm.TaskType]string),
		errs:      make(map[llm.TaskType][]error),
	}
}

// Respond sets the raw text returned for task.
func (s *StubLLM) Respond(task llm.TaskType, raw string) *StubLLM {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[task] = raw
	return s
}

// RespondAll sets the same raw text for every stage.
func (s *StubLLM) RespondAll(raw string) *StubLLM {
	for _, task := range []llm.TaskType{llm.TaskRubric, llm.TaskProfile, llm.TaskTalent, llm.TaskWellbeing} {
		s.Respond(task, raw)
	}
	return s
}

// Fail queues errs for task, consumed one per call.
func (s *StubLLM) Fail(task llm.TaskType, errs ...error) *StubLLM {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[task] = append(s.errs[task], errs...)
	return s
}

func (s *StubLLM) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	var err error
	if queued := s.errs[req.Task]; len(queued) > 0 {
		err, s.errs[req.Task] = queued[0], queued[1:]
	}
	text, ok := s.responses[req.Task]
	hook := s.OnGenerate
	s.mu.Unlock()

	if hook != nil {
		hook(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		text = "{}"
	}
	return &llm.GenerateResponse{Text: text, Model: "stub"}, nil
}

func (s *StubLLM) Available(context.Context) bool { return true }

func (s *StubLLM) ModelName() string { return "stub" }

// Calls returns a copy of every request received.
func (s *StubLLM) Calls() []llm.GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.GenerateRequest, len(s.calls))
	copy(out, s.calls)
	return out
}

// Tasks returns the task of every request, in order.
func (s *StubLLM) Tasks() []llm.TaskType {
	calls := s.Calls()
	out := make([]llm.TaskType, len(calls))
	for i, c := range calls {
		out[i] = c.Task
	}
	return out
}

// Canned stage outputs that decode without fallbacks.
const (
	CannedRubric    = `{"scores":{"structure":4,"clarity":3,"evidence":5,"originality":2,"coherence":4},"justifications":{"evidence":"Cites sources. 'according to the census'"}}`
	CannedProfile   = `{"strengths":["Evidence Use + 'according to the census'","Structure + 'first of all'"],"growth_areas":["Originality + 'as everyone knows'"],"cognitive_pattern":"Analytical and source-driven.","development_plan":["Day 1: outline","Day 2: draft","Day 3: revise"]}`
	CannedTalent    = `{"talent_indicators":["Research synthesis"],"matching_domains":["History"],"talent_development_focus":[{"talent":"Research synthesis","rationale":"Sources are weighed.","next_steps":["Compare two archives"]}]}`
	CannedWellbeing = `{"level":"mild","note":"Mentions pressure.","next_step":"Offer a check-in with the class teacher."}`
)

// NewWellFormedLLM returns a stub that answers every stage with the canned outputs.
func NewWellFormedLLM() *StubLLM {
	return NewStubLLM().
		Respond(llm.TaskRubric, CannedRubric).
		Respond(llm.TaskProfile, CannedProfile).
		Respond(llm.TaskTalent, CannedTalent).
		Respond(llm.TaskWellbeing, CannedWellbeing)
}
