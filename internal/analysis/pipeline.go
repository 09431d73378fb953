// Package analysis runs the staged assessment of a student text: rubric,
// cognitive profile, talent mapping and the optional wellbeing screen.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/llm"
)

// MinTextLength is the minimum trimmed length, in characters, of an analysable text.
const MinTextLength = 20

const msgInputTooShort = "Input too short. Provide at least 20 characters for analysis."

// ProgressFunc receives progress notifications. It is called synchronously
// on the goroutine running the pipeline.
type ProgressFunc func(percent int, message string)

// Progress checkpoints, strictly increasing.
const (
	ProgressRubric    = 20
	ProgressProfile   = 50
	ProgressTalent    = 75
	ProgressWellbeing = 90
	ProgressDone      = 100
)

var stageMessages = map[llm.TaskType]string{
	llm.TaskRubric:    "Evaluating rubric scores...",
	llm.TaskProfile:   "Building cognitive profile...",
	llm.TaskTalent:    "Identifying talents...",
	llm.TaskWellbeing: "Checking wellbeing signals...",
}

const finalMessage = "Finalizing results..."

// Request is one analysis run.
type Request struct {
	Text             string
	Mode             domain.AnalysisMode
	WellbeingEnabled bool
}

// Validate checks the request before any model call.
func (r Request) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(r.Text)) < MinTextLength {
		return NewValidationError("text", msgInputTooShort, ErrInputTooShort)
	}
	if r.Mode != "" && !r.Mode.Valid() {
		return NewValidationError("mode",
			fmt.Sprintf("unknown analysis mode %q (expected elementary, highschool or university)", r.Mode),
			domain.ErrUnknownMode)
	}
	return nil
}

// Pipeline sequences the four stages against one LLM client. It holds no
// per-run state and may be shared between goroutines.
type Pipeline struct {
	client       llm.LLMClient
	observer     StageObserver
	maxRetries   int
	retryBackoff time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver reports stage outcomes to o.
func WithObserver(o StageObserver) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithRetries retries a failed generation call up to n times, waiting
// backoff, then twice that, between attempts.
func WithRetries(n int, backoff time.Duration) Option {
	return func(p *Pipeline) {
		if n >= 0 {
			p.maxRetries = n
		}
		p.retryBackoff = backoff
	}
}

// New creates a Pipeline.
func New(client llm.LLMClient, opts ...Option) *Pipeline {
	p := &Pipeline{
		client:       client,
		observer:     NoopStageObserver{},
		retryBackoff: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the stages in order and returns a fully populated result.
// Only a gateway failure (ErrGeneration) or the caller's context ending
// between stages or after the last one (ErrCanceled) aborts the run;
// undecodable stage output is replaced by defaults.
func (p *Pipeline) Run(ctx context.Context, req Request, progress ProgressFunc) (*domain.AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Mode == "" {
		req.Mode = domain.DefaultMode
	}
	if progress == nil {
		progress = func(int, string) {}
	}

	// Stage 1: rubric.
	raw, err := p.stage(ctx, llm.TaskRubric, ProgressRubric, progress, BuildRubricPrompt(req.Text, req.Mode))
	if err != nil {
		return nil, err
	}
	rubric, defaulted := decodeRubric(raw)
	p.report(llm.TaskRubric, req.Mode, defaulted == 0, defaulted)

	// Stage 2: profile.
	raw, err = p.stage(ctx, llm.TaskProfile, ProgressProfile, progress,
		BuildProfilePrompt(rubric.Scores, req.Text, req.Mode))
	if err != nil {
		return nil, err
	}
	profile, ok := decodeProfile(raw)
	p.report(llm.TaskProfile, req.Mode, ok, 0)

	// Stage 3: talent.
	raw, err = p.stage(ctx, llm.TaskTalent, ProgressTalent, progress,
		BuildTalentPrompt(profile.Strengths, profile.CognitivePattern, rubric.Scores, req.Text, req.Mode))
	if err != nil {
		return nil, err
	}
	talent, ok := decodeTalent(raw, req.Mode)
	p.report(llm.TaskTalent, req.Mode, ok, 0)

	// Stage 4: wellbeing, on request only.
	var wellbeing *domain.WellbeingResult
	if req.WellbeingEnabled {
		keywords := ScreenKeywords(req.Text)
		raw, err = p.stage(ctx, llm.TaskWellbeing, ProgressWellbeing, progress,
			BuildWellbeingPrompt(req.Text, keywords))
		if err != nil {
			return nil, err
		}
		wb, ok := decodeWellbeing(raw)
		p.report(llm.TaskWellbeing, req.Mode, ok, 0)
		wellbeing = &wb
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w before completion: %w", ErrCanceled, err)
	}
	progress(ProgressDone, finalMessage)

	return &domain.AnalysisResult{
		Rubric:                  rubric,
		Strengths:               profile.Strengths,
		GrowthAreas:             profile.GrowthAreas,
		CognitivePattern:        profile.CognitivePattern,
		DevelopmentPlan:         profile.DevelopmentPlan,
		TalentIndicators:        talent.TalentIndicators,
		MatchingDomains:         talent.MatchingDomains,
		LearningRecommendations: talent.LearningRecommendations,
		TalentDevelopmentFocus:  talent.TalentDevelopmentFocus,
		Wellbeing:               wellbeing,
	}, nil
}

// stage checks for cancellation, announces progress and generates. The
// call itself runs detached from the caller's cancellation so an in-flight
// request is allowed to finish or hit its own timeout.
func (p *Pipeline) stage(ctx context.Context, task llm.TaskType, percent int, progress ProgressFunc, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w before %s stage: %w", ErrCanceled, task, err)
	}
	progress(percent, stageMessages[task])

	req := llm.GenerateRequest{
		Task:         task,
		SystemPrompt: systemPrompt,
		UserPrompt:   prompt,
	}
	callCtx := context.WithoutCancel(ctx)

	var lastErr error
	backoff := p.retryBackoff
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			if !sleepCtx(ctx, backoff) {
				return "", fmt.Errorf("%w during %s retry: %w", ErrCanceled, task, ctx.Err())
			}
			backoff *= 2
		}
		resp, err := p.client.Generate(callCtx, req)
		if err == nil {
			return resp.Text, nil
		}
		lastErr = err
		if !retryable(err) {
			break
		}
	}
	return "", fmt.Errorf("%w: %s stage: %w", ErrGeneration, task, lastErr)
}

func (p *Pipeline) report(task llm.TaskType, mode domain.AnalysisMode, decoded bool, defaulted int) {
	p.observer.OnStageComplete(StageEvent{
		Stage:           task,
		Mode:            mode,
		Decoded:         decoded,
		DefaultedScores: defaulted,
	})
}

// retryable excludes failures another attempt cannot fix.
func retryable(err error) bool {
	return !errors.Is(err, llm.ErrUnauthorized) && !errors.Is(err, context.Canceled)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
