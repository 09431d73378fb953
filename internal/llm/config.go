package llm

import (
	"fmt"
	"strings"
)

// TaskType identifies the pipeline stage an LLM call belongs to.
type TaskType string

const (
	TaskRubric    TaskType = "rubric"
	TaskProfile   TaskType = "profile"
	TaskTalent    TaskType = "talent"
	TaskWellbeing TaskType = "wellbeing"
)

// Provider selects the generation backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderDemo   Provider = "demo"
)

// ParseProvider normalizes a provider name.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case ProviderOllama, ProviderOpenAI, ProviderGemini, ProviderDemo:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the generation backend. It is
// built once at startup and treated as read-only afterwards.
type LLMConfig struct {
	Provider   Provider
	LogCalls   bool
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig for a local Ollama instance.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:   ProviderOllama,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskRubric:    {Temperature: 0.3, MaxTokens: 2000},
			TaskProfile:   {Temperature: 0.3, MaxTokens: 2000},
			TaskTalent:    {Temperature: 0.3, MaxTokens: 2000},
			TaskWellbeing: {Temperature: 0.3, MaxTokens: 2000},
		},
	}
}

// DefaultModel returns the model name used when none is configured.
func DefaultModel(p Provider) string {
	switch p {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderDemo:
		return "demo"
	}
	return "llama3.2"
}

// DefaultEndpoint returns the base URL used when none is configured.
func DefaultEndpoint(p Provider) string {
	switch p {
	case ProviderOpenAI:
		return "https://api.openai.com"
	case ProviderOllama:
		return "http://localhost:11434"
	}
	return ""
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// SetAll applies temperature and max tokens to every task.
func (c *LLMConfig) SetAll(temperature float64, maxTokens int) {
	if c.Tasks == nil {
		c.Tasks = make(map[TaskType]TaskConfig)
	}
	for _, task := range []TaskType{TaskRubric, TaskProfile, TaskTalent, TaskWellbeing} {
		tc := c.Tasks[task]
		tc.Temperature = temperature
		tc.MaxTokens = maxTokens
		c.Tasks[task] = tc
	}
}

// Validate checks the provider-specific requirements.
func (c LLMConfig) Validate() error {
	if _, err := ParseProvider(string(c.Provider)); err != nil {
		return err
	}
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("%w for provider %s", ErrMissingAPIKey, c.Provider)
		}
	}
	if c.Provider != ProviderDemo && c.Provider != ProviderGemini && c.Endpoint == "" {
		return fmt.Errorf("%w: endpoint required for provider %s", ErrUnknownProvider, c.Provider)
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("llm timeout must be positive, got %d", c.TimeoutMs)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("llm max retries must not be negative, got %d", c.MaxRetries)
	}
	return nil
}
